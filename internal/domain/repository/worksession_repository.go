package repository

import (
	"context"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

// WorkSessionRepository define el puerto de persistencia para WorkSession.
type WorkSessionRepository interface {
	Create(ctx context.Context, session *entity.WorkSession) error
	GetByID(ctx context.Context, id string) (*entity.WorkSession, error)
	List(ctx context.Context) ([]*entity.WorkSession, error)
	ListByPurchase(ctx context.Context, purchaseID string) ([]*entity.WorkSession, error)
	Update(ctx context.Context, session *entity.WorkSession) error
	Delete(ctx context.Context, id string) error
	// DeleteByPurchase elimina todas las sesiones de una compra (cascada al
	// borrar la compra, dentro de la misma transacción).
	DeleteByPurchase(ctx context.Context, purchaseID string) error
}
