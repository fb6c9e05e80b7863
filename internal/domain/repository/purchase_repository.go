package repository

import (
	"context"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para Purchase.
// Los Count* soportan los bloqueos de integridad referencial antes de borrar
// clientes y datos de referencia.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	List(ctx context.Context) ([]*entity.Purchase, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Purchase, error)
	Update(ctx context.Context, purchase *entity.Purchase) error
	Delete(ctx context.Context, id string) error
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	CountByModuleName(ctx context.Context, moduleName string) (int, error)
	CountByTrainingType(ctx context.Context, trainingType string) (int, error)
	// UpdateCustomerName propaga un cambio de razón social a la copia
	// desnormalizada de las compras del cliente.
	UpdateCustomerName(ctx context.Context, customerID, name string) error
}
