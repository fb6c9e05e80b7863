package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

var _ training.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Se usa para el borrado en cascada compra + sesiones.
func (r *TxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	sessionRepo repository.WorkSessionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchaseRepo := NewPurchaseRepository(tx)
	sessionRepo := NewWorkSessionRepository(tx)

	if err := fn(purchaseRepo, sessionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
