package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository (usable con pool o tx).
// Los módulos se guardan como text[].
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `
	id, customer_id, customer_name, protocol, modules, training_type, requester,
	contracted_hours, residual_added, start_date, finish_date, contract_value,
	commission_percent, status, technician_id, technician_name, commission_paid,
	notes, created_at, updated_at`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(
		&p.ID, &p.CustomerID, &p.CustomerName, &p.Protocol, &p.Modules, &p.TrainingType, &p.Requester,
		&p.ContractedHours, &p.ResidualAdded, &p.StartDate, &p.FinishDate, &p.ContractValue,
		&p.CommissionPercent, &p.Status, &p.TechnicianID, &p.TechnicianName, &p.CommissionPaid,
		&p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una compra nueva.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CustomerID, p.CustomerName, p.Protocol, p.Modules, p.TrainingType, p.Requester,
		p.ContractedHours, p.ResidualAdded, p.StartDate, p.FinishDate, p.ContractValue,
		p.CommissionPercent, p.Status, p.TechnicianID, p.TechnicianName, p.CommissionPaid,
		p.Notes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// List lista todas las compras, las más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

// ListByCustomer lista las compras de un cliente.
func (r *PurchaseRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.queryMany(ctx, query, customerID)
}

func (r *PurchaseRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza una compra completa.
func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	query := `
		UPDATE purchases SET
			customer_name = $2, modules = $3, training_type = $4, requester = $5,
			contracted_hours = $6, residual_added = $7, start_date = $8, finish_date = $9,
			contract_value = $10, commission_percent = $11, status = $12,
			technician_id = $13, technician_name = $14, commission_paid = $15,
			notes = $16, updated_at = $17
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CustomerName, p.Modules, p.TrainingType, p.Requester,
		p.ContractedHours, p.ResidualAdded, p.StartDate, p.FinishDate,
		p.ContractValue, p.CommissionPercent, p.Status,
		p.TechnicianID, p.TechnicianName, p.CommissionPaid,
		p.Notes, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// Delete elimina una compra por ID.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	return nil
}

// CountByCustomer cuenta las compras de un cliente (bloqueo de borrado).
func (r *PurchaseRepo) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE customer_id = $1`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchases by customer: %w", err)
	}
	return n, nil
}

// CountByModuleName cuenta las compras que referencian un módulo por nombre.
func (r *PurchaseRepo) CountByModuleName(ctx context.Context, moduleName string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE $1 = ANY(modules)`, moduleName).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchases by module: %w", err)
	}
	return n, nil
}

// CountByTrainingType cuenta las compras de un tipo de entrenamiento.
func (r *PurchaseRepo) CountByTrainingType(ctx context.Context, trainingType string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE training_type = $1`, trainingType).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count purchases by training type: %w", err)
	}
	return n, nil
}

// UpdateCustomerName propaga la razón social a las compras del cliente.
func (r *PurchaseRepo) UpdateCustomerName(ctx context.Context, customerID, name string) error {
	_, err := r.q.Exec(ctx, `UPDATE purchases SET customer_name = $2 WHERE customer_id = $1`, customerID, name)
	if err != nil {
		return fmt.Errorf("propagate customer name: %w", err)
	}
	return nil
}
