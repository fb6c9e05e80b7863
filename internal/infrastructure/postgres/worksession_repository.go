package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

var _ repository.WorkSessionRepository = (*WorkSessionRepo)(nil)

// WorkSessionRepo implementación de WorkSessionRepository (usable con pool o tx).
// Los asistentes se guardan como text[].
type WorkSessionRepo struct {
	q Querier
}

// NewWorkSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkSessionRepository(q Querier) *WorkSessionRepo {
	return &WorkSessionRepo{q: q}
}

const sessionColumns = `
	id, purchase_id, protocol, technician_id, technician_name, session_date,
	start1, end1, start2, end2, attendees, notes, transport,
	uber_out_cost, uber_back_cost, vehicle_km, km_rate, computed_hours, created_at`

func scanSession(row pgx.Row) (*entity.WorkSession, error) {
	var s entity.WorkSession
	err := row.Scan(
		&s.ID, &s.PurchaseID, &s.Protocol, &s.TechnicianID, &s.TechnicianName, &s.Date,
		&s.Start1, &s.End1, &s.Start2, &s.End2, &s.Attendees, &s.Notes, &s.Transport,
		&s.UberOutCost, &s.UberBackCost, &s.VehicleKM, &s.KMRate, &s.ComputedHours, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste una sesión de trabajo.
func (r *WorkSessionRepo) Create(ctx context.Context, s *entity.WorkSession) error {
	query := `
		INSERT INTO work_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.PurchaseID, s.Protocol, s.TechnicianID, s.TechnicianName, s.Date,
		s.Start1, s.End1, s.Start2, s.End2, s.Attendees, s.Notes, s.Transport,
		s.UberOutCost, s.UberBackCost, s.VehicleKM, s.KMRate, s.ComputedHours, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert work session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *WorkSessionRepo) GetByID(ctx context.Context, id string) (*entity.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE id = $1`
	s, err := scanSession(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work session: %w", err)
	}
	return s, nil
}

// List lista todas las sesiones, las más recientes primero.
func (r *WorkSessionRepo) List(ctx context.Context) ([]*entity.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions ORDER BY session_date DESC, created_at DESC`
	return r.queryMany(ctx, query)
}

// ListByPurchase lista las sesiones de una compra en orden cronológico.
func (r *WorkSessionRepo) ListByPurchase(ctx context.Context, purchaseID string) ([]*entity.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE purchase_id = $1 ORDER BY session_date, created_at`
	return r.queryMany(ctx, query, purchaseID)
}

func (r *WorkSessionRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.WorkSession, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.WorkSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update actualiza una sesión.
func (r *WorkSessionRepo) Update(ctx context.Context, s *entity.WorkSession) error {
	query := `
		UPDATE work_sessions SET
			session_date = $2, start1 = $3, end1 = $4, start2 = $5, end2 = $6,
			attendees = $7, notes = $8, transport = $9,
			uber_out_cost = $10, uber_back_cost = $11, vehicle_km = $12, km_rate = $13,
			computed_hours = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Date, s.Start1, s.End1, s.Start2, s.End2,
		s.Attendees, s.Notes, s.Transport,
		s.UberOutCost, s.UberBackCost, s.VehicleKM, s.KMRate,
		s.ComputedHours,
	)
	if err != nil {
		return fmt.Errorf("update work session: %w", err)
	}
	return nil
}

// Delete elimina una sesión por ID.
func (r *WorkSessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM work_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete work session: %w", err)
	}
	return nil
}

// DeleteByPurchase elimina todas las sesiones de una compra (borrado en cascada).
func (r *WorkSessionRepo) DeleteByPurchase(ctx context.Context, purchaseID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM work_sessions WHERE purchase_id = $1`, purchaseID)
	if err != nil {
		return fmt.Errorf("delete work sessions by purchase: %w", err)
	}
	return nil
}
