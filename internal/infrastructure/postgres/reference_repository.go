package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

var _ repository.SystemModuleRepository = (*SystemModuleRepo)(nil)
var _ repository.TrainingTypeRepository = (*TrainingTypeRepo)(nil)

// SystemModuleRepo implementación de SystemModuleRepository.
type SystemModuleRepo struct {
	q Querier
}

// NewSystemModuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSystemModuleRepository(q Querier) *SystemModuleRepo {
	return &SystemModuleRepo{q: q}
}

// Create persiste un módulo nuevo.
func (r *SystemModuleRepo) Create(ctx context.Context, m *entity.SystemModule) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO system_modules (id, name, created_at) VALUES ($1, $2, $3)`,
		m.ID, m.Name, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert system module: %w", err)
	}
	return nil
}

// GetByID obtiene un módulo por ID.
func (r *SystemModuleRepo) GetByID(ctx context.Context, id string) (*entity.SystemModule, error) {
	var m entity.SystemModule
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at FROM system_modules WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get system module: %w", err)
	}
	return &m, nil
}

// GetByName obtiene un módulo por nombre.
func (r *SystemModuleRepo) GetByName(ctx context.Context, name string) (*entity.SystemModule, error) {
	var m entity.SystemModule
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at FROM system_modules WHERE name = $1`, name,
	).Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get system module by name: %w", err)
	}
	return &m, nil
}

// List lista los módulos ordenados por nombre.
func (r *SystemModuleRepo) List(ctx context.Context) ([]*entity.SystemModule, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM system_modules ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list system modules: %w", err)
	}
	defer rows.Close()
	var list []*entity.SystemModule
	for rows.Next() {
		var m entity.SystemModule
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan system module: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Delete elimina un módulo por ID.
func (r *SystemModuleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM system_modules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete system module: %w", err)
	}
	return nil
}

// TrainingTypeRepo implementación de TrainingTypeRepository.
type TrainingTypeRepo struct {
	q Querier
}

// NewTrainingTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTrainingTypeRepository(q Querier) *TrainingTypeRepo {
	return &TrainingTypeRepo{q: q}
}

// Create persiste un tipo de entrenamiento nuevo.
func (r *TrainingTypeRepo) Create(ctx context.Context, tt *entity.TrainingType) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO training_types (id, name, created_at) VALUES ($1, $2, $3)`,
		tt.ID, tt.Name, tt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert training type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo por ID.
func (r *TrainingTypeRepo) GetByID(ctx context.Context, id string) (*entity.TrainingType, error) {
	var tt entity.TrainingType
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at FROM training_types WHERE id = $1`, id,
	).Scan(&tt.ID, &tt.Name, &tt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get training type: %w", err)
	}
	return &tt, nil
}

// GetByName obtiene un tipo por nombre.
func (r *TrainingTypeRepo) GetByName(ctx context.Context, name string) (*entity.TrainingType, error) {
	var tt entity.TrainingType
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at FROM training_types WHERE name = $1`, name,
	).Scan(&tt.ID, &tt.Name, &tt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get training type by name: %w", err)
	}
	return &tt, nil
}

// List lista los tipos ordenados por nombre.
func (r *TrainingTypeRepo) List(ctx context.Context) ([]*entity.TrainingType, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM training_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list training types: %w", err)
	}
	defer rows.Close()
	var list []*entity.TrainingType
	for rows.Next() {
		var tt entity.TrainingType
		if err := rows.Scan(&tt.ID, &tt.Name, &tt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan training type: %w", err)
		}
		list = append(list, &tt)
	}
	return list, rows.Err()
}

// Delete elimina un tipo por ID.
func (r *TrainingTypeRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM training_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete training type: %w", err)
	}
	return nil
}
