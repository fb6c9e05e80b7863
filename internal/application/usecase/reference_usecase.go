package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

// ReferenceUseCase datos de referencia: módulos del sistema y tipos de
// entrenamiento. El borrado se rechaza si alguna compra referencia el nombre.
type ReferenceUseCase struct {
	moduleRepo   repository.SystemModuleRepository
	typeRepo     repository.TrainingTypeRepository
	purchaseRepo repository.PurchaseRepository
}

// NewReferenceUseCase construye el caso de uso.
func NewReferenceUseCase(
	moduleRepo repository.SystemModuleRepository,
	typeRepo repository.TrainingTypeRepository,
	purchaseRepo repository.PurchaseRepository,
) *ReferenceUseCase {
	return &ReferenceUseCase{moduleRepo: moduleRepo, typeRepo: typeRepo, purchaseRepo: purchaseRepo}
}

// ─── Módulos del sistema ─────────────────────────────────────────────────────

// CreateModule alta de módulo. El nombre debe ser único.
func (uc *ReferenceUseCase) CreateModule(ctx context.Context, in dto.CreateReferenceRequest) (*dto.SystemModuleResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.moduleRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	m := &entity.SystemModule{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.moduleRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.SystemModuleResponse{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

// ListModules lista los módulos del sistema.
func (uc *ReferenceUseCase) ListModules(ctx context.Context) ([]*dto.SystemModuleResponse, error) {
	list, err := uc.moduleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SystemModuleResponse, 0, len(list))
	for _, m := range list {
		out = append(out, &dto.SystemModuleResponse{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt})
	}
	return out, nil
}

// DeleteModule borra un módulo. Rechazado si alguna compra lo referencia por nombre.
func (uc *ReferenceUseCase) DeleteModule(ctx context.Context, id string) error {
	m, err := uc.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	count, err := uc.purchaseRepo.CountByModuleName(ctx, m.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrModuleInUse
	}
	return uc.moduleRepo.Delete(ctx, id)
}

// ─── Tipos de entrenamiento ──────────────────────────────────────────────────

// CreateTrainingType alta de tipo de entrenamiento. El nombre debe ser único.
func (uc *ReferenceUseCase) CreateTrainingType(ctx context.Context, in dto.CreateReferenceRequest) (*dto.TrainingTypeResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.typeRepo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	tt := &entity.TrainingType{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: time.Now(),
	}
	if err := uc.typeRepo.Create(ctx, tt); err != nil {
		return nil, err
	}
	return &dto.TrainingTypeResponse{ID: tt.ID, Name: tt.Name, CreatedAt: tt.CreatedAt}, nil
}

// ListTrainingTypes lista los tipos de entrenamiento.
func (uc *ReferenceUseCase) ListTrainingTypes(ctx context.Context) ([]*dto.TrainingTypeResponse, error) {
	list, err := uc.typeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TrainingTypeResponse, 0, len(list))
	for _, tt := range list {
		out = append(out, &dto.TrainingTypeResponse{ID: tt.ID, Name: tt.Name, CreatedAt: tt.CreatedAt})
	}
	return out, nil
}

// DeleteTrainingType borra un tipo. Rechazado si alguna compra lo referencia.
func (uc *ReferenceUseCase) DeleteTrainingType(ctx context.Context, id string) error {
	tt, err := uc.typeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tt == nil {
		return domain.ErrNotFound
	}
	count, err := uc.purchaseRepo.CountByTrainingType(ctx, tt.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrTrainingTypeInUse
	}
	return uc.typeRepo.Delete(ctx, id)
}
