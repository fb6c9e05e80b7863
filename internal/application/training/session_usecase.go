package training

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/hours"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

// SessionUseCase casos de uso de sesiones de trabajo. Las horas calculadas se
// derivan siempre en el servidor a partir de los tramos horarios.
type SessionUseCase struct {
	sessionRepo  repository.WorkSessionRepository
	purchaseRepo repository.PurchaseRepository
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(sessionRepo repository.WorkSessionRepository, purchaseRepo repository.PurchaseRepository) *SessionUseCase {
	return &SessionUseCase{sessionRepo: sessionRepo, purchaseRepo: purchaseRepo}
}

// Create registra una sesión del técnico autenticado contra una compra.
// El protocolo se copia de la compra como snapshot.
func (uc *SessionUseCase) Create(ctx context.Context, technicianID, technicianName string, in dto.CreateWorkSessionRequest) (*dto.WorkSessionResponse, error) {
	if in.PurchaseID == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !validTransport(in.Transport) {
		return nil, domain.ErrInvalidInput
	}
	purchase, err := uc.purchaseRepo.GetByID(ctx, in.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}

	computed, err := hours.SessionHours(
		hours.TimeRange{Start: in.Start1, End: in.End1},
		hours.TimeRange{Start: in.Start2, End: in.End2},
	)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	session := &entity.WorkSession{
		ID:             uuid.New().String(),
		PurchaseID:     purchase.ID,
		Protocol:       purchase.Protocol,
		TechnicianID:   technicianID,
		TechnicianName: technicianName,
		Date:           in.Date,
		Start1:         in.Start1,
		End1:           in.End1,
		Start2:         in.Start2,
		End2:           in.End2,
		Attendees:      in.Attendees,
		Notes:          in.Notes,
		Transport:      in.Transport,
		UberOutCost:    in.UberOutCost,
		UberBackCost:   in.UberBackCost,
		VehicleKM:      in.VehicleKM,
		KMRate:         in.KMRate,
		ComputedHours:  computed,
		CreatedAt:      now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// GetByID obtiene una sesión.
func (uc *SessionUseCase) GetByID(ctx context.Context, id string) (*dto.WorkSessionResponse, error) {
	s, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return toSessionResponse(s), nil
}

// List lista sesiones; con purchaseID filtra por compra.
func (uc *SessionUseCase) List(ctx context.Context, purchaseID string) ([]*dto.WorkSessionResponse, error) {
	var (
		list []*entity.WorkSession
		err  error
	)
	if purchaseID != "" {
		list, err = uc.sessionRepo.ListByPurchase(ctx, purchaseID)
	} else {
		list, err = uc.sessionRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WorkSessionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSessionResponse(s))
	}
	return out, nil
}

// Update edita una sesión y recalcula sus horas.
func (uc *SessionUseCase) Update(ctx context.Context, id string, in dto.UpdateWorkSessionRequest) (*dto.WorkSessionResponse, error) {
	s, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if !validTransport(in.Transport) {
		return nil, domain.ErrInvalidInput
	}
	computed, err := hours.SessionHours(
		hours.TimeRange{Start: in.Start1, End: in.End1},
		hours.TimeRange{Start: in.Start2, End: in.End2},
	)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	if !in.Date.IsZero() {
		s.Date = in.Date
	}
	s.Start1 = in.Start1
	s.End1 = in.End1
	s.Start2 = in.Start2
	s.End2 = in.End2
	s.Attendees = in.Attendees
	s.Notes = in.Notes
	s.Transport = in.Transport
	s.UberOutCost = in.UberOutCost
	s.UberBackCost = in.UberBackCost
	s.VehicleKM = in.VehicleKM
	s.KMRate = in.KMRate
	s.ComputedHours = computed

	if err := uc.sessionRepo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSessionResponse(s), nil
}

// Delete elimina una sesión.
func (uc *SessionUseCase) Delete(ctx context.Context, id string) error {
	s, err := uc.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.sessionRepo.Delete(ctx, id)
}

func validTransport(t string) bool {
	switch t {
	case entity.TransportOnline, entity.TransportUber, entity.TransportOwnVehicle:
		return true
	default:
		return false
	}
}

func toSessionResponse(s *entity.WorkSession) *dto.WorkSessionResponse {
	return &dto.WorkSessionResponse{
		ID:             s.ID,
		PurchaseID:     s.PurchaseID,
		Protocol:       s.Protocol,
		TechnicianID:   s.TechnicianID,
		TechnicianName: s.TechnicianName,
		Date:           s.Date,
		Start1:         s.Start1,
		End1:           s.End1,
		Start2:         s.Start2,
		End2:           s.End2,
		Attendees:      s.Attendees,
		Notes:          s.Notes,
		Transport:      s.Transport,
		UberOutCost:    s.UberOutCost,
		UberBackCost:   s.UberBackCost,
		VehicleKM:      s.VehicleKM,
		KMRate:         s.KMRate,
		ComputedHours:  s.ComputedHours,
		CreatedAt:      s.CreatedAt,
	}
}
