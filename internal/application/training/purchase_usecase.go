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
	"github.com/trainmaster-app/trainmaster-api/pkg/logger"
)

// PurchaseUseCase casos de uso de compras de horas: alta con protocolo
// externo, edición, borrado en cascada, resolver de residuales, saldo,
// finalización y reversión.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	sessionRepo  repository.WorkSessionRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
	protocolGen  ProtocolGenerator
	notifier     FinalizeNotifier
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	sessionRepo repository.WorkSessionRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	protocolGen ProtocolGenerator,
	notifier FinalizeNotifier,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		sessionRepo:  sessionRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		protocolGen:  protocolGen,
		notifier:     notifier,
		log:          log,
	}
}

// Create registra una compra nueva. Antes de persistir emite el protocolo vía
// webhook (sincrónico): si la emisión falla, la compra NO se guarda.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.CustomerID == "" || in.TrainingType == "" || in.TechnicianID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	technician, err := uc.userRepo.GetByID(ctx, in.TechnicianID)
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, domain.ErrUserNotFound
	}

	protocol, err := uc.protocolGen.GenerateProtocol(ctx, ProtocolRequest{
		CustomerName:      customer.Name,
		CustomerTaxID:     customer.TaxID,
		TechnicianName:    technician.Name,
		ExternalUsername:  technician.ExternalUsername,
		Requester:         in.Requester,
		Modules:           in.Modules,
		TrainingType:      in.TrainingType,
		ContractedHours:   in.ContractedHours,
		StartDate:         in.StartDate,
		ContractValue:     in.ContractValue,
		CommissionPercent: in.CommissionPercent,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startDate := in.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	purchase := &entity.Purchase{
		ID:                uuid.New().String(),
		CustomerID:        customer.ID,
		CustomerName:      customer.Name,
		Protocol:          protocol,
		Modules:           in.Modules,
		TrainingType:      in.TrainingType,
		Requester:         in.Requester,
		ContractedHours:   in.ContractedHours,
		ResidualAdded:     in.ResidualAdded,
		StartDate:         startDate,
		ContractValue:     in.ContractValue,
		CommissionPercent: in.CommissionPercent,
		Status:            entity.PurchasePending,
		TechnicianID:      technician.ID,
		TechnicianName:    technician.Name,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// GetByID obtiene una compra.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPurchaseResponse(p), nil
}

// List lista todas las compras.
func (uc *PurchaseUseCase) List(ctx context.Context) ([]*dto.PurchaseResponse, error) {
	list, err := uc.purchaseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return out, nil
}

// Update edita los campos de una compra. El protocolo, el estado y la fecha de
// cierre no se tocan por esta vía.
func (uc *PurchaseUseCase) Update(ctx context.Context, id string, in dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.TechnicianID != "" && in.TechnicianID != p.TechnicianID {
		technician, err := uc.userRepo.GetByID(ctx, in.TechnicianID)
		if err != nil {
			return nil, err
		}
		if technician == nil {
			return nil, domain.ErrUserNotFound
		}
		p.TechnicianID = technician.ID
		p.TechnicianName = technician.Name
	}
	p.Modules = in.Modules
	p.TrainingType = in.TrainingType
	p.Requester = in.Requester
	p.ContractedHours = in.ContractedHours
	p.ResidualAdded = in.ResidualAdded
	if !in.StartDate.IsZero() {
		p.StartDate = in.StartDate
	}
	p.ContractValue = in.ContractValue
	p.CommissionPercent = in.CommissionPercent
	p.Notes = in.Notes
	p.UpdatedAt = time.Now()

	if err := uc.purchaseRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// Delete borra la compra y sus sesiones en una sola transacción.
func (uc *PurchaseUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		sessionRepo repository.WorkSessionRepository,
	) error {
		if err := sessionRepo.DeleteByPurchase(ctx, id); err != nil {
			return err
		}
		return purchaseRepo.Delete(ctx, id)
	})
}

// ResidualPreview corre el resolver de residuales para el formulario de nueva
// compra. Debe re-ejecutarse cada vez que el operador cambia de cliente;
// excludeID descarta la compra en edición.
func (uc *PurchaseUseCase) ResidualPreview(ctx context.Context, customerID, excludeID string) (*dto.ResidualPreviewResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	purchases, err := uc.purchaseRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	res := hours.ResolveResidual(customerID, purchases, excludeID)
	return &dto.ResidualPreviewResponse{
		CustomerID:       customerID,
		Residual:         res.Residual,
		ContractedHours:  res.Residual, // el residual pre-carga también las horas contratadas
		SourcePurchaseID: res.SourcePurchaseID,
	}, nil
}

// Summary saldo de horas de la compra (vista derivada, recalculada en cada consulta).
func (uc *PurchaseUseCase) Summary(ctx context.Context, id string) (*dto.PurchaseSummaryResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	sessions, err := uc.sessionRepo.ListByPurchase(ctx, id)
	if err != nil {
		return nil, err
	}
	used := hours.UsedHours(p.ID, sessions)
	return &dto.PurchaseSummaryResponse{
		PurchaseID:      p.ID,
		ContractedHours: p.ContractedHours,
		UsedHours:       used,
		Balance:         p.ContractedHours.Sub(used),
		PercentComplete: hours.PercentComplete(p.ContractedHours, used),
		Sessions:        len(sessions),
	}, nil
}

// Finalize transiciona la compra pending → completed.
//
// Orden de efectos (fiel al flujo de cierre):
//  1. calcular el saldo vigente con el libro de horas;
//  2. despachar la notificación training_finalized (disparar-y-olvidar: corre
//     en goroutine propia, su fallo solo se registra en el log);
//  3. persistir status=completed, fecha de cierre = hoy y residual = saldo.
func (uc *PurchaseUseCase) Finalize(ctx context.Context, id, closureNote string) (*dto.PurchaseResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	sessions, err := uc.sessionRepo.ListByPurchase(ctx, id)
	if err != nil {
		return nil, err
	}

	used := hours.UsedHours(p.ID, sessions)
	balance := p.ContractedHours.Sub(used)
	today := time.Now()

	if err := p.Finalize(today, balance); err != nil {
		return nil, err
	}

	uc.dispatchFinalized(FinalizedEvent{
		PurchaseID:     p.ID,
		Protocol:       p.Protocol,
		CustomerName:   p.CustomerName,
		TechnicianName: p.TechnicianName,
		ClosureNote:    closureNote,
		UsedHours:      used,
		Balance:        balance,
		Attendees:      aggregateAttendees(sessions),
		FinishDate:     today,
	})

	p.UpdatedAt = today
	if err := uc.purchaseRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// Revert transiciona completed → pending. Rechazado si la comisión ya fue pagada.
func (uc *PurchaseUseCase) Revert(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := p.Revert(); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.purchaseRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// SetCommissionPaid marca o desmarca el pago de la comisión de una compra
// finalizada.
func (uc *PurchaseUseCase) SetCommissionPaid(ctx context.Context, id string, paid bool) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.Status != entity.PurchaseCompleted {
		return nil, domain.ErrPurchaseNotCompleted
	}
	p.CommissionPaid = paid
	p.UpdatedAt = time.Now()
	if err := uc.purchaseRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// dispatchFinalized lanza la notificación en goroutine propia con su propio
// context: la petición HTTP que disparó el cierre no debe esperar ni
// enterarse del resultado.
func (uc *PurchaseUseCase) dispatchFinalized(ev FinalizedEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := uc.notifier.NotifyTrainingFinalized(ctx, ev); err != nil {
			uc.log.Warn().Err(err).
				Str("purchase_id", ev.PurchaseID).
				Str("protocolo", ev.Protocol).
				Msg("notificación training_finalized falló (se ignora)")
		}
	}()
}

// aggregateAttendees reúne los asistentes de todas las sesiones de la compra,
// deduplicados por nombre y en orden de primera aparición.
func aggregateAttendees(sessions []*entity.WorkSession) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range sessions {
		for _, name := range s.Attendees {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:                p.ID,
		CustomerID:        p.CustomerID,
		CustomerName:      p.CustomerName,
		Protocol:          p.Protocol,
		Modules:           p.Modules,
		TrainingType:      p.TrainingType,
		Requester:         p.Requester,
		ContractedHours:   p.ContractedHours,
		ResidualAdded:     p.ResidualAdded,
		StartDate:         p.StartDate,
		FinishDate:        p.FinishDate,
		ContractValue:     p.ContractValue,
		CommissionPercent: p.CommissionPercent,
		Status:            p.Status,
		TechnicianID:      p.TechnicianID,
		TechnicianName:    p.TechnicianName,
		CommissionPaid:    p.CommissionPaid,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
	}
}
