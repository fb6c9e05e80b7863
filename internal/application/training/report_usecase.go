package training

import (
	"context"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/hours"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

// ReportUseCase vistas derivadas de solo lectura: rentabilidad, comisiones y
// el PDF de cierre. Nada se persiste; todo se recalcula por consulta a partir
// de las colecciones vigentes.
type ReportUseCase struct {
	purchaseRepo repository.PurchaseRepository
	sessionRepo  repository.WorkSessionRepository
	settingsRepo repository.SettingsRepository
	pdfGen       ClosureReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	purchaseRepo repository.PurchaseRepository,
	sessionRepo repository.WorkSessionRepository,
	settingsRepo repository.SettingsRepository,
	pdfGen ClosureReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		purchaseRepo: purchaseRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		pdfGen:       pdfGen,
	}
}

// loadCollections trae compras y sesiones en paralelo (dos consultas
// independientes de solo lectura).
func (uc *ReportUseCase) loadCollections(ctx context.Context) ([]*entity.Purchase, []*entity.WorkSession, error) {
	type purchasesResult struct {
		list []*entity.Purchase
		err  error
	}
	type sessionsResult struct {
		list []*entity.WorkSession
		err  error
	}
	pCh := make(chan purchasesResult, 1)
	sCh := make(chan sessionsResult, 1)

	go func() {
		list, err := uc.purchaseRepo.List(ctx)
		pCh <- purchasesResult{list, err}
	}()
	go func() {
		list, err := uc.sessionRepo.List(ctx)
		sCh <- sessionsResult{list, err}
	}()

	p := <-pCh
	s := <-sCh
	if p.err != nil {
		return nil, nil, p.err
	}
	if s.err != nil {
		return nil, nil, s.err
	}
	return p.list, s.list, nil
}

// Profitability reporte de rentabilidad: una fila por compra finalizada.
func (uc *ReportUseCase) Profitability(ctx context.Context) ([]*dto.ProfitabilityRow, error) {
	purchases, sessions, err := uc.loadCollections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProfitabilityRow, 0, len(purchases))
	for _, p := range purchases {
		if p.Status != entity.PurchaseCompleted {
			continue
		}
		prof := hours.ComputeProfitability(p, sessions)
		out = append(out, &dto.ProfitabilityRow{
			PurchaseID:      p.ID,
			Protocol:        p.Protocol,
			CustomerName:    p.CustomerName,
			TechnicianName:  p.TechnicianName,
			ContractValue:   p.ContractValue,
			CommissionValue: prof.CommissionValue,
			TransportCosts:  prof.TransportCosts,
			TotalCosts:      prof.TotalCosts,
			Profit:          prof.Profit,
			ProfitPercent:   prof.ProfitPercent,
			DaysToFinish:    prof.DaysToFinish,
			FinishDate:      p.FinishDate,
		})
	}
	return out, nil
}

// Commissions reporte de comisiones: compras finalizadas con valor de contrato
// y porcentaje de comisión positivos. paid filtra por estado de pago
// (nil = todas).
func (uc *ReportUseCase) Commissions(ctx context.Context, paid *bool) ([]*dto.CommissionRow, error) {
	purchases, err := uc.purchaseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CommissionRow, 0, len(purchases))
	for _, p := range purchases {
		if p.Status != entity.PurchaseCompleted {
			continue
		}
		if !p.ContractValue.IsPositive() || !p.CommissionPercent.IsPositive() {
			continue
		}
		if paid != nil && p.CommissionPaid != *paid {
			continue
		}
		out = append(out, &dto.CommissionRow{
			PurchaseID:        p.ID,
			Protocol:          p.Protocol,
			CustomerName:      p.CustomerName,
			TechnicianName:    p.TechnicianName,
			ContractValue:     p.ContractValue,
			CommissionPercent: p.CommissionPercent,
			CommissionValue:   hours.CommissionValue(p.ContractValue, p.CommissionPercent),
			CommissionPaid:    p.CommissionPaid,
			FinishDate:        p.FinishDate,
		})
	}
	return out, nil
}

// ClosureReportPDF genera el PDF de cierre de una compra: saldo de horas,
// tabla de sesiones y asistentes.
func (uc *ReportUseCase) ClosureReportPDF(ctx context.Context, purchaseID string) ([]byte, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	sessions, err := uc.sessionRepo.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	companyName := "TrainMaster"
	if settings, err := uc.settingsRepo.Get(ctx); err == nil && settings != nil && settings.CompanyName != "" {
		companyName = settings.CompanyName
	}

	used := hours.UsedHours(p.ID, sessions)
	data := ClosureReportData{
		CompanyName:     companyName,
		Protocol:        p.Protocol,
		CustomerName:    p.CustomerName,
		TechnicianName:  p.TechnicianName,
		TrainingType:    p.TrainingType,
		Modules:         p.Modules,
		Status:          p.Status,
		StartDate:       p.StartDate,
		FinishDate:      p.FinishDate,
		ContractedHours: p.ContractedHours,
		UsedHours:       used,
		Balance:         p.ContractedHours.Sub(used),
		Attendees:       aggregateAttendees(sessions),
	}
	for _, s := range sessions {
		data.Sessions = append(data.Sessions, ClosureReportSession{
			Date:           s.Date,
			TechnicianName: s.TechnicianName,
			Start1:         s.Start1,
			End1:           s.End1,
			Start2:         s.Start2,
			End2:           s.End2,
			Hours:          s.ComputedHours,
			Transport:      s.Transport,
		})
	}
	return uc.pdfGen.GenerateClosureReport(ctx, data)
}
