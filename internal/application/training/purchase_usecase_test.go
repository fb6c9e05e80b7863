package training_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/application/training"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
	"github.com/trainmaster-app/trainmaster-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePurchaseRepo struct {
	byID map[string]*entity.Purchase
}

func newFakePurchaseRepo(purchases ...*entity.Purchase) *fakePurchaseRepo {
	r := &fakePurchaseRepo{byID: make(map[string]*entity.Purchase)}
	for _, p := range purchases {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	return r.byID[id], nil
}

func (r *fakePurchaseRepo) List(_ context.Context) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePurchaseRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.byID {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePurchaseRepo) Update(_ context.Context, p *entity.Purchase) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakePurchaseRepo) CountByCustomer(_ context.Context, customerID string) (int, error) {
	n := 0
	for _, p := range r.byID {
		if p.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *fakePurchaseRepo) CountByModuleName(_ context.Context, name string) (int, error) {
	n := 0
	for _, p := range r.byID {
		for _, m := range p.Modules {
			if m == name {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *fakePurchaseRepo) CountByTrainingType(_ context.Context, tt string) (int, error) {
	n := 0
	for _, p := range r.byID {
		if p.TrainingType == tt {
			n++
		}
	}
	return n, nil
}

func (r *fakePurchaseRepo) UpdateCustomerName(_ context.Context, customerID, name string) error {
	for _, p := range r.byID {
		if p.CustomerID == customerID {
			p.CustomerName = name
		}
	}
	return nil
}

type fakeSessionRepo struct {
	sessions []*entity.WorkSession
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.WorkSession) error {
	r.sessions = append(r.sessions, s)
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*entity.WorkSession, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) List(_ context.Context) ([]*entity.WorkSession, error) {
	return r.sessions, nil
}

func (r *fakeSessionRepo) ListByPurchase(_ context.Context, purchaseID string) ([]*entity.WorkSession, error) {
	var out []*entity.WorkSession
	for _, s := range r.sessions {
		if s.PurchaseID == purchaseID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entity.WorkSession) error { return nil }

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	var kept []*entity.WorkSession
	for _, s := range r.sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	r.sessions = kept
	return nil
}

func (r *fakeSessionRepo) DeleteByPurchase(_ context.Context, purchaseID string) error {
	var kept []*entity.WorkSession
	for _, s := range r.sessions {
		if s.PurchaseID != purchaseID {
			kept = append(kept, s)
		}
	}
	r.sessions = kept
	return nil
}

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}
func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	return r.byID[id], nil
}
func (r *fakeCustomerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeCustomerRepo) List(_ context.Context) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) Delete(_ context.Context, id string) error          { return nil }

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, id string) error      { return nil }

// fakeTxRunner ejecuta el callback directamente con los fakes (sin transacción real).
type fakeTxRunner struct {
	purchaseRepo *fakePurchaseRepo
	sessionRepo  *fakeSessionRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	sessionRepo repository.WorkSessionRepository,
) error) error {
	return fn(r.purchaseRepo, r.sessionRepo)
}

// fakeProtocolGen emite protocolos fijos o falla según se configure.
type fakeProtocolGen struct {
	protocol string
	err      error
	calls    int
}

func (g *fakeProtocolGen) GenerateProtocol(_ context.Context, _ training.ProtocolRequest) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.protocol, nil
}

// fakeNotifier registra el evento recibido y avisa por canal (la notificación
// corre en goroutine propia).
type fakeNotifier struct {
	err    error
	events chan training.FinalizedEvent
}

func newFakeNotifier(err error) *fakeNotifier {
	return &fakeNotifier{err: err, events: make(chan training.FinalizedEvent, 1)}
}

func (n *fakeNotifier) NotifyTrainingFinalized(_ context.Context, ev training.FinalizedEvent) error {
	n.events <- ev
	return n.err
}

func (n *fakeNotifier) waitEvent(t *testing.T) training.FinalizedEvent {
	t.Helper()
	select {
	case ev := <-n.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación training_finalized nunca se despachó")
		return training.FinalizedEvent{}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc           *training.PurchaseUseCase
	purchaseRepo *fakePurchaseRepo
	sessionRepo  *fakeSessionRepo
	customerRepo *fakeCustomerRepo
	userRepo     *fakeUserRepo
	protocolGen  *fakeProtocolGen
	notifier     *fakeNotifier
}

func newFixture(notifierErr error, purchases ...*entity.Purchase) *fixture {
	purchaseRepo := newFakePurchaseRepo(purchases...)
	sessionRepo := &fakeSessionRepo{}
	customerRepo := &fakeCustomerRepo{byID: map[string]*entity.Customer{
		"c1": {ID: "c1", Name: "Acme Ltda", TaxID: "12.345.678/0001-00"},
	}}
	userRepo := &fakeUserRepo{byID: map[string]*entity.User{
		"t1": {ID: "t1", Name: "Carlos Técnico", ExternalUsername: "carlos.t"},
	}}
	protocolGen := &fakeProtocolGen{protocol: "PROTO-2024-001"}
	notifier := newFakeNotifier(notifierErr)

	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := training.NewPurchaseUseCase(
		&fakeTxRunner{purchaseRepo: purchaseRepo, sessionRepo: sessionRepo},
		purchaseRepo, sessionRepo, customerRepo, userRepo,
		protocolGen, notifier, log,
	)
	return &fixture{
		uc:           uc,
		purchaseRepo: purchaseRepo,
		sessionRepo:  sessionRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		protocolGen:  protocolGen,
		notifier:     notifier,
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func pendingWithHours(id string, contracted string) *entity.Purchase {
	return &entity.Purchase{
		ID:              id,
		CustomerID:      "c1",
		CustomerName:    "Acme Ltda",
		Protocol:        "PROTO-X",
		ContractedHours: dec(contracted),
		Status:          entity.PurchasePending,
		TechnicianName:  "Carlos Técnico",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: emisión de protocolo sincrónica y fatal
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EmiteProtocoloYPersiste(t *testing.T) {
	f := newFixture(nil)

	out, err := f.uc.Create(context.Background(), dto.CreatePurchaseRequest{
		CustomerID:      "c1",
		TrainingType:    "Implantación",
		TechnicianID:    "t1",
		ContractedHours: dec("20"),
	})
	require.NoError(t, err)

	assert.Equal(t, "PROTO-2024-001", out.Protocol, "el protocolo lo emite el webhook antes de persistir")
	assert.Equal(t, entity.PurchasePending, out.Status, "toda compra nueva nace pending")
	assert.Equal(t, "Acme Ltda", out.CustomerName, "la razón social se copia desnormalizada")
	assert.Equal(t, "Carlos Técnico", out.TechnicianName)
	assert.Equal(t, 1, f.protocolGen.calls)
}

func TestCreate_FalloDeProtocolo_NoPersisteNada(t *testing.T) {
	f := newFixture(nil)
	f.protocolGen.err = errors.New("webhook caído")

	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseRequest{
		CustomerID:   "c1",
		TrainingType: "Implantación",
		TechnicianID: "t1",
	})
	require.Error(t, err, "sin protocolo no hay alta")
	assert.Empty(t, f.purchaseRepo.byID, "no debe quedar persistencia parcial")
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(nil)

	_, err := f.uc.Create(context.Background(), dto.CreatePurchaseRequest{
		CustomerID:   "no-existe",
		TrainingType: "Implantación",
		TechnicianID: "t1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.protocolGen.calls, "no se pide protocolo para un cliente inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Finalize
// ──────────────────────────────────────────────────────────────────────────────

func TestFinalize_CierraConResidualIgualAlSaldo(t *testing.T) {
	p := pendingWithHours("p1", "10")
	f := newFixture(nil, p)
	f.sessionRepo.sessions = []*entity.WorkSession{
		{ID: "s1", PurchaseID: "p1", ComputedHours: dec("6"), Attendees: []string{"Ana"}},
	}

	out, err := f.uc.Finalize(context.Background(), "p1", "entrenamiento concluido")
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseCompleted, out.Status)
	require.NotNil(t, out.FinishDate)
	assert.Equal(t, time.Now().Format("2006-01-02"), out.FinishDate.Format("2006-01-02"),
		"la fecha de cierre es hoy")
	assert.Equal(t, "4", out.ResidualAdded.String(),
		"el residual congelado es el saldo al momento del cierre (10 − 6)")

	ev := f.notifier.waitEvent(t)
	assert.Equal(t, "p1", ev.PurchaseID)
	assert.Equal(t, "6", ev.UsedHours.String())
	assert.Equal(t, "4", ev.Balance.String())
	assert.Equal(t, "entrenamiento concluido", ev.ClosureNote)
	assert.Equal(t, []string{"Ana"}, ev.Attendees)
}

func TestFinalize_SaldoCero_ResidualCero(t *testing.T) {
	p := pendingWithHours("p1", "10")
	f := newFixture(nil, p)
	f.sessionRepo.sessions = []*entity.WorkSession{
		{ID: "s1", PurchaseID: "p1", ComputedHours: dec("10")},
	}

	out, err := f.uc.Finalize(context.Background(), "p1", "")
	require.NoError(t, err)
	f.notifier.waitEvent(t)

	assert.True(t, out.ResidualAdded.IsZero(),
		"con saldo 0 el residual es 0 y esta compra no aportará herencia futura")
}

func TestFinalize_RedondeaResidualAUnDecimal(t *testing.T) {
	p := pendingWithHours("p1", "10")
	f := newFixture(nil, p)
	f.sessionRepo.sessions = []*entity.WorkSession{
		{ID: "s1", PurchaseID: "p1", ComputedHours: dec("6.92")},
	}

	out, err := f.uc.Finalize(context.Background(), "p1", "")
	require.NoError(t, err)
	f.notifier.waitEvent(t)

	assert.Equal(t, "3.1", out.ResidualAdded.String(), "10 − 6.92 = 3.08 → 3.1 a un decimal")
}

func TestFinalize_CompraYaFinalizada_Rechazado(t *testing.T) {
	p := pendingWithHours("p1", "10")
	p.Status = entity.PurchaseCompleted
	f := newFixture(nil, p)

	_, err := f.uc.Finalize(context.Background(), "p1", "")
	assert.ErrorIs(t, err, domain.ErrPurchaseNotPending)
}

func TestFinalize_SinID_Rechazado(t *testing.T) {
	f := newFixture(nil)
	_, err := f.uc.Finalize(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El fallo del webhook de notificación se traga: se registra en el log y el
// cierre queda firme igual.
func TestFinalize_FalloDeNotificacion_NoBloqueaElCierre(t *testing.T) {
	p := pendingWithHours("p1", "10")
	f := newFixture(errors.New("endpoint 500"), p)

	out, err := f.uc.Finalize(context.Background(), "p1", "")
	require.NoError(t, err, "el fallo del webhook jamás llega al operador")
	f.notifier.waitEvent(t)

	assert.Equal(t, entity.PurchaseCompleted, out.Status)
	assert.Equal(t, entity.PurchaseCompleted, f.purchaseRepo.byID["p1"].Status,
		"la transición persiste aunque la notificación haya fallado")
}

func TestFinalize_AsistentesDeduplicadosPorNombre(t *testing.T) {
	p := pendingWithHours("p1", "10")
	f := newFixture(nil, p)
	f.sessionRepo.sessions = []*entity.WorkSession{
		{ID: "s1", PurchaseID: "p1", ComputedHours: dec("2"), Attendees: []string{"Ana", "Bruno"}},
		{ID: "s2", PurchaseID: "p1", ComputedHours: dec("2"), Attendees: []string{"Bruno", "Clara"}},
	}

	_, err := f.uc.Finalize(context.Background(), "p1", "")
	require.NoError(t, err)

	ev := f.notifier.waitEvent(t)
	assert.Equal(t, []string{"Ana", "Bruno", "Clara"}, ev.Attendees,
		"asistentes de todas las sesiones, sin duplicados, en orden de aparición")
}

// ──────────────────────────────────────────────────────────────────────────────
// Revert
// ──────────────────────────────────────────────────────────────────────────────

func TestRevert_ComisionPagada_Rechazado(t *testing.T) {
	finish := time.Now()
	p := &entity.Purchase{
		ID:             "p1",
		CustomerID:     "c1",
		Status:         entity.PurchaseCompleted,
		FinishDate:     &finish,
		ResidualAdded:  dec("4"),
		CommissionPaid: true,
	}
	f := newFixture(nil, p)

	_, err := f.uc.Revert(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrCommissionPaid)
	assert.Equal(t, entity.PurchaseCompleted, f.purchaseRepo.byID["p1"].Status,
		"el estado no cambia ante el rechazo")
}

func TestRevert_SinComisionPagada_VuelveAPending(t *testing.T) {
	finish := time.Now()
	p := &entity.Purchase{
		ID:            "p1",
		CustomerID:    "c1",
		Status:        entity.PurchaseCompleted,
		FinishDate:    &finish,
		ResidualAdded: dec("4"),
	}
	f := newFixture(nil, p)

	out, err := f.uc.Revert(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, entity.PurchasePending, out.Status)
	assert.Nil(t, out.FinishDate, "la fecha de cierre se limpia")
	assert.True(t, out.ResidualAdded.IsZero(), "el residual congelado se descarta")
}

func TestRevert_CompraPendiente_Rechazado(t *testing.T) {
	f := newFixture(nil, pendingWithHours("p1", "10"))

	_, err := f.uc.Revert(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrPurchaseNotCompleted)
}

// ──────────────────────────────────────────────────────────────────────────────
// ResidualPreview (resolver vía caso de uso)
// ──────────────────────────────────────────────────────────────────────────────

func TestResidualPreview_PrecargaResidualYHoras(t *testing.T) {
	finish := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	p := &entity.Purchase{
		ID:            "vieja",
		CustomerID:    "c1",
		Status:        entity.PurchaseCompleted,
		FinishDate:    &finish,
		ResidualAdded: dec("5.5"),
	}
	f := newFixture(nil, p)

	out, err := f.uc.ResidualPreview(context.Background(), "c1", "")
	require.NoError(t, err)

	assert.Equal(t, "5.5", out.Residual.String())
	assert.Equal(t, "5.5", out.ContractedHours.String(),
		"el residual pre-carga también las horas contratadas del borrador")
	assert.Equal(t, "vieja", out.SourcePurchaseID)
}

func TestResidualPreview_CompraEnVueloBloquea(t *testing.T) {
	finish := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	completed := &entity.Purchase{
		ID: "vieja", CustomerID: "c1", Status: entity.PurchaseCompleted,
		FinishDate: &finish, ResidualAdded: dec("5.5"),
	}
	pending := pendingWithHours("en-vuelo", "10")
	f := newFixture(nil, completed, pending)

	out, err := f.uc.ResidualPreview(context.Background(), "c1", "")
	require.NoError(t, err)
	assert.True(t, out.Residual.IsZero(), "una compra pending bloquea la herencia")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete en cascada y comisión
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_CascadaDeSesiones(t *testing.T) {
	p := pendingWithHours("p1", "10")
	f := newFixture(nil, p)
	f.sessionRepo.sessions = []*entity.WorkSession{
		{ID: "s1", PurchaseID: "p1"},
		{ID: "s2", PurchaseID: "p1"},
		{ID: "s3", PurchaseID: "otra"},
	}

	require.NoError(t, f.uc.Delete(context.Background(), "p1"))

	assert.Nil(t, f.purchaseRepo.byID["p1"])
	assert.Len(t, f.sessionRepo.sessions, 1, "solo sobreviven las sesiones de otras compras")
	assert.Equal(t, "s3", f.sessionRepo.sessions[0].ID)
}

func TestSetCommissionPaid_SoloCompraFinalizada(t *testing.T) {
	f := newFixture(nil, pendingWithHours("p1", "10"))

	_, err := f.uc.SetCommissionPaid(context.Background(), "p1", true)
	assert.ErrorIs(t, err, domain.ErrPurchaseNotCompleted)
}

func TestSummary_CalculaSaldoYAvance(t *testing.T) {
	p := pendingWithHours("p1", "10")
	f := newFixture(nil, p)
	f.sessionRepo.sessions = []*entity.WorkSession{
		{ID: "s1", PurchaseID: "p1", ComputedHours: dec("6")},
	}

	out, err := f.uc.Summary(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "6", out.UsedHours.String())
	assert.Equal(t, "4", out.Balance.String())
	assert.Equal(t, "60", out.PercentComplete.String())
	assert.Equal(t, 1, out.Sessions)
}
