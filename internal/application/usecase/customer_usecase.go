// Package usecase casos de uso administrativos: clientes, usuarios, datos de
// referencia y configuración.
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

// CustomerUseCase casos de uso de clientes corporativos.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	purchaseRepo repository.PurchaseRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, purchaseRepo repository.PurchaseRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, purchaseRepo: purchaseRepo}
}

// Create alta de cliente. El CNPJ debe ser único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.customerRepo.GetByTaxID(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		TaxID:       in.TaxID,
		ExternalRef: in.ExternalRef,
		Contacts:    toContacts(in.Contacts),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCustomerResponse(c), nil
}

// List lista todos los clientes.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update edita un cliente. Si cambia la razón social, el nombre desnormalizado
// se propaga a todas sus compras.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.TaxID != "" && in.TaxID != c.TaxID {
		other, err := uc.customerRepo.GetByTaxID(ctx, in.TaxID)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
		c.TaxID = in.TaxID
	}

	renamed := in.Name != "" && in.Name != c.Name
	if in.Name != "" {
		c.Name = in.Name
	}
	c.ExternalRef = in.ExternalRef
	c.Contacts = toContacts(in.Contacts)
	c.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	if renamed {
		if err := uc.purchaseRepo.UpdateCustomerName(ctx, c.ID, c.Name); err != nil {
			return nil, err
		}
	}
	return toCustomerResponse(c), nil
}

// Delete borra un cliente. Rechazado si tiene compras registradas.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	count, err := uc.purchaseRepo.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCustomerInUse
	}
	return uc.customerRepo.Delete(ctx, id)
}

func toContacts(in []dto.ContactDTO) []entity.Contact {
	out := make([]entity.Contact, 0, len(in))
	for _, c := range in {
		out = append(out, entity.Contact{
			Name:    c.Name,
			Phone:   c.Phone,
			Email:   c.Email,
			KeyUser: c.KeyUser,
		})
	}
	return out
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	contacts := make([]dto.ContactDTO, 0, len(c.Contacts))
	for _, ct := range c.Contacts {
		contacts = append(contacts, dto.ContactDTO{
			Name:    ct.Name,
			Phone:   ct.Phone,
			Email:   ct.Email,
			KeyUser: ct.KeyUser,
		})
	}
	return &dto.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		TaxID:       c.TaxID,
		ExternalRef: c.ExternalRef,
		Contacts:    contacts,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
