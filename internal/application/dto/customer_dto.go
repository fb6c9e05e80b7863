package dto

import "time"

// ContactDTO contacto de un cliente corporativo.
type ContactDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	KeyUser bool   `json:"key_user"`
}

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name        string       `json:"name"`
	TaxID       string       `json:"tax_id"`
	ExternalRef string       `json:"external_ref"`
	Contacts    []ContactDTO `json:"contacts"`
}

// UpdateCustomerRequest edición de cliente.
type UpdateCustomerRequest struct {
	Name        string       `json:"name"`
	TaxID       string       `json:"tax_id"`
	ExternalRef string       `json:"external_ref"`
	Contacts    []ContactDTO `json:"contacts"`
}

// CustomerResponse representación de un cliente.
type CustomerResponse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	TaxID       string       `json:"tax_id"`
	ExternalRef string       `json:"external_ref,omitempty"`
	Contacts    []ContactDTO `json:"contacts"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
