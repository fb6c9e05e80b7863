package entity

import "time"

// Contact persona de contacto de un cliente corporativo.
// KeyUser marca a los contactos habilitados como solicitantes de una compra de horas.
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	KeyUser bool   `json:"key_user"`
}

// Customer representa una empresa cliente.
type Customer struct {
	ID          string
	Name        string // razón social
	TaxID       string // CNPJ
	ExternalRef string // id en el sistema externo (opcional)
	Contacts    []Contact
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KeyUsers devuelve los contactos marcados como key user, en el orden registrado.
func (c *Customer) KeyUsers() []Contact {
	var out []Contact
	for _, ct := range c.Contacts {
		if ct.KeyUser {
			out = append(out, ct)
		}
	}
	return out
}
