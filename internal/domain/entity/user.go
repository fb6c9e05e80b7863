package entity

import "time"

// Roles válidos para User.
const (
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// User representa un usuario del sistema (gerente o técnico de campo).
// Login es el documento fiscal (CPF) usado como nombre de usuario.
type User struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	Login            string
	PasswordHash     string // bcrypt hash, nunca plano en dominio después de persistir
	Role             string // MANAGER, EMPLOYEE
	Active           bool
	ExternalUsername string // usuario en el sistema externo que emite protocolos
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
