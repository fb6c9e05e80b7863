package dto

import "time"

// LoginRequest credenciales de acceso. Login es el documento fiscal (CPF).
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisterRequest alta de usuario (solo MANAGER).
type RegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Login            string `json:"login"`
	Password         string `json:"password"`
	Role             string `json:"role"` // MANAGER | EMPLOYEE
	ExternalUsername string `json:"external_username"`
}

// UpdateUserRequest edición de usuario. Password vacío = no cambiar.
type UpdateUserRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	Active           *bool  `json:"active"`
	ExternalUsername string `json:"external_username"`
}

// UserResponse representación de un usuario (nunca incluye el hash).
type UserResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	Login            string    `json:"login"`
	Role             string    `json:"role"`
	Active           bool      `json:"active"`
	ExternalUsername string    `json:"external_username,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
