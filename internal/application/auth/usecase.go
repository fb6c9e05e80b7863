// Package auth autenticación por login (CPF) + contraseña y emisión de JWT.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
	"github.com/trainmaster-app/trainmaster-api/pkg/jwt"
)

// UseCase caso de uso de autenticación.
type UseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	expMinutes int
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, expMinutes int) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		expMinutes: expMinutes,
	}
}

// Login valida credenciales y emite el token. Nunca distingue entre usuario
// inexistente, inactivo y contraseña incorrecta: siempre ErrUnauthorized.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByLogin(ctx, in.Login)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtSecret, user.ID, user.Name, user.Role, uc.jwtIssuer, uc.expMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:               user.ID,
			Name:             user.Name,
			Email:            user.Email,
			Phone:            user.Phone,
			Login:            user.Login,
			Role:             user.Role,
			Active:           user.Active,
			ExternalUsername: user.ExternalUsername,
			CreatedAt:        user.CreatedAt,
			UpdatedAt:        user.UpdatedAt,
		},
	}, nil
}

// HashPassword genera el hash bcrypt de una contraseña en claro.
func HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
