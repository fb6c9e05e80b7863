package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trainmaster-app/trainmaster-api/internal/application/auth"
	"github.com/trainmaster-app/trainmaster-api/internal/application/dto"
	"github.com/trainmaster-app/trainmaster-api/internal/domain"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/entity"
	"github.com/trainmaster-app/trainmaster-api/internal/domain/repository"
)

// UserUseCase administración de usuarios. Todas las operaciones de escritura
// están reservadas al rol MANAGER (lo impone el middleware de la capa HTTP).
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Register alta de usuario. El login (CPF) debe ser único; la contraseña se
// guarda solo como hash bcrypt.
func (uc *UserUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Login == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByLogin(ctx, in.Login)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrLoginAlreadyExists
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Login:            in.Login,
		PasswordHash:     hash,
		Role:             in.Role,
		Active:           true,
		ExternalUsername: in.ExternalUsername,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return toUserResponse(u), nil
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	list, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Update edita un usuario. Password vacío conserva la contraseña actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Role != "" {
		if !validRole(in.Role) {
			return nil, domain.ErrInvalidInput
		}
		u.Role = in.Role
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	u.Email = in.Email
	u.Phone = in.Phone
	u.ExternalUsername = in.ExternalUsername
	if in.Active != nil {
		u.Active = *in.Active
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Delete borra un usuario. Un usuario no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, id, requesterID string) error {
	if id == requesterID {
		return domain.ErrSelfDelete
	}
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}

func validRole(role string) bool {
	return role == entity.RoleManager || role == entity.RoleEmployee
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Phone:            u.Phone,
		Login:            u.Login,
		Role:             u.Role,
		Active:           u.Active,
		ExternalUsername: u.ExternalUsername,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
