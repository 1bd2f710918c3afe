package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/finanzas-api/internal/application/dto"
	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/budget"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios: perfil financiero y administración.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// UpdateProfile actualiza los campos enviados del perfil. Valida cada campo con los
// mismos límites que el motor de presupuesto.
func (uc *UserUseCase) UpdateProfile(id string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.MonthlyIncome != nil {
		if !in.MonthlyIncome.IsPositive() {
			return nil, fmt.Errorf("%w: monthly_income debe ser mayor que 0", domain.ErrInvalidInput)
		}
		user.MonthlyIncome = *in.MonthlyIncome
	}
	if in.City != nil {
		user.City = strings.TrimSpace(*in.City)
	}
	if in.FamilySize != nil {
		if *in.FamilySize < budget.MinFamilySize {
			return nil, fmt.Errorf("%w: family_size debe ser al menos %d", domain.ErrInvalidInput, budget.MinFamilySize)
		}
		user.FamilySize = *in.FamilySize
	}
	if in.Age != nil {
		if *in.Age < budget.MinAge || *in.Age > budget.MaxAge {
			return nil, fmt.Errorf("%w: age debe estar entre %d y %d", domain.ErrInvalidInput, budget.MinAge, budget.MaxAge)
		}
		user.Age = *in.Age
	}
	user.UpdatedAt = time.Now()

	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List usuarios paginados (admin).
func (uc *UserUseCase) List(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// SetStatus activa o suspende un usuario (admin).
func (uc *UserUseCase) SetStatus(id, status string) (*dto.UserResponse, error) {
	if status != entity.UserStatusActive && status != entity.UserStatusSuspended {
		return nil, fmt.Errorf("%w: status debe ser %s o %s", domain.ErrInvalidInput, entity.UserStatusActive, entity.UserStatusSuspended)
	}
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ToUserResponse mapea la entidad al DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		Status:        u.Status,
		EmailVerified: u.EmailVerified,
		Profile: dto.ProfileDTO{
			MonthlyIncome: u.MonthlyIncome,
			City:          u.City,
			FamilySize:    u.FamilySize,
			Age:           u.Age,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
