package service

import (
	"context"

	"github.com/shopspring/decimal"

	"user_management/internal/model"
	"user_management/internal/repository"
	"user_management/internal/utils"
	"user_management/internal/validation"
)

// UserService defines operations for users
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	// ResolveRoles attaches the role set of every user with one repository call.
	ResolveRoles(ctx context.Context, users []model.User) ([]model.UserWithRoles, error)
	GetUser(ctx context.Context, id int64) (*model.UserWithRoles, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validation.Validator
	hasher    *utils.PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepository, v *validation.Validator, hasher *utils.PasswordHasher) UserService {
	return &userService{repo: repo, validator: v, hasher: hasher}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) ResolveRoles(ctx context.Context, users []model.User) ([]model.UserWithRoles, error) {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	roles, err := s.repo.RolesForUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserWithRoles, len(users))
	for i, u := range users {
		userRoles := roles[u.ID]
		if userRoles == nil {
			userRoles = []model.Role{}
		}
		result[i] = model.UserWithRoles{User: u, Roles: userRoles}
	}
	return result, nil
}

// GetUser returns the user together with its roles.
func (s *userService) GetUser(ctx context.Context, id int64) (*model.UserWithRoles, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	withRoles, err := s.ResolveRoles(ctx, []model.User{*user})
	if err != nil {
		return nil, err
	}
	return &withRoles[0], nil
}

func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := s.validator.CreateUser(req); err != nil {
		return nil, observe("user", "create", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, observe("user", "create", model.NewStorageError("failed to hash password", err))
	}

	nu := model.NewUser{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		IsActive:     true,
		HourlyRate:   decimal.Zero,
	}
	if req.IsActive != nil {
		nu.IsActive = *req.IsActive
	}
	if req.HourlyRate != nil {
		nu.HourlyRate = *req.HourlyRate
	}

	user, err := s.repo.Create(ctx, nu)
	return user, observe("user", "create", err)
}

func (s *userService) UpdateUser(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	if err := s.validator.UpdateUser(req); err != nil {
		return nil, observe("user", "update", err)
	}

	var changes model.UserChanges
	if req.Email.HasValue() {
		changes.Email = &req.Email.Value
	}
	if req.FullName.HasValue() {
		changes.FullName = &req.FullName.Value
	}
	if req.IsActive.HasValue() {
		changes.IsActive = &req.IsActive.Value
	}
	if req.HourlyRate.HasValue() {
		changes.HourlyRate = &req.HourlyRate.Value
	}
	if req.Password.HasValue() {
		hash, err := s.hasher.Hash(req.Password.Value)
		if err != nil {
			return nil, observe("user", "update", model.NewStorageError("failed to hash password", err))
		}
		changes.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, changes)
	return user, observe("user", "update", err)
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return observe("user", "delete", s.repo.Delete(ctx, id))
}
