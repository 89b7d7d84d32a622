package service

import (
	"context"

	"user_management/internal/model"
	"user_management/internal/repository"
	"user_management/internal/validation"
)

// RoleService defines operations for roles
type RoleService interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRole(ctx context.Context, id int64) (*model.Role, error)
	CreateRole(ctx context.Context, req model.CreateRoleRequest) (*model.Role, error)
	UpdateRole(ctx context.Context, id int64, req model.UpdateRoleRequest) (*model.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}

type roleService struct {
	repo      repository.RoleRepository
	validator *validation.Validator
}

// NewRoleService creates a new RoleService
func NewRoleService(repo repository.RoleRepository, v *validation.Validator) RoleService {
	return &roleService{repo: repo, validator: v}
}

func (s *roleService) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.repo.List(ctx)
}

func (s *roleService) GetRole(ctx context.Context, id int64) (*model.Role, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *roleService) CreateRole(ctx context.Context, req model.CreateRoleRequest) (*model.Role, error) {
	if err := s.validator.CreateRole(req); err != nil {
		return nil, observe("role", "create", err)
	}
	role, err := s.repo.Create(ctx, req)
	return role, observe("role", "create", err)
}

func (s *roleService) UpdateRole(ctx context.Context, id int64, req model.UpdateRoleRequest) (*model.Role, error) {
	if err := s.validator.UpdateRole(req); err != nil {
		return nil, observe("role", "update", err)
	}
	role, err := s.repo.Update(ctx, id, req)
	return role, observe("role", "update", err)
}

func (s *roleService) DeleteRole(ctx context.Context, id int64) error {
	return observe("role", "delete", s.repo.Delete(ctx, id))
}
