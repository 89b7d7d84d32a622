package service

import (
	"context"

	"user_management/internal/model"
	"user_management/internal/repository"
	"user_management/internal/validation"
)

// AssignmentService manages the roles held by users
type AssignmentService interface {
	AssignRole(ctx context.Context, userID int64, req model.AssignRoleRequest) (*model.Assignment, error)
	RemoveRole(ctx context.Context, userID, roleID int64) error
	ListUserRoles(ctx context.Context, userID int64) ([]model.Assignment, error)
	ListAssignments(ctx context.Context) ([]model.Assignment, error)
}

type assignmentService struct {
	repo      repository.AssignmentRepository
	validator *validation.Validator
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(repo repository.AssignmentRepository, v *validation.Validator) AssignmentService {
	return &assignmentService{repo: repo, validator: v}
}

func (s *assignmentService) AssignRole(ctx context.Context, userID int64, req model.AssignRoleRequest) (*model.Assignment, error) {
	if err := s.validator.AssignRole(req); err != nil {
		return nil, observe("assignment", "create", err)
	}
	assignment, err := s.repo.Create(ctx, userID, *req.RoleID)
	return assignment, observe("assignment", "create", err)
}

func (s *assignmentService) RemoveRole(ctx context.Context, userID, roleID int64) error {
	return observe("assignment", "delete", s.repo.Delete(ctx, userID, roleID))
}

func (s *assignmentService) ListUserRoles(ctx context.Context, userID int64) ([]model.Assignment, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *assignmentService) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	return s.repo.ListAll(ctx)
}
