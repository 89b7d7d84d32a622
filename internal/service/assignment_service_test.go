package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user_management/internal/model"
	"user_management/internal/validation"
)

type stubAssignmentRepo struct {
	users       map[int64]bool
	roles       map[int64]bool
	assignments []model.Assignment
	nextID      int64
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{
		users:  map[int64]bool{1: true, 2: true},
		roles:  map[int64]bool{1: true, 2: true},
		nextID: 1,
	}
}

func (r *stubAssignmentRepo) Create(_ context.Context, userID, roleID int64) (*model.Assignment, error) {
	if !r.users[userID] {
		return nil, model.NewNotFoundError("user not found")
	}
	if !r.roles[roleID] {
		return nil, model.NewNotFoundError("role not found")
	}
	for _, a := range r.assignments {
		if a.UserID == userID && a.RoleID == roleID {
			return nil, model.NewConflictError("user already has this role")
		}
	}
	a := model.Assignment{
		ID:     r.nextID,
		UserID: userID,
		RoleID: roleID,
		User:   &model.UserSummary{ID: userID},
		Role:   &model.Role{ID: roleID},
	}
	r.nextID++
	r.assignments = append(r.assignments, a)
	return &a, nil
}

func (r *stubAssignmentRepo) Delete(_ context.Context, userID, roleID int64) error {
	for i, a := range r.assignments {
		if a.UserID == userID && a.RoleID == roleID {
			r.assignments = append(r.assignments[:i], r.assignments[i+1:]...)
			return nil
		}
	}
	return model.NewNotFoundError("user role assignment not found")
}

func (r *stubAssignmentRepo) ListByUser(_ context.Context, userID int64) ([]model.Assignment, error) {
	if !r.users[userID] {
		return nil, model.NewNotFoundError("user not found")
	}
	list := []model.Assignment{}
	for _, a := range r.assignments {
		if a.UserID == userID {
			list = append(list, a)
		}
	}
	return list, nil
}

func (r *stubAssignmentRepo) ListAll(_ context.Context) ([]model.Assignment, error) {
	return append([]model.Assignment{}, r.assignments...), nil
}

func roleID(id int64) model.AssignRoleRequest {
	return model.AssignRoleRequest{RoleID: &id}
}

func TestAssignmentService_AssignAndRemove(t *testing.T) {
	repo := newStubAssignmentRepo()
	svc := NewAssignmentService(repo, validation.New(1))
	ctx := context.Background()

	a, err := svc.AssignRole(ctx, 1, roleID(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.UserID)
	assert.Equal(t, int64(1), a.Role.ID)

	_, err = svc.AssignRole(ctx, 1, roleID(1))
	assert.ErrorIs(t, err, model.ErrConflict)

	list, err := svc.ListUserRoles(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.RemoveRole(ctx, 1, 1))
	assert.ErrorIs(t, svc.RemoveRole(ctx, 1, 1), model.ErrNotFound)

	all, err := svc.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAssignmentService_AssignRole_Validation(t *testing.T) {
	repo := newStubAssignmentRepo()
	svc := NewAssignmentService(repo, validation.New(1))

	_, err := svc.AssignRole(context.Background(), 1, model.AssignRoleRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, "role_id is required", err.Error())

	_, err = svc.AssignRole(context.Background(), 1, roleID(0))
	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Empty(t, repo.assignments)
}

func TestAssignmentService_AssignRole_UnknownEntities(t *testing.T) {
	svc := NewAssignmentService(newStubAssignmentRepo(), validation.New(1))

	_, err := svc.AssignRole(context.Background(), 99, roleID(1))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.AssignRole(context.Background(), 1, roleID(99))
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.ListUserRoles(context.Background(), 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "validation", errorKind(model.NewValidationError("x")))
	assert.Equal(t, "not_found", errorKind(model.NewNotFoundError("x")))
	assert.Equal(t, "conflict", errorKind(model.NewConflictError("x")))
	assert.Equal(t, "storage", errorKind(model.NewStorageError("op", assert.AnError)))
}
