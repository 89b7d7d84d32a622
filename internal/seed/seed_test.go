package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user_management/internal/model"
)

type fakeRoles struct {
	roles []model.Role
}

func (f *fakeRoles) ListRoles(context.Context) ([]model.Role, error) { return f.roles, nil }

func (f *fakeRoles) GetRole(context.Context, int64) (*model.Role, error) {
	return nil, model.NewNotFoundError("role not found")
}

func (f *fakeRoles) CreateRole(_ context.Context, req model.CreateRoleRequest) (*model.Role, error) {
	for _, r := range f.roles {
		if r.Name == req.Name {
			return nil, model.NewConflictError("role name already exists")
		}
	}
	r := model.Role{ID: int64(len(f.roles) + 1), Name: req.Name, Description: req.Description}
	f.roles = append(f.roles, r)
	return &r, nil
}

func (f *fakeRoles) UpdateRole(context.Context, int64, model.UpdateRoleRequest) (*model.Role, error) {
	return nil, nil
}

func (f *fakeRoles) DeleteRole(context.Context, int64) error { return nil }

type fakeUsers struct {
	emails map[string]int64
}

func (f *fakeUsers) ListUsers(context.Context) ([]model.User, error) { return nil, nil }

func (f *fakeUsers) ResolveRoles(context.Context, []model.User) ([]model.UserWithRoles, error) {
	return nil, nil
}

func (f *fakeUsers) GetUser(context.Context, int64) (*model.UserWithRoles, error) { return nil, nil }

func (f *fakeUsers) CreateUser(_ context.Context, req model.CreateUserRequest) (*model.User, error) {
	if _, ok := f.emails[req.Email]; ok {
		return nil, model.NewConflictError("email already exists")
	}
	id := int64(len(f.emails) + 1)
	f.emails[req.Email] = id
	return &model.User{ID: id, Email: req.Email, HourlyRate: *req.HourlyRate}, nil
}

func (f *fakeUsers) UpdateUser(context.Context, int64, model.UpdateUserRequest) (*model.User, error) {
	return nil, nil
}

func (f *fakeUsers) DeleteUser(context.Context, int64) error { return nil }

type fakeAssignments struct {
	pairs [][2]int64
}

func (f *fakeAssignments) AssignRole(_ context.Context, userID int64, req model.AssignRoleRequest) (*model.Assignment, error) {
	f.pairs = append(f.pairs, [2]int64{userID, *req.RoleID})
	return &model.Assignment{UserID: userID, RoleID: *req.RoleID}, nil
}

func (f *fakeAssignments) RemoveRole(context.Context, int64, int64) error { return nil }

func (f *fakeAssignments) ListUserRoles(context.Context, int64) ([]model.Assignment, error) {
	return nil, nil
}

func (f *fakeAssignments) ListAssignments(context.Context) ([]model.Assignment, error) {
	return nil, nil
}

func TestRun_CreatesSampleData(t *testing.T) {
	roles := &fakeRoles{}
	users := &fakeUsers{emails: map[string]int64{}}
	assignments := &fakeAssignments{}

	res, err := Run(context.Background(), roles, users, assignments, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, Result{Roles: 5, Users: 5, Assignments: 6}, res)
	assert.Contains(t, assignments.pairs, [2]int64{2, 2})
	assert.Contains(t, assignments.pairs, [2]int64{2, 3})
}

func TestRun_SkipsExisting(t *testing.T) {
	roles := &fakeRoles{}
	users := &fakeUsers{emails: map[string]int64{}}
	assignments := &fakeAssignments{}

	_, err := Run(context.Background(), roles, users, assignments, zerolog.Nop())
	require.NoError(t, err)

	res, err := Run(context.Background(), roles, users, assignments, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
	assert.Len(t, roles.roles, 5)
	assert.Len(t, assignments.pairs, 6)
}
