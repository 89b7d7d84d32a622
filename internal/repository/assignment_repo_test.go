package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user_management/internal/model"
)

func expectUserAndRole(mock pgxmock.PgxPoolIface, userID, roleID int64) {
	now := time.Now()
	mock.ExpectQuery(q("FROM users WHERE id = $1")).
		WithArgs(userID).
		WillReturnRows(userRow(pgxmock.NewRows(userCols), userID, "a@x.com", now, now))
	mock.ExpectQuery(q("SELECT id, name, description FROM roles WHERE id = $1")).
		WithArgs(roleID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description"}).AddRow(roleID, "Admin", (*string)(nil)))
}

func TestAssignmentRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	expectUserAndRole(mock, 1, 1)
	mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role_id = $2)")).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(q("INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) RETURNING id")).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(10)))
	mock.ExpectCommit()

	a, err := repo.Create(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), a.ID)
	assert.Equal(t, "a@x.com", a.User.Email)
	assert.Equal(t, "Admin", a.Role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Create_UnknownUser(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM users WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 99, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, "user not found", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Create_UnknownRole(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(q("FROM users WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(userRow(pgxmock.NewRows(userCols), 1, "a@x.com", now, now))
	mock.ExpectQuery(q("FROM roles WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 1, 99)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, "role not found", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Create_DuplicatePair(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	expectUserAndRole(mock, 1, 1)
	mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM user_roles")).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 1, 1)
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Create_ConcurrentDuplicatePair(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	expectUserAndRole(mock, 1, 1)
	mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM user_roles")).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(q("INSERT INTO user_roles")).
		WithArgs(int64(1), int64(1)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "uq_user_role"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.Equal(t, "user already has this role", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Create_RoleDeletedConcurrently(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	expectUserAndRole(mock, 1, 1)
	mock.ExpectQuery(q("SELECT EXISTS (SELECT 1 FROM user_roles")).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(q("INSERT INTO user_roles")).
		WithArgs(int64(1), int64(1)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "fk_user_roles_role"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), 1, 1)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2")).
		WithArgs(int64(1), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.Delete(context.Background(), 1, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Delete_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec(q("DELETE FROM user_roles")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), 1, 2), model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var assignmentCols = []string{"id", "user_id", "role_id", "email", "full_name", "name", "description"}

func TestAssignmentRepository_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)
	now := time.Now()

	mock.ExpectQuery(q("FROM users WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(userRow(pgxmock.NewRows(userCols), 1, "a@x.com", now, now))
	mock.ExpectQuery(q("WHERE ur.user_id = $1 ORDER BY ur.id")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(assignmentCols).
			AddRow(int64(10), int64(1), int64(1), "a@x.com", "A", "Admin", (*string)(nil)))

	list, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].User.ID)
	assert.Equal(t, int64(1), list[0].Role.ID)
	assert.Equal(t, "Admin", list[0].Role.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_ListByUser_UnknownUser(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectQuery(q("FROM users WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.ListByUser(context.Background(), 5)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_ListAll_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectQuery(q("FROM user_roles ur")).WillReturnRows(pgxmock.NewRows(assignmentCols))

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_Summary(t *testing.T) {
	mock := newMock(t)
	repo := NewStatsRepository(mock)

	mock.ExpectQuery(q("(SELECT COUNT(*) FROM users WHERE is_active)")).
		WillReturnRows(pgxmock.NewRows([]string{"total_users", "active_users", "total_roles", "total_assignments"}).
			AddRow(int64(5), int64(3), int64(4), int64(7)))

	stats, err := repo.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.InactiveUsers)
	assert.Equal(t, int64(7), stats.TotalRoleAssignments)
	assert.NoError(t, mock.ExpectationsWereMet())
}
