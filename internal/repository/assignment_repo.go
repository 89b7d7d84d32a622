package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user_management/internal/model"
)

// AssignmentRepository defines operations on the user_roles join table
type AssignmentRepository interface {
	Create(ctx context.Context, userID, roleID int64) (*model.Assignment, error)
	Delete(ctx context.Context, userID, roleID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Assignment, error)
	ListAll(ctx context.Context) ([]model.Assignment, error)
}

type assignmentRepository struct {
	db DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

const assignmentSelect = `SELECT ur.id, ur.user_id, ur.role_id, u.email, u.full_name, r.name, r.description
            FROM user_roles ur
            JOIN users u ON u.id = ur.user_id
            JOIN roles r ON r.id = ur.role_id`

func scanAssignment(row pgx.Row) (model.Assignment, error) {
	a := model.Assignment{User: &model.UserSummary{}, Role: &model.Role{}}
	err := row.Scan(&a.ID, &a.UserID, &a.RoleID, &a.User.Email, &a.User.FullName, &a.Role.Name, &a.Role.Description)
	if err != nil {
		return model.Assignment{}, err
	}
	a.User.ID = a.UserID
	a.Role.ID = a.RoleID
	return a, nil
}

// Create links a user with a role after checking both exist and the pair is new.
func (r *assignmentRepository) Create(ctx context.Context, userID, roleID int64) (*model.Assignment, error) {
	const op = "failed to assign role"

	var assignment *model.Assignment
	err := withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		user, err := findUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		role, err := findRole(ctx, tx, roleID)
		if err != nil {
			return err
		}

		var exists bool
		sql := `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_id = $1 AND role_id = $2)`
		if err := tx.QueryRow(ctx, sql, userID, roleID).Scan(&exists); err != nil {
			return storageError(op, err)
		}
		if exists {
			return model.NewConflictError("user already has this role")
		}

		var id int64
		sql = `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRow(ctx, sql, userID, roleID).Scan(&id); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == constraintUserRoleRole {
				// The role was deleted concurrently.
				return model.NewNotFoundError("role not found")
			}
			return storageError(op, err)
		}

		assignment = &model.Assignment{
			ID:     id,
			UserID: userID,
			RoleID: roleID,
			User:   &model.UserSummary{ID: user.ID, Email: user.Email, FullName: user.FullName},
			Role:   role,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, userID, roleID int64) error {
	const op = "failed to remove role"

	return withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		sql := `DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`
		cmdTag, err := tx.Exec(ctx, sql, userID, roleID)
		if err != nil {
			return storageError(op, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return model.NewNotFoundError("user role assignment not found")
		}
		return nil
	})
}

func (r *assignmentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Assignment, error) {
	if _, err := findUser(ctx, r.db, userID); err != nil {
		return nil, err
	}
	return r.list(ctx, "failed to fetch user roles", assignmentSelect+` WHERE ur.user_id = $1 ORDER BY ur.id`, userID)
}

func (r *assignmentRepository) ListAll(ctx context.Context) ([]model.Assignment, error) {
	return r.list(ctx, "failed to fetch user role assignments", assignmentSelect+` ORDER BY ur.id`)
}

func (r *assignmentRepository) list(ctx context.Context, op, sql string, args ...any) ([]model.Assignment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, storageError(op, err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return assignments, nil
}
