package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"user_management/internal/model"
)

// RoleRepository defines operations for role data
type RoleRepository interface {
	List(ctx context.Context) ([]model.Role, error)
	FindByID(ctx context.Context, id int64) (*model.Role, error)
	Create(ctx context.Context, req model.CreateRoleRequest) (*model.Role, error)
	Update(ctx context.Context, id int64, req model.UpdateRoleRequest) (*model.Role, error)
	Delete(ctx context.Context, id int64) error
}

type roleRepository struct {
	db DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context) ([]model.Role, error) {
	const op = "failed to list roles"

	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	roles := []model.Role{}
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, storageError(op, err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return roles, nil
}

func (r *roleRepository) FindByID(ctx context.Context, id int64) (*model.Role, error) {
	return findRole(ctx, r.db, id)
}

func (r *roleRepository) Create(ctx context.Context, req model.CreateRoleRequest) (*model.Role, error) {
	const op = "failed to create role"

	role := &model.Role{Name: req.Name, Description: req.Description}
	err := withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		sql := `INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRow(ctx, sql, req.Name, req.Description).Scan(&role.ID); err != nil {
			return storageError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepository) Update(ctx context.Context, id int64, req model.UpdateRoleRequest) (*model.Role, error) {
	const op = "failed to update role"

	var queryBuilder strings.Builder
	queryBuilder.WriteString("UPDATE roles SET ")
	var sets []string
	args := []any{}
	argCount := 1

	if req.Name.Set {
		sets = append(sets, fmt.Sprintf("name = $%d", argCount))
		args = append(args, req.Name.Value)
		argCount++
	}
	if req.Description.Set {
		var description *string
		if req.Description.HasValue() {
			description = &req.Description.Value
		}
		sets = append(sets, fmt.Sprintf("description = $%d", argCount))
		args = append(args, description)
		argCount++
	}
	if len(sets) == 0 {
		return nil, model.NewValidationError("no data provided")
	}
	queryBuilder.WriteString(strings.Join(sets, ", "))
	queryBuilder.WriteString(fmt.Sprintf(" WHERE id = $%d RETURNING id, name, description", argCount))
	args = append(args, id)

	role := &model.Role{}
	err := withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, queryBuilder.String(), args...).Scan(&role.ID, &role.Name, &role.Description)
		if err != nil {
			if isNoRows(err) {
				return model.NewNotFoundError("role not found")
			}
			return storageError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

// Delete removes a role. Roles still assigned to users are never removed.
func (r *roleRepository) Delete(ctx context.Context, id int64) error {
	const op = "failed to delete role"

	return withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		var assigned int64
		sql := `SELECT COUNT(*) FROM user_roles WHERE role_id = $1`
		if err := tx.QueryRow(ctx, sql, id).Scan(&assigned); err != nil {
			return storageError(op, err)
		}
		if assigned > 0 {
			return model.NewConflictError("cannot delete role: role is assigned to %d user(s)", assigned)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
		if err != nil {
			// An assignment created after the count is caught by fk_user_roles_role.
			return storageError(op, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return model.NewNotFoundError("role not found")
		}
		return nil
	})
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func findRole(ctx context.Context, q queryRower, id int64) (*model.Role, error) {
	role := &model.Role{}
	sql := `SELECT id, name, description FROM roles WHERE id = $1`
	err := q.QueryRow(ctx, sql, id).Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		if isNoRows(err) {
			return nil, model.NewNotFoundError("role not found")
		}
		return nil, storageError("failed to find role by ID", err)
	}
	return role, nil
}
