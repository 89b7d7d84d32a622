package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"user_management/internal/model"
)

// UserRepository defines operations for user data
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, user model.NewUser) (*model.User, error)
	Update(ctx context.Context, id int64, changes model.UserChanges) (*model.User, error)
	Delete(ctx context.Context, id int64) error
	// RolesForUsers resolves the roles of every given user in a single query.
	RolesForUsers(ctx context.Context, userIDs []int64) (map[int64][]model.Role, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, full_name, password_hash, is_active, hourly_rate, created_at, updated_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.IsActive, &u.HourlyRate, &u.CreatedAt, &u.UpdatedAt)
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const op = "failed to list users"

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, storageError(op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return findUser(ctx, r.db, id)
}

// Create inserts a new user. The password must already be hashed.
func (r *userRepository) Create(ctx context.Context, nu model.NewUser) (*model.User, error) {
	const op = "failed to create user"

	user := &model.User{}
	err := withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, nu.Email).Scan(&exists); err != nil {
			return storageError(op, err)
		}
		if exists {
			return model.NewConflictError("email already exists")
		}

		sql := `INSERT INTO users (email, full_name, password_hash, is_active, hourly_rate)
            VALUES ($1, $2, $3, $4, $5) RETURNING ` + userColumns
		row := tx.QueryRow(ctx, sql, nu.Email, nu.FullName, nu.PasswordHash, nu.IsActive, nu.HourlyRate)
		if err := scanUser(row, user); err != nil {
			// uq_users_email still catches a concurrent insert of the same email.
			return storageError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies the non-nil changes and always refreshes updated_at.
func (r *userRepository) Update(ctx context.Context, id int64, changes model.UserChanges) (*model.User, error) {
	const op = "failed to update user"

	var queryBuilder strings.Builder
	queryBuilder.WriteString("UPDATE users SET ")
	sets := []string{}
	args := []any{}
	argCount := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}
	if changes.Email != nil {
		add("email", *changes.Email)
	}
	if changes.FullName != nil {
		add("full_name", *changes.FullName)
	}
	if changes.PasswordHash != nil {
		add("password_hash", *changes.PasswordHash)
	}
	if changes.IsActive != nil {
		add("is_active", *changes.IsActive)
	}
	if changes.HourlyRate != nil {
		add("hourly_rate", *changes.HourlyRate)
	}
	sets = append(sets, "updated_at = NOW()")
	queryBuilder.WriteString(strings.Join(sets, ", "))
	queryBuilder.WriteString(fmt.Sprintf(" WHERE id = $%d RETURNING %s", argCount, userColumns))
	args = append(args, id)

	user := &model.User{}
	err := withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		var current string
		err := tx.QueryRow(ctx, `SELECT email FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&current)
		if err != nil {
			if isNoRows(err) {
				return model.NewNotFoundError("user not found")
			}
			return storageError(op, err)
		}

		if changes.Email != nil && *changes.Email != current {
			var taken bool
			sql := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
			if err := tx.QueryRow(ctx, sql, *changes.Email, id).Scan(&taken); err != nil {
				return storageError(op, err)
			}
			if taken {
				return model.NewConflictError("email already exists")
			}
		}

		if err := scanUser(tx.QueryRow(ctx, queryBuilder.String(), args...), user); err != nil {
			return storageError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user; fk_user_roles_user cascades to its assignments
// within the same transaction.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	const op = "failed to delete user"

	return withTx(ctx, r.db, op, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return storageError(op, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return model.NewNotFoundError("user not found")
		}
		return nil
	})
}

func (r *userRepository) RolesForUsers(ctx context.Context, userIDs []int64) (map[int64][]model.Role, error) {
	const op = "failed to resolve user roles"

	result := make(map[int64][]model.Role, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	sql := `SELECT ur.user_id, r.id, r.name, r.description
            FROM user_roles ur
            JOIN roles r ON r.id = ur.role_id
            WHERE ur.user_id = ANY($1)
            ORDER BY ur.user_id, r.id`
	rows, err := r.db.Query(ctx, sql, userIDs)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var role model.Role
		if err := rows.Scan(&userID, &role.ID, &role.Name, &role.Description); err != nil {
			return nil, storageError(op, err)
		}
		result[userID] = append(result[userID], role)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return result, nil
}

func findUser(ctx context.Context, q queryRower, id int64) (*model.User, error) {
	user := &model.User{}
	err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), user)
	if err != nil {
		if isNoRows(err) {
			return nil, model.NewNotFoundError("user not found")
		}
		return nil, storageError("failed to find user by ID", err)
	}
	return user, nil
}
