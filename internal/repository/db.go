package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"user_management/internal/model"
)

// DB is the subset of *pgxpool.Pool the repositories need.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Constraint names from migrations/000001_init_user_management.up.sql
const (
	constraintRoleName     = "uq_roles_name"
	constraintUserEmail    = "uq_users_email"
	constraintUserRole     = "uq_user_role"
	constraintUserRoleUser = "fk_user_roles_user"
	constraintUserRoleRole = "fk_user_roles_role"
)

// withTx runs fn in a transaction. It commits when fn succeeds and rolls
// back on every other exit path, panics included.
func withTx(ctx context.Context, db DB, op string, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return model.NewStorageError(op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageError(op, err)
	}
	return nil
}

// storageError maps constraint violations to domain errors and wraps
// everything else as a storage failure. Domain errors pass through.
func storageError(op string, err error) error {
	var domainErr *model.Error
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return model.NewStorageError(op, err)
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		switch pgErr.ConstraintName {
		case constraintRoleName:
			return model.NewConflictError("role name already exists")
		case constraintUserEmail:
			return model.NewConflictError("email already exists")
		case constraintUserRole:
			return model.NewConflictError("user already has this role")
		}
		return model.NewConflictError("duplicate value violates a unique constraint")
	case pgerrcode.ForeignKeyViolation:
		switch pgErr.ConstraintName {
		case constraintUserRoleUser:
			return model.NewNotFoundError("user not found")
		case constraintUserRoleRole:
			// Raised both for inserts with an unknown role and for deletes
			// of a role that is still assigned; the caller decides.
			return model.NewConflictError("role is referenced by user role assignments")
		}
		return model.NewConflictError("operation violates a foreign key constraint")
	case pgerrcode.CheckViolation:
		return model.NewValidationError("value violates constraint %s", pgErr.ConstraintName)
	}
	return model.NewStorageError(op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
