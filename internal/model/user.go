package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EmailMaxLen    = 190
	FullNameMaxLen = 120
)

func init() {
	// hourly_rate is rendered as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// User represents an account. The password hash never leaves the service.
type User struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	FullName     string          `json:"full_name"`
	PasswordHash string          `json:"-"`
	IsActive     bool            `json:"is_active"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// UserWithRoles is a user with its resolved role set.
type UserWithRoles struct {
	User
	Roles []Role `json:"roles"`
}

// UserSummary is the denormalized user shown next to an assignment.
type UserSummary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Email      string           `json:"email" validate:"required,email,max=190"`
	FullName   string           `json:"full_name" validate:"required,notblank,max=120"`
	Password   string           `json:"password" validate:"required"`
	IsActive   *bool            `json:"is_active"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
}

// UpdateUserRequest is a partial update; absent fields are left untouched.
type UpdateUserRequest struct {
	Email      Optional[string]          `json:"email"`
	FullName   Optional[string]          `json:"full_name"`
	Password   Optional[string]          `json:"password"`
	IsActive   Optional[bool]            `json:"is_active"`
	HourlyRate Optional[decimal.Decimal] `json:"hourly_rate"`
}

// IsEmpty reports whether the patch touches no field.
func (r UpdateUserRequest) IsEmpty() bool {
	return !r.Email.Set && !r.FullName.Set && !r.Password.Set && !r.IsActive.Set && !r.HourlyRate.Set
}

// NewUser is a validated user ready for insertion.
type NewUser struct {
	Email        string
	FullName     string
	PasswordHash string
	IsActive     bool
	HourlyRate   decimal.Decimal
}

// UserChanges is a validated patch; nil fields are left unchanged.
type UserChanges struct {
	Email        *string
	FullName     *string
	PasswordHash *string
	IsActive     *bool
	HourlyRate   *decimal.Decimal
}
