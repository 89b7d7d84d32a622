// Package validation holds the field-level checks that run before any write
// reaches the repositories. Checks that need the database (uniqueness,
// foreign keys) live in the repository transactions instead.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"

	"user_management/internal/model"
)

// bcrypt ignores input past 72 bytes and x/crypto rejects it outright.
const passwordMaxBytes = 72

// maxHourlyRate is the exclusive upper bound of NUMERIC(10,2).
var maxHourlyRate = decimal.New(1, 8)

// Validator checks request payloads and returns *model.Error of kind ErrValidation.
type Validator struct {
	v              *validator.Validate
	passwordMinLen int
}

// New creates a Validator. A passwordMinLen below 1 still rejects empty passwords.
func New(passwordMinLen int) *Validator {
	if passwordMinLen < 1 {
		passwordMinLen = 1
	}
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{v: v, passwordMinLen: passwordMinLen}
}

func (v *Validator) CreateUser(req model.CreateUserRequest) error {
	var msgs []string
	msgs = append(msgs, v.structErrors(req)...)
	if req.Password != "" {
		if m := v.password(req.Password); m != "" {
			msgs = append(msgs, m)
		}
	}
	if req.HourlyRate != nil {
		if m := hourlyRate(*req.HourlyRate); m != "" {
			msgs = append(msgs, m)
		}
	}
	return fail(msgs)
}

func (v *Validator) UpdateUser(req model.UpdateUserRequest) error {
	if req.IsEmpty() {
		return model.NewValidationError("no data provided")
	}
	var msgs []string
	if req.Email.Set {
		msgs = append(msgs, v.varErrors("email", req.Email, "required,email,max=190")...)
	}
	if req.FullName.Set {
		msgs = append(msgs, v.varErrors("full_name", req.FullName, "required,notblank,max=120")...)
	}
	if req.Password.Set {
		if req.Password.Null || req.Password.Value == "" {
			msgs = append(msgs, "password is required")
		} else if m := v.password(req.Password.Value); m != "" {
			msgs = append(msgs, m)
		}
	}
	if req.IsActive.Null {
		msgs = append(msgs, "is_active cannot be null")
	}
	if req.HourlyRate.Set {
		if req.HourlyRate.Null {
			msgs = append(msgs, "hourly_rate cannot be null")
		} else if m := hourlyRate(req.HourlyRate.Value); m != "" {
			msgs = append(msgs, m)
		}
	}
	return fail(msgs)
}

func (v *Validator) CreateRole(req model.CreateRoleRequest) error {
	return fail(v.structErrors(req))
}

func (v *Validator) UpdateRole(req model.UpdateRoleRequest) error {
	if req.IsEmpty() {
		return model.NewValidationError("no data provided")
	}
	var msgs []string
	if req.Name.Set {
		msgs = append(msgs, v.varErrors("name", req.Name, "required,notblank,max=50")...)
	}
	if req.Description.HasValue() {
		msgs = append(msgs, v.varErrors("description", req.Description, "max=255")...)
	}
	return fail(msgs)
}

func (v *Validator) AssignRole(req model.AssignRoleRequest) error {
	if req.RoleID == nil {
		return model.NewValidationError("role_id is required")
	}
	if *req.RoleID <= 0 {
		return model.NewValidationError("role_id must be a positive integer")
	}
	return nil
}

func (v *Validator) password(p string) string {
	if utf8.RuneCountInString(p) < v.passwordMinLen {
		return fmt.Sprintf("password must be at least %d characters", v.passwordMinLen)
	}
	if len(p) > passwordMaxBytes {
		return fmt.Sprintf("password must be at most %d bytes", passwordMaxBytes)
	}
	return ""
}

func hourlyRate(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "hourly_rate must be a non-negative decimal"
	case !d.Equal(d.Truncate(2)):
		return "hourly_rate must have at most 2 decimal places"
	case d.GreaterThanOrEqual(maxHourlyRate):
		return "hourly_rate is too large"
	}
	return ""
}

// varErrors validates an Optional value; explicit null counts as missing.
func (v *Validator) varErrors(field string, o model.Optional[string], tag string) []string {
	if o.Null {
		return []string{field + " cannot be null"}
	}
	err := v.v.Var(o.Value, tag)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(field, fe))
	}
	return msgs
}

func (v *Validator) structErrors(s any) []string {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe.Field(), fe))
	}
	return msgs
}

func fail(msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	return model.NewValidationError("%s", strings.Join(msgs, "; "))
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "email":
		return "invalid email format"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}
