package model

const (
	RoleNameMaxLen        = 50
	RoleDescriptionMaxLen = 255
)

// Role is a named permission group a user can hold.
type Role struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"` // nil when not set
}

// CreateRoleRequest is the body of POST /roles
type CreateRoleRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=50"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// UpdateRoleRequest is a partial update; null description clears it.
type UpdateRoleRequest struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// IsEmpty reports whether the patch touches no field.
func (r UpdateRoleRequest) IsEmpty() bool {
	return !r.Name.Set && !r.Description.Set
}
