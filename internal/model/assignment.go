package model

// Assignment links one user with one role.
type Assignment struct {
	ID     int64        `json:"id"`
	UserID int64        `json:"user_id"`
	RoleID int64        `json:"role_id"`
	User   *UserSummary `json:"user"`
	Role   *Role        `json:"role"`
}

// AssignRoleRequest is the body of POST /users/:id/roles
type AssignRoleRequest struct {
	RoleID *int64 `json:"role_id"`
}

// Stats summarises the user management tables.
type Stats struct {
	TotalUsers           int64 `json:"total_users"`
	ActiveUsers          int64 `json:"active_users"`
	InactiveUsers        int64 `json:"inactive_users"`
	TotalRoles           int64 `json:"total_roles"`
	TotalRoleAssignments int64 `json:"total_role_assignments"`
}
