package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user_management/internal/model"
	"user_management/internal/service"
)

// UserHandler handles user and user-role requests
type UserHandler struct {
	users       service.UserService
	assignments service.AssignmentService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users service.UserService, assignments service.AssignmentService) *UserHandler {
	return &UserHandler{users: users, assignments: assignments}
}

// ListUsers returns every user; ?include_roles=true attaches role sets.
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.users.ListUsers(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	if !strings.EqualFold(c.Query("include_roles"), "true") {
		respondList(c, users, len(users))
		return
	}
	withRoles, err := h.users.ResolveRoles(ctx, users)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, withRoles, len(withRoles))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	var req model.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *UserHandler) AssignRole(c *gin.Context) {
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	var req model.AssignRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	assignment, err := h.assignments.AssignRole(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Role assigned successfully", assignment)
}

func (h *UserHandler) RemoveRole(c *gin.Context) {
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	roleID, ok := parseID(c, "role_id", "role")
	if !ok {
		return
	}
	if err := h.assignments.RemoveRole(c.Request.Context(), userID, roleID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Role removed successfully", nil)
}

func (h *UserHandler) ListUserRoles(c *gin.Context) {
	userID, ok := parseID(c, "id", "user")
	if !ok {
		return
	}
	assignments, err := h.assignments.ListUserRoles(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, assignments, len(assignments))
}

func (h *UserHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignments.ListAssignments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, assignments, len(assignments))
}

// RegisterUserRoutes registers user, user-role and assignment routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		users.GET("/:id/roles", h.ListUserRoles)
		users.POST("/:id/roles", h.AssignRole)
		users.DELETE("/:id/roles/:role_id", h.RemoveRole)
	}

	rg.GET("/user-role-assignments", h.ListAssignments)
	rg.GET("/user-roles", h.ListAssignments)
}
