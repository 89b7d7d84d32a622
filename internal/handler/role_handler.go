package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user_management/internal/model"
	"user_management/internal/service"
)

// RoleHandler handles role requests
type RoleHandler struct {
	service service.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(s service.RoleService) *RoleHandler {
	return &RoleHandler{service: s}
}

func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.service.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, roles, len(roles))
}

func (h *RoleHandler) GetRole(c *gin.Context) {
	id, ok := parseID(c, "id", "role")
	if !ok {
		return
	}
	role, err := h.service.GetRole(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, role)
}

func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req model.CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := h.service.CreateRole(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Role created successfully", role)
}

func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, ok := parseID(c, "id", "role")
	if !ok {
		return
	}
	var req model.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	role, err := h.service.UpdateRole(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Role updated successfully", role)
}

func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, ok := parseID(c, "id", "role")
	if !ok {
		return
	}
	if err := h.service.DeleteRole(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Role deleted successfully", nil)
}

// RegisterRoleRoutes registers role routes
func (h *RoleHandler) RegisterRoleRoutes(rg *gin.RouterGroup) {
	roles := rg.Group("/roles")
	{
		roles.GET("", h.ListRoles)
		roles.POST("", h.CreateRole)
		roles.GET("/:id", h.GetRole)
		roles.PUT("/:id", h.UpdateRole)
		roles.DELETE("/:id", h.DeleteRole)
	}
}
