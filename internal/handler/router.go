package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"user_management/internal/middleware"
	"user_management/internal/service"
)

// Services bundles what the router dispatches to.
type Services struct {
	Roles       service.RoleService
	Users       service.UserService
	Assignments service.AssignmentService
	Stats       service.StatsService
}

// NewRouter wires middleware and every route. db backs GET /health.
func NewRouter(log zerolog.Logger, svcs Services, db Pinger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Recovery(log),
		middleware.Logger(log),
		middleware.Metrics(),
	)

	api := router.Group("/api/v1")
	NewRoleHandler(svcs.Roles).RegisterRoleRoutes(api)
	NewUserHandler(svcs.Users, svcs.Assignments).RegisterUserRoutes(api)
	NewStatsHandler(svcs.Stats).RegisterStatsRoutes(api)

	router.GET("/health", NewHealthHandler(db).Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "resource not found"})
	})
	return router
}
