package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/handler"
	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/middleware"
	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/ratelimit"
)

func SetupAdminRouter(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAdminAuthHandler()
	maintenanceHandler := handler.GetMaintenanceHandler()

	// Login routes
	login := e.Group("/v1/admin/login")
	login.Use(middleware.RateLimit(limiter, ratelimit.ActionAdminLogin))

	login.POST("/password", authHandler.LoginWithPassword)
	login.POST("/firebase", authHandler.LoginWithFirebase)

	// Session routes - require a valid admin session
	admin := e.Group("/v1/admin")
	admin.Use(adminMiddleware.RequireSession)

	admin.POST("/session/refresh", authHandler.RefreshSession)
	admin.POST("/connection/refresh", maintenanceHandler.RefreshConnection)
	admin.POST("/maintenance/clear", maintenanceHandler.Clear)
}
