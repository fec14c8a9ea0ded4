package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/handler"
	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/middleware"
	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/ratelimit"
)

func SetupReviewKeyRouter(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	keyHandler := handler.GetReviewKeyHandler()

	// Public routes
	e.POST("/v1/review-keys/validate", keyHandler.ValidateKey, middleware.RateLimit(limiter, ratelimit.ActionValidateKey))

	// Admin routes
	admin := e.Group("/v1/admin/review-keys")
	admin.Use(adminMiddleware.RequireSession)

	admin.GET("", keyHandler.ListKeys)
	admin.POST("", keyHandler.GenerateKeys)
	admin.DELETE("", keyHandler.PurgeUnusedKeys)
	admin.GET("/stats", keyHandler.GetStatistics)
	admin.DELETE("/:keyId", keyHandler.DeleteKey)
}
