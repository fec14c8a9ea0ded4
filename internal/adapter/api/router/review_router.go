package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/handler"
	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/middleware"
	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/ratelimit"
)

func SetupReviewRouter(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter) {
	reviewHandler := handler.GetReviewHandler()

	// Public routes
	products := e.Group("/v1/products/:productId")
	products.GET("/reviews", reviewHandler.GetProductReviews)
	products.GET("/rating", reviewHandler.GetProductRating)
	products.POST("/reviews", reviewHandler.SubmitReview, middleware.RateLimit(limiter, ratelimit.ActionSubmitReview))

	// Admin routes
	admin := e.Group("/v1/admin/reviews")
	admin.Use(adminMiddleware.RequireSession)

	admin.POST("/sync", reviewHandler.SyncReviews)
}
