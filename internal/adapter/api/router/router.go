package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/handler"
	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/middleware"
	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/ratelimit"
)

func Setup(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware, limiter *ratelimit.RateLimiter, wsHandler *handler.WebSocketHandler) {
	SetupHealthRouter(e)
	SetupReviewRouter(e, adminMiddleware, limiter)
	SetupReviewKeyRouter(e, adminMiddleware, limiter)
	SetupAdminRouter(e, adminMiddleware, limiter)
	SetupWebSocketRouter(e, wsHandler)
}
