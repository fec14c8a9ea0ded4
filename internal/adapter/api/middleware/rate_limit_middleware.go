package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/ratelimit"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
	"github.com/Bayu5aputra/personal-profile/pkg/response"
)

// RateLimit limits action per client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip, action)
			if !allowed {
				logger.Warn("RATE LIMIT: %s blocked for IP %s (retry in %v)", action, ip, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests. Please try again later."))
			}

			return next(c)
		}
	}
}
