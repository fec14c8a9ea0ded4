package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/usecase"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/response"
)

const adminContextKey = "admin"

type AdminMiddleware struct {
	adminAuthUseCase *usecase.AdminAuthUseCase
}

func NewAdminMiddleware(adminAuthUseCase *usecase.AdminAuthUseCase) *AdminMiddleware {
	return &AdminMiddleware{
		adminAuthUseCase: adminAuthUseCase,
	}
}

// RequireSession accepts only requests carrying a valid admin session token.
func (m *AdminMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		identity, err := m.adminAuthUseCase.VerifySession(parts[1])
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(adminContextKey, identity)
		return next(c)
	}
}

// AdminIdentity returns the identity set by RequireSession, or nil.
func AdminIdentity(c echo.Context) *entity.AdminIdentity {
	identity, _ := c.Get(adminContextKey).(*entity.AdminIdentity)
	return identity
}
