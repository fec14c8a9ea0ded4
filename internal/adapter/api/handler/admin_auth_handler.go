package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/middleware"
	"github.com/Bayu5aputra/personal-profile/internal/usecase"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/response"
)

type AdminAuthHandler struct {
	adminAuthUseCase *usecase.AdminAuthUseCase
}

func NewAdminAuthHandler(adminAuthUseCase *usecase.AdminAuthUseCase) *AdminAuthHandler {
	return &AdminAuthHandler{
		adminAuthUseCase: adminAuthUseCase,
	}
}

type passwordLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type firebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

func (h *AdminAuthHandler) LoginWithPassword(c echo.Context) error {
	var req passwordLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.adminAuthUseCase.LoginWithPassword(req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, session)
}

func (h *AdminAuthHandler) LoginWithFirebase(c echo.Context) error {
	var req firebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	session, err := h.adminAuthUseCase.LoginWithFirebase(c.Request().Context(), req.IDToken)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, session)
}

func (h *AdminAuthHandler) RefreshSession(c echo.Context) error {
	session, err := h.adminAuthUseCase.RefreshSession(middleware.AdminIdentity(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, session)
}
