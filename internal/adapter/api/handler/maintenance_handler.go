package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/internal/usecase"
	"github.com/Bayu5aputra/personal-profile/pkg/errors"
	"github.com/Bayu5aputra/personal-profile/pkg/response"
)

type MaintenanceHandler struct {
	maintenanceUseCase *usecase.MaintenanceUseCase
	reviewUseCase      *usecase.ReviewUseCase
}

func NewMaintenanceHandler(maintenanceUseCase *usecase.MaintenanceUseCase, reviewUseCase *usecase.ReviewUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceUseCase: maintenanceUseCase,
		reviewUseCase:      reviewUseCase,
	}
}

type clearRequest struct {
	Reviews         bool `json:"reviews"`
	Keys            bool `json:"keys"`
	ConnectionTests bool `json:"connectionTests"`
}

func (h *MaintenanceHandler) Clear(c echo.Context) error {
	var req clearRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if !req.Reviews && !req.Keys && !req.ConnectionTests {
		return response.Error(c, errors.Validation("Select at least one collection to clear"))
	}

	result := h.maintenanceUseCase.Clear(c.Request().Context(), entity.ClearOptions{
		Reviews:         req.Reviews,
		Keys:            req.Keys,
		ConnectionTests: req.ConnectionTests,
	})
	if !result.Success {
		return response.Fail(c, http.StatusServiceUnavailable, errors.CodeStoreUnavail, result.Message, result)
	}

	return response.Success(c, result)
}

// RefreshConnection re-probes the primary store.
func (h *MaintenanceHandler) RefreshConnection(c echo.Context) error {
	connected := h.reviewUseCase.RefreshConnection(c.Request().Context())
	return response.Success(c, map[string]bool{"connected": connected})
}
