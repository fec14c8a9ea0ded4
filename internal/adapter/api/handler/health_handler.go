package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Bayu5aputra/personal-profile/internal/usecase"
)

type HealthHandler struct {
	reviewUseCase *usecase.ReviewUseCase
}

var healthHandler *HealthHandler

func NewHealthHandler(reviewUseCase *usecase.ReviewUseCase) *HealthHandler {
	return &HealthHandler{
		reviewUseCase: reviewUseCase,
	}
}

func SetupHealthHandler(reviewUseCase *usecase.ReviewUseCase) {
	healthHandler = NewHealthHandler(reviewUseCase)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "Server is running",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// CheckFirebaseHealth reports the memoized primary store status. The cache keeps
// serving when it is down, so the service itself stays healthy.
func (h *HealthHandler) CheckFirebaseHealth(c echo.Context) error {
	if !h.reviewUseCase.TestConnection(c.Request().Context()) {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "Primary store unreachable, serving from local cache",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "Primary store connected successfully",
	})
}
