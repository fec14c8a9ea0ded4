package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	adapterrepo "github.com/Bayu5aputra/personal-profile/internal/adapter/repository"
	"github.com/Bayu5aputra/personal-profile/internal/adapter/cache"
	"github.com/Bayu5aputra/personal-profile/internal/domain/service"
	"github.com/Bayu5aputra/personal-profile/internal/usecase"
)

type downProber struct{}

func (downProber) Probe(ctx context.Context) error { return errors.New("unavailable") }

func (downProber) ClearProbes(ctx context.Context) (int, error) { return 0, nil }

func newHealthHandler(status *service.ConnectionStatus) *HealthHandler {
	reviews := usecase.NewReviewUseCase(adapterrepo.NewMemoryReviewRepository(), cache.NewMemoryCache(), status)
	return NewHealthHandler(reviews)
}

func TestHealthCheck(t *testing.T) {
	// Setup
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := newHealthHandler(service.NewConnectionStatus(adapterrepo.NewMemoryConnectionProber()))

	// Assertions
	if assert.NoError(t, h.CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Server is running")
	}
}

func TestFirebaseHealth(t *testing.T) {
	e := echo.New()

	up := newHealthHandler(service.NewConnectionStatus(adapterrepo.NewMemoryConnectionProber()))
	rec := httptest.NewRecorder()
	if assert.NoError(t, up.CheckFirebaseHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/firebase-health", nil), rec))) {
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	down := newHealthHandler(service.NewConnectionStatus(downProber{}))
	rec = httptest.NewRecorder()
	if assert.NoError(t, down.CheckFirebaseHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/firebase-health", nil), rec))) {
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "local cache")
	}
}
