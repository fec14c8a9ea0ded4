package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/api"
	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/handler"
	apimiddleware "github.com/Bayu5aputra/personal-profile/internal/adapter/api/middleware"
	"github.com/Bayu5aputra/personal-profile/internal/adapter/api/router"
	"github.com/Bayu5aputra/personal-profile/internal/app"
	"github.com/Bayu5aputra/personal-profile/internal/infrastructure/ratelimit"
	"github.com/Bayu5aputra/personal-profile/pkg/config"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize services: %v", err)
		os.Exit(1)
	}
	defer container.Close()

	if !container.Reviews.TestConnection(ctx) {
		logger.Warn("Primary store unreachable at startup, reviews will be kept in the local cache")
	}

	container.WSManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine(ctx)

	handler.Setup(
		container.Reviews,
		container.Ratings,
		container.Submission,
		container.Keys,
		container.AdminAuth,
		container.Maintenance,
	)
	handler.SetupHealthHandler(container.Reviews)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowedOrigins}))
	} else {
		e.Use(middleware.CORS())
	}

	e.Validator = api.NewValidator()

	adminMiddleware := apimiddleware.NewAdminMiddleware(container.AdminAuth)
	wsHandler := handler.NewWebSocketHandler(container.WSManager, cfg.AllowedOrigins)

	router.Setup(e, adminMiddleware, limiter, wsHandler)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
