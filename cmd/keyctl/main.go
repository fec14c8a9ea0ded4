package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Bayu5aputra/personal-profile/internal/adapter/cli"
	"github.com/Bayu5aputra/personal-profile/internal/app"
	"github.com/Bayu5aputra/personal-profile/pkg/config"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

func main() {
	open := func(ctx context.Context) (*app.Container, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
			return nil, err
		}
		return app.New(ctx, cfg)
	}

	if err := cli.NewRootCommand(open).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger.Sync()
}
