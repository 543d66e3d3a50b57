package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/geomap/internal/logging"
	"github.com/dmitrijs2005/geomap/internal/server"
	"github.com/dmitrijs2005/geomap/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.NewJSON(os.Stderr, false).Error(ctx, "config error", "error", err.Error())
		os.Exit(2)
	}

	logger := logging.NewJSON(os.Stdout, cfg.IsDevelopment())

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, err.Error())
		os.Exit(1)
	}
}
