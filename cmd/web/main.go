package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/circuitstock/internal/client/config"
	"github.com/dmitrijs2005/circuitstock/internal/client/web"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	app, err := web.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "web dashboard stopped", "error", err)
		os.Exit(1)
	}

}
