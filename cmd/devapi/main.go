package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/circuitstock/internal/devapi"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg, err := devapi.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewJSON(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	app, err := devapi.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "dev API stopped", "error", err)
		os.Exit(1)
	}

}
