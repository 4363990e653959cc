package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/circuitstock/internal/client/cli"
	"github.com/dmitrijs2005/circuitstock/internal/client/config"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// stderr keeps log lines out of the prompts
	logger := logging.NewText(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
