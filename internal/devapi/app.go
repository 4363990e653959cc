package devapi

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/circuitstock/internal/common"
	"github.com/dmitrijs2005/circuitstock/internal/logging"
)

// App wires the stand-in API from its Config.
type App struct {
	config *Config
	logger logging.Logger
	server *Server
}

// NewApp seeds the store and prepares the server.
func NewApp(c *Config, logger logging.Logger) (*App, error) {
	secret := []byte(c.SecretKey)
	if len(secret) == 0 {
		b, err := common.GenerateRandByteArray(32)
		if err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		secret = b
	}

	store := NewStore(c.BcryptCost)
	if c.Seed {
		if err := Seed(store); err != nil {
			return nil, err
		}
	}

	return &App{
		config: c,
		logger: logger,
		server: NewServer(c.Address, logger, store, secret, c.TokenTTL, c.RequireToken),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)
	return app.server.Run(ctx)
}
