package devapi

import (
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/circuitstock/internal/flagx"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the stand-in API settings.
type Config struct {
	Address      string
	SecretKey    string
	TokenTTL     time.Duration
	RequireToken bool
	Seed         bool
	BcryptCost   int
	LogLevel     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Address = "127.0.0.1:8081"
	c.SecretKey = ""
	c.TokenTTL = 24 * time.Hour
	c.RequireToken = true
	c.Seed = true
	c.BcryptCost = bcrypt.DefaultCost
	c.LogLevel = "info"
}

// LoadConfig applies flags from args over the defaults.
//
//	-a string     listen address
//	-k string     token signing key (random per process when empty)
//	-ttl duration token lifetime
//	-auth bool    require a bearer token on inventory endpoints
//	-seed bool    load demo accounts and sample components
//	-l string     log level
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	filtered := flagx.FilterArgs(args, []string{"-a", "-k", "-ttl", "-auth", "-seed", "-l"})
	fs := flag.NewFlagSet("devapi", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "a", cfg.Address, "listen address")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing key")
	fs.DurationVar(&cfg.TokenTTL, "ttl", cfg.TokenTTL, "token lifetime")
	fs.BoolVar(&cfg.RequireToken, "auth", cfg.RequireToken, "require a bearer token on inventory endpoints")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "load demo data")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	if err := fs.Parse(filtered); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return cfg, nil
}
