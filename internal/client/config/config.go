package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings shared by the web dashboard and the terminal
// client. Each front end uses the fields relevant to it.
//
// Fields:
//   - APIBaseURL: root of the inventory REST service.
//   - ListenAddr: address the web dashboard listens on.
//   - SessionSecret: key material for the session cookie; generated per
//     process when empty.
//   - DatabasePath: SQLite file holding the terminal client's session.
//   - RequestTimeout: upper bound for a single call to the service.
//   - DashboardTTL: idle time after which a web dashboard is dropped.
//   - SweepInterval: how often idle dashboards are swept.
//   - ToastTimeout: how long editor and dashboard toasts stay visible.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	ListenAddr     string
	SessionSecret  string
	DatabasePath   string
	RequestTimeout time.Duration
	DashboardTTL   time.Duration
	SweepInterval  time.Duration
	ToastTimeout   time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8081"
	c.ListenAddr = "127.0.0.1:8080"
	c.SessionSecret = ""
	c.DatabasePath = "circuitstock.db"
	c.RequestTimeout = 10 * time.Second
	c.DashboardTTL = 30 * time.Minute
	c.SweepInterval = time.Minute
	c.ToastTimeout = 3 * time.Second
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.DashboardTTL <= 0 || c.SweepInterval <= 0 {
		return errors.New("dashboard ttl and sweep interval must be positive")
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Load builds a Config from args (without the program name): defaults,
// then the JSON file named by -c/-config, then flags. Later sources take
// precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load applied to the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
