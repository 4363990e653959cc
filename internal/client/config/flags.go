package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/circuitstock/internal/flagx"
)

// flagNames are the flags owned by this package.
var flagNames = []string{"-u", "-a", "-s", "-d", "-t", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string     base url of the inventory service
//	-a string     listen address of the web dashboard
//	-s string     session cookie secret
//	-d string     path of the terminal client's SQLite file
//	-t duration   per-request timeout, e.g. 5s
//	-l string     log level
//
// args is filtered with flagx.FilterArgs first so that flags owned by other
// layers (such as -c) do not interfere.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, flagNames)

	fs := flag.NewFlagSet("circuitstock", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "base url of the inventory service")
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port for the web dashboard")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "session cookie secret")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "timeout of a single request to the service")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
