// Package config loads runtime configuration for the inventory web
// dashboard and terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// The result is checked with (*Config).Validate.
//
// Supported flags
//
//	-u string     base url of the inventory service
//	-a string     listen address of the web dashboard
//	-s string     session cookie secret
//	-d string     SQLite file of the terminal client
//	-t duration   per-request timeout
//	-l string     log level
//
// # JSON schema
//
// Durations can be strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8081",
//	  "listen_addr": "127.0.0.1:8080",
//	  "session_secret": "0123456789abcdef0123456789abcdef",
//	  "database_path": "circuitstock.db",
//	  "request_timeout": "10s",
//	  "dashboard_ttl": "30m",
//	  "sweep_interval": "1m",
//	  "toast_timeout": "3s",
//	  "log_level": "info"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
