package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/circuitstock/internal/flagx"
	"github.com/dmitrijs2005/circuitstock/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. Absent keys leave the
// corresponding Config field untouched.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	ListenAddr     string         `json:"listen_addr"`
	SessionSecret  string         `json:"session_secret"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DashboardTTL   timex.Duration `json:"dashboard_ttl"`
	SweepInterval  timex.Duration `json:"sweep_interval"`
	ToastTimeout   timex.Duration `json:"toast_timeout"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Without such a flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.ListenAddr, jc.ListenAddr)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DashboardTTL.Duration != 0 {
		cfg.DashboardTTL = jc.DashboardTTL.Duration
	}
	if jc.SweepInterval.Duration != 0 {
		cfg.SweepInterval = jc.SweepInterval.Duration
	}
	if jc.ToastTimeout.Duration != 0 {
		cfg.ToastTimeout = jc.ToastTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
