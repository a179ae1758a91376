package config

import (
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Database configuration
	if dbPath := os.Getenv("SYSMON_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	// Monitor configuration
	if fast := os.Getenv("SYSMON_FAST_INTERVAL"); fast != "" {
		if seconds, err := strconv.Atoi(fast); err == nil && seconds > 0 {
			cfg.Monitor.FastInterval = time.Duration(seconds) * time.Second
		}
	}

	if slow := os.Getenv("SYSMON_SLOW_INTERVAL"); slow != "" {
		if seconds, err := strconv.Atoi(slow); err == nil && seconds > 0 {
			cfg.Monitor.SlowInterval = time.Duration(seconds) * time.Second
		}
	}

	if poll := os.Getenv("SYSMON_INPUT_POLL_MS"); poll != "" {
		if ms, err := strconv.Atoi(poll); err == nil && ms > 0 {
			cfg.Monitor.InputPollInterval = time.Duration(ms) * time.Millisecond
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("SYSMON_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Export configuration
	if dir := os.Getenv("SYSMON_EXPORT_DIR"); dir != "" {
		cfg.Export.Dir = dir
	}

	// Web configuration
	if webHost := os.Getenv("SYSMON_WEB_HOST"); webHost != "" {
		cfg.Web.Host = webHost
	}

	if webPort := os.Getenv("SYSMON_WEB_PORT"); webPort != "" {
		if port, err := strconv.Atoi(webPort); err == nil && port > 0 && port <= 65535 {
			cfg.Web.Port = port
		}
	}
}

// New creates a new Config with default values and loads from environment
func New() *Config {
	cfg := Default()
	LoadFromEnv(cfg)
	return cfg
}
