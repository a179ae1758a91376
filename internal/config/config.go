package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Monitor configuration
	Monitor MonitorConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Export configuration
	Export ExportConfig

	// Web server configuration
	Web WebConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path string // Path to SQLite database file
}

// MonitorConfig holds sampling cadence configuration
type MonitorConfig struct {
	FastInterval      time.Duration // Status/warning tick period
	SlowInterval      time.Duration // Persistence tick period
	InputPollInterval time.Duration // Input-activity polling period
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for daemon management
}

// ExportConfig holds report export configuration
type ExportConfig struct {
	Dir string // Output directory; empty means the user's download directory
}

// WebConfig holds web server configuration
type WebConfig struct {
	Host string // Host to bind web server to
	Port int    // Port for web server
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "", // Empty means use default ~/.config/sysmon/sysmon.db
		},
		Monitor: MonitorConfig{
			FastInterval:      5 * time.Second,
			SlowInterval:      60 * time.Second,
			InputPollInterval: 80 * time.Millisecond,
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/sysmon-%d.pid", os.Getuid()),
		},
		Export: ExportConfig{
			Dir: "",
		},
		Web: WebConfig{
			Host: "localhost",
			Port: 10000 + os.Getuid(),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Monitor.FastInterval <= 0 {
		return fmt.Errorf("fast interval must be positive, got %v", c.Monitor.FastInterval)
	}

	if c.Monitor.SlowInterval < c.Monitor.FastInterval {
		return fmt.Errorf("slow interval (%v) cannot be less than fast interval (%v)",
			c.Monitor.SlowInterval, c.Monitor.FastInterval)
	}

	if c.Monitor.InputPollInterval <= 0 {
		return fmt.Errorf("input poll interval must be positive, got %v", c.Monitor.InputPollInterval)
	}

	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port)
	}

	if c.Web.Host == "" {
		return fmt.Errorf("web host cannot be empty")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Database:
    Path: %s
  Monitor:
    Fast Interval: %v
    Slow Interval: %v
    Input Poll: %v
  Daemon:
    PID File: %s
  Export:
    Dir: %s
  Web:
    Host: %s
    Port: %d`,
		c.Database.Path,
		c.Monitor.FastInterval,
		c.Monitor.SlowInterval,
		c.Monitor.InputPollInterval,
		c.Daemon.PIDFile,
		c.Export.Dir,
		c.Web.Host,
		c.Web.Port,
	)
}
