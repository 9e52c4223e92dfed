package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the application configuration loaded from TOML files. It is
// distinct from SlideConfig, which lives inside the markdown itself.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Parser  ParserConfig  `toml:"parser"`
	Watcher WatcherConfig `toml:"watcher"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	CORSOrigins     []string `toml:"cors_origins"`
}

// ParserConfig holds compiler settings that apply to every deck.
type ParserConfig struct {
	AssetsDir     string   `toml:"assets_dir"`
	MaxImageBytes int64    `toml:"max_image_bytes"`
	FigmaHosts    []string `toml:"figma_hosts"`
}

// WatcherConfig holds file watching settings for live reload.
type WatcherConfig struct {
	IntervalMs int `toml:"interval_ms"`
	DebounceMs int `toml:"debounce_ms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `toml:"level"`
	Verbose bool   `toml:"verbose"`
}

// LogLevel represents a logging verbosity level.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// GetLevel parses the configured level string, defaulting to info.
func (c *LoggingConfig) GetLevel() LogLevel {
	switch strings.ToLower(c.Level) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// GetCORSOrigins returns the configured CORS origins or a localhost
// default suitable for development.
func (s *ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) > 0 {
		return s.CORSOrigins
	}
	return []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return errors.New("server timeouts cannot be negative")
	}
	if c.Parser.MaxImageBytes < 0 {
		return errors.New("parser max_image_bytes cannot be negative")
	}
	if c.Watcher.IntervalMs < 0 || c.Watcher.DebounceMs < 0 {
		return errors.New("watcher intervals cannot be negative")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}
	return nil
}
