package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	t.Run("zero config is valid", func(t *testing.T) {
		var cfg Config
		assert.NoError(t, cfg.Validate())
	})

	t.Run("port out of range", func(t *testing.T) {
		cfg := Config{Server: ServerConfig{Port: 70000}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative timeout", func(t *testing.T) {
		cfg := Config{Server: ServerConfig{ReadTimeout: -1}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative image byte limit", func(t *testing.T) {
		cfg := Config{Parser: ParserConfig{MaxImageBytes: -1}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown log level", func(t *testing.T) {
		cfg := Config{Logging: LoggingConfig{Level: "loud"}}
		assert.Error(t, cfg.Validate())
	})
}

func TestLoggingConfigGetLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"":        LogLevelInfo,
		"info":    LogLevelInfo,
		"DEBUG":   LogLevelDebug,
		"warn":    LogLevelWarn,
		"warning": LogLevelWarn,
		"error":   LogLevelError,
		"bogus":   LogLevelInfo,
	}
	for input, want := range cases {
		cfg := LoggingConfig{Level: input}
		assert.Equal(t, want, cfg.GetLevel(), "level %q", input)
	}
}

func TestGetCORSOrigins(t *testing.T) {
	t.Run("defaults to localhost", func(t *testing.T) {
		var s ServerConfig
		origins := s.GetCORSOrigins()
		assert.Contains(t, origins, "http://localhost:3000")
	})

	t.Run("configured origins win", func(t *testing.T) {
		s := ServerConfig{CORSOrigins: []string{"https://deck.example.com"}}
		assert.Equal(t, []string{"https://deck.example.com"}, s.GetCORSOrigins())
	})
}
