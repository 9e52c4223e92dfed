package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// GetDefaultConfig returns the default configuration with environment
// overrides applied.
func GetDefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault("DECKMD_HOST", "localhost"),
			Port:            getEnvIntOrDefault("DECKMD_PORT", 4100),
			ReadTimeout:     getEnvIntOrDefault("DECKMD_READ_TIMEOUT", 15),
			WriteTimeout:    getEnvIntOrDefault("DECKMD_WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvIntOrDefault("DECKMD_SHUTDOWN_TIMEOUT", 5),
			CORSOrigins:     getEnvSliceOrDefault("DECKMD_CORS_ORIGINS", nil),
		},
		Parser: entities.ParserConfig{
			AssetsDir:     getEnvOrDefault("DECKMD_ASSETS_DIR", ""),
			MaxImageBytes: int64(getEnvIntOrDefault("DECKMD_MAX_IMAGE_BYTES", 0)),
			FigmaHosts:    getEnvSliceOrDefault("DECKMD_FIGMA_HOSTS", nil),
		},
		Watcher: entities.WatcherConfig{
			IntervalMs: getEnvIntOrDefault("DECKMD_WATCH_INTERVAL", 200),
			DebounceMs: getEnvIntOrDefault("DECKMD_WATCH_DEBOUNCE", 500),
		},
		Logging: entities.LoggingConfig{
			Level:   getEnvOrDefault("DECKMD_LOG_LEVEL", "info"),
			Verbose: getEnvBoolOrDefault("DECKMD_LOG_VERBOSE", false),
		},
	}
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the environment variable as int or a default.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns the environment variable as bool or a default.
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns the environment variable as a comma
// separated slice or a default.
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
