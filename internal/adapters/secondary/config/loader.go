package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/deckmd/deckmd/internal/domain/entities"
	"github.com/deckmd/deckmd/internal/domain/ports"
)

// TOMLLoader loads application configuration from TOML files: a global
// file under the user config directory and an optional per-project file.
type TOMLLoader struct {
	globalPath string
	localName  string
}

// NewTOMLLoader creates a TOML configuration loader.
func NewTOMLLoader() *TOMLLoader {
	homeDir, _ := os.UserHomeDir()
	globalPath := filepath.Join(homeDir, ".config", "deckmd", "config.toml")

	return &TOMLLoader{
		globalPath: globalPath,
		localName:  "deckmd.toml",
	}
}

// LoadGlobal loads the global configuration file, creating defaults on
// first run.
func (l *TOMLLoader) LoadGlobal(ctx context.Context) (*entities.Config, error) {
	if _, err := os.Stat(l.globalPath); os.IsNotExist(err) {
		if err := l.CreateDefaults(ctx, l.globalPath); err != nil {
			return nil, fmt.Errorf("creating defaults: %w", err)
		}
	}
	return l.loadConfig(l.globalPath)
}

// LoadLocal loads a project configuration file from dir. Missing local
// configuration is not an error.
func (l *TOMLLoader) LoadLocal(ctx context.Context, dir string) (*entities.Config, error) {
	localPath := filepath.Join(dir, l.localName)
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return nil, nil
	}
	return l.loadConfig(localPath)
}

// CreateDefaults writes the default configuration to path.
func (l *TOMLLoader) CreateDefaults(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}

	file, err := os.Create(path) // #nosec G304 - path is the controlled global config path
	if err != nil {
		return fmt.Errorf("creating config file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	encoder := toml.NewEncoder(file)
	encoder.Indent = "  "

	if err := encoder.Encode(GetDefaultConfig()); err != nil {
		return fmt.Errorf("encoding config to %s: %w", path, err)
	}
	return nil
}

// GetGlobalPath returns the global configuration path.
func (l *TOMLLoader) GetGlobalPath() string {
	return l.globalPath
}

func (l *TOMLLoader) loadConfig(path string) (*entities.Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is from controlled sources
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var config entities.Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing TOML from %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return &config, nil
}

// Ensure TOMLLoader implements ports.ConfigLoader.
var _ ports.ConfigLoader = (*TOMLLoader)(nil)
