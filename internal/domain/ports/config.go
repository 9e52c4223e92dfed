package ports

import (
	"context"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// ConfigLoader loads application configuration from disk.
type ConfigLoader interface {
	// LoadGlobal loads the user-level configuration, creating defaults on
	// first run.
	LoadGlobal(ctx context.Context) (*entities.Config, error)
	// LoadLocal loads the project-level configuration from dir, returning
	// (nil, nil) when none exists.
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)
}

// ConfigMerger combines configuration layers, later layers winning.
type ConfigMerger interface {
	Merge(configs ...*entities.Config) *entities.Config
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config
}
