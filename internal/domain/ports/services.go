package ports

import (
	"context"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// DeckCompiler compiles a markdown file into its deck representation.
type DeckCompiler interface {
	// Compile reads and compiles the file at path.
	Compile(ctx context.Context, path string) (*entities.Deck, error)
	// Current returns the most recently compiled deck, or nil.
	Current() *entities.Deck
}
