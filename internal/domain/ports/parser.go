package ports

import (
	"context"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// DeckParser compiles an extended-Markdown document into the slide deck
// intermediate representation.
type DeckParser interface {
	Parse(ctx context.Context, content []byte) ([]entities.SlideContent, error)
}
