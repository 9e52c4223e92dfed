package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deckmd/deckmd/internal/domain/entities"
	"github.com/deckmd/deckmd/internal/domain/ports"
)

// DeckService compiles markdown files into decks and keeps the most
// recent result for the HTTP layer.
type DeckService struct {
	parser ports.DeckParser

	mu      sync.RWMutex
	current *entities.Deck
}

// NewDeckService creates a new deck service.
func NewDeckService(parser ports.DeckParser) *DeckService {
	return &DeckService{parser: parser}
}

// Compile reads the file at path and compiles it into a deck. Slide IDs
// are assigned here so that repeated compiles of identical content still
// produce unique identities for live clients.
func (s *DeckService) Compile(ctx context.Context, path string) (*entities.Deck, error) {
	if path == "" {
		return nil, errors.New("deck path cannot be empty")
	}

	content, err := os.ReadFile(path) // #nosec G304 - path comes from the CLI invocation
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("deck file not found: %s", path)
		}
		return nil, fmt.Errorf("reading deck file: %w", err)
	}

	return s.compile(ctx, path, content)
}

// CompileContent compiles in-memory markdown content into a deck.
func (s *DeckService) CompileContent(ctx context.Context, content []byte) (*entities.Deck, error) {
	if len(content) == 0 {
		return nil, errors.New("deck content cannot be empty")
	}
	return s.compile(ctx, "", content)
}

func (s *DeckService) compile(ctx context.Context, path string, content []byte) (*entities.Deck, error) {
	slides, err := s.parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}

	for i := range slides {
		slides[i].Index = i
		slides[i].ID = uuid.New().String()
	}

	deck := &entities.Deck{
		Path:        path,
		Slides:      slides,
		GeneratedAt: time.Now(),
	}
	deck.Title = deck.DeriveTitle()

	if err := deck.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}

	s.mu.Lock()
	s.current = deck
	s.mu.Unlock()

	return deck, nil
}

// Current returns the most recently compiled deck, or nil.
func (s *DeckService) Current() *entities.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Ensure DeckService implements ports.DeckCompiler.
var _ ports.DeckCompiler = (*DeckService)(nil)
