package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/deckmd/deckmd/internal/domain/ports"
)

// ReloadService couples the file watcher to the deck server: whenever the
// watched markdown file changes it recompiles the deck and pushes the new
// representation to all connected clients.
type ReloadService struct {
	watcher  ports.FileWatcher
	compiler ports.DeckCompiler
	server   ports.DeckServer

	mu          sync.Mutex
	watching    bool
	watchCancel context.CancelFunc
	deckPath    string
}

// NewReloadService creates a new reload service.
func NewReloadService(watcher ports.FileWatcher, compiler ports.DeckCompiler, server ports.DeckServer) *ReloadService {
	return &ReloadService{
		watcher:  watcher,
		compiler: compiler,
		server:   server,
	}
}

// Start begins watching the deck file.
func (s *ReloadService) Start(ctx context.Context, path string) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}
	s.watching = true
	s.deckPath = path
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.watchCancel = cancel
	s.mu.Unlock()

	events, err := s.watcher.Watch(watchCtx, path)
	if err != nil {
		s.mu.Lock()
		s.watching = false
		s.watchCancel = nil
		s.mu.Unlock()
		cancel()
		return fmt.Errorf("starting watcher: %w", err)
	}

	go s.handleEvents(watchCtx, events)
	return nil
}

// Stop stops watching.
func (s *ReloadService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watching {
		return nil
	}
	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}
	s.watching = false
	return nil
}

// IsWatching reports whether the service is currently watching.
func (s *ReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

func (s *ReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.handleChange(ctx, event)
		}
	}
}

func (s *ReloadService) handleChange(ctx context.Context, event ports.FileChangeEvent) {
	if event.Type == ports.Deleted {
		log.Printf("warning: deck file %s deleted, keeping last compiled deck", event.Path)
		return
	}

	s.mu.Lock()
	path := s.deckPath
	s.mu.Unlock()

	deck, err := s.compiler.Compile(ctx, path)
	if err != nil {
		log.Printf("warning: recompiling %s: %v", path, err)
		notifyErr := s.server.NotifyClients(ports.UpdateEvent{
			Type:      ports.EventTypeError,
			Timestamp: time.Now(),
			Data:      map[string]string{"error": err.Error()},
		})
		if notifyErr != nil {
			log.Printf("warning: notifying clients: %v", notifyErr)
		}
		return
	}

	s.server.SetDeck(deck)
	if err := s.server.NotifyClients(ports.UpdateEvent{
		Type:      ports.EventTypeDeck,
		Timestamp: event.Timestamp,
		Data:      deck,
	}); err != nil {
		log.Printf("warning: notifying clients: %v", err)
	}
}
