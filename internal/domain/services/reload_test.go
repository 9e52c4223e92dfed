package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckmd/deckmd/internal/domain/entities"
	"github.com/deckmd/deckmd/internal/domain/ports"
)

type stubWatcher struct {
	events chan ports.FileChangeEvent
	err    error
}

func (w *stubWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.events, nil
}

func (w *stubWatcher) Stop() error { return nil }

type stubCompiler struct {
	deck *entities.Deck
	err  error
}

func (c *stubCompiler) Compile(ctx context.Context, path string) (*entities.Deck, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.deck, nil
}

func (c *stubCompiler) Current() *entities.Deck { return c.deck }

type stubServer struct {
	mu     sync.Mutex
	deck   *entities.Deck
	events []ports.UpdateEvent
}

func (s *stubServer) Start(ctx context.Context, port int, host string) error { return nil }
func (s *stubServer) Stop(ctx context.Context) error                         { return nil }
func (s *stubServer) IsRunning() bool                                        { return true }

func (s *stubServer) SetDeck(deck *entities.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
}

func (s *stubServer) NotifyClients(event ports.UpdateEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *stubServer) lastEvent() (ports.UpdateEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return ports.UpdateEvent{}, false
	}
	return s.events[len(s.events)-1], true
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestReloadServicePushesDeckOnChange(t *testing.T) {
	events := make(chan ports.FileChangeEvent, 1)
	deck := &entities.Deck{Slides: []entities.SlideContent{{}}}
	server := &stubServer{}
	svc := NewReloadService(&stubWatcher{events: events}, &stubCompiler{deck: deck}, server)

	require.NoError(t, svc.Start(context.Background(), "deck.md"))
	defer func() { _ = svc.Stop() }()
	assert.True(t, svc.IsWatching())

	events <- ports.FileChangeEvent{Path: "deck.md", Type: ports.Modified, Timestamp: time.Now()}

	waitFor(t, func() bool {
		_, ok := server.lastEvent()
		return ok
	})

	event, _ := server.lastEvent()
	assert.Equal(t, ports.EventTypeDeck, event.Type)

	server.mu.Lock()
	assert.Same(t, deck, server.deck)
	server.mu.Unlock()
}

func TestReloadServiceNotifiesErrorOnCompileFailure(t *testing.T) {
	events := make(chan ports.FileChangeEvent, 1)
	server := &stubServer{}
	svc := NewReloadService(&stubWatcher{events: events}, &stubCompiler{err: errors.New("bad deck")}, server)

	require.NoError(t, svc.Start(context.Background(), "deck.md"))
	defer func() { _ = svc.Stop() }()

	events <- ports.FileChangeEvent{Path: "deck.md", Type: ports.Modified, Timestamp: time.Now()}

	waitFor(t, func() bool {
		_, ok := server.lastEvent()
		return ok
	})

	event, _ := server.lastEvent()
	assert.Equal(t, ports.EventTypeError, event.Type)
}

func TestReloadServiceStartTwice(t *testing.T) {
	events := make(chan ports.FileChangeEvent)
	svc := NewReloadService(&stubWatcher{events: events}, &stubCompiler{}, &stubServer{})

	require.NoError(t, svc.Start(context.Background(), "deck.md"))
	assert.Error(t, svc.Start(context.Background(), "deck.md"))
	require.NoError(t, svc.Stop())
	assert.False(t, svc.IsWatching())
}

func TestReloadServiceWatcherError(t *testing.T) {
	svc := NewReloadService(&stubWatcher{err: errors.New("no file")}, &stubCompiler{}, &stubServer{})
	err := svc.Start(context.Background(), "deck.md")
	require.Error(t, err)
	assert.False(t, svc.IsWatching())
}
