package ports

import (
	"context"
	"time"

	"github.com/deckmd/deckmd/internal/domain/entities"
)

// Update event types pushed over the WebSocket.
const (
	EventTypeConnected = "connected"
	EventTypeDeck      = "deck"
	EventTypeError     = "error"
)

// UpdateEvent is a message pushed to connected clients.
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// DeckServer serves the compiled deck over HTTP and pushes updates to
// WebSocket clients.
type DeckServer interface {
	Start(ctx context.Context, port int, host string) error
	Stop(ctx context.Context) error
	SetDeck(deck *entities.Deck)
	NotifyClients(event UpdateEvent) error
	IsRunning() bool
}
