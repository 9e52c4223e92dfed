package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/deckmd/deckmd/internal/domain/entities"
	"github.com/deckmd/deckmd/internal/domain/ports"
)

// HTTPLogger provides leveled logging for the HTTP server.
type HTTPLogger struct {
	component string
	level     entities.LogLevel
}

// NewHTTPLogger creates a logger for the given component at the given level.
func NewHTTPLogger(component string, level entities.LogLevel) *HTTPLogger {
	return &HTTPLogger{component: component, level: level}
}

func (l *HTTPLogger) shouldLog(msgLevel entities.LogLevel) bool {
	levelMap := map[entities.LogLevel]int{
		entities.LogLevelDebug: 0,
		entities.LogLevelInfo:  1,
		entities.LogLevelWarn:  2,
		entities.LogLevelError: 3,
	}
	return levelMap[msgLevel] >= levelMap[l.level]
}

// Debug logs debug messages.
func (l *HTTPLogger) Debug(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelDebug) {
		log.Printf("[DEBUG] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Info logs informational messages.
func (l *HTTPLogger) Info(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelInfo) {
		log.Printf("[INFO] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Warn logs warning messages.
func (l *HTTPLogger) Warn(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelWarn) {
		log.Printf("[WARN] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Error logs error messages.
func (l *HTTPLogger) Error(msg string, args ...interface{}) {
	if l.shouldLog(entities.LogLevelError) {
		log.Printf("[ERROR] [%s] "+msg, append([]interface{}{l.component}, args...)...)
	}
}

// Server serves the compiled deck over HTTP and WebSocket.
type Server struct {
	server  *http.Server
	connMgr *ConnectionManager
	config  *entities.ServerConfig
	logger  *HTTPLogger

	mu      sync.RWMutex
	deck    *entities.Deck
	running bool
}

// NewServer creates a deck server. config must not be nil.
func NewServer(config *entities.ServerConfig, level entities.LogLevel) *Server {
	if config == nil {
		panic("server config cannot be nil")
	}
	return &Server{
		connMgr: NewConnectionManager(),
		config:  config,
		logger:  NewHTTPLogger("server", level),
	}
}

// SetDeck replaces the deck being served.
func (s *Server) SetDeck(deck *entities.Deck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = deck
}

// GetDeck returns the deck currently served, or nil.
func (s *Server) GetDeck() *entities.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deck
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	go s.connMgr.Run(ctx)

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      c.Handler(router),
		ReadTimeout:  time.Duration(timeoutOrDefault(s.config.ReadTimeout, 15)) * time.Second,
		WriteTimeout: time.Duration(timeoutOrDefault(s.config.WriteTimeout, 15)) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("serving deck on %s:%d", host, port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.CloseAll()

	timeout := time.Duration(timeoutOrDefault(s.config.ShutdownTimeout, 5)) * time.Second
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// NotifyClients sends an update event to all connected clients.
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return errors.New("server not running")
	}
	s.connMgr.Broadcast(event)
	return nil
}

// IsRunning reports whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/ws", s.handleWebSocket)
	router.HandleFunc("/api/deck", s.handleDeck).Methods(http.MethodGet)
	router.HandleFunc("/api/slides/{index:[0-9]+}", s.handleSlide).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	handler := securityHeadersMiddleware(router)
	handler = loggingMiddleware(handler, s.logger)
	handler = recoveryMiddleware(handler, s.logger)

	return handler
}

func timeoutOrDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

// Ensure Server implements ports.DeckServer.
var _ ports.DeckServer = (*Server)(nil)
