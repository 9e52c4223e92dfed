package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// ErrorResponse is the JSON body for error replies.
type ErrorResponse struct {
	Error string    `json:"error"`
	Time  time.Time `json:"time"`
}

// handleDeck returns the full compiled deck as JSON.
func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	deck := s.GetDeck()
	if deck == nil {
		s.writeError(w, "no deck compiled", http.StatusNotFound)
		return
	}
	s.writeJSON(w, deck)
}

// handleSlide returns a single slide by index.
func (s *Server) handleSlide(w http.ResponseWriter, r *http.Request) {
	deck := s.GetDeck()
	if deck == nil {
		s.writeError(w, "no deck compiled", http.StatusNotFound)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 || index >= len(deck.Slides) {
		s.writeError(w, "slide not found", http.StatusNotFound)
		return
	}

	s.writeJSON(w, deck.Slides[index])
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "ok",
		"clients": s.connMgr.Count(),
		"hasDeck": s.GetDeck() != nil,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Time: time.Now()}); err != nil {
		s.logger.Error("writing error response: %v", err)
	}
}
