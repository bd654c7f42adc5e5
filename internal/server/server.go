package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/models"
	"github.com/dayoon/recruit-bot/internal/router"
	"github.com/dayoon/recruit-bot/internal/storage"
)

// Server exposes the chat core over HTTP.
type Server struct {
	router *router.Router
	store  storage.RecordStore
	logger *zap.Logger
}

func New(r *router.Router, store storage.RecordStore, logger *zap.Logger) *Server {
	return &Server{router: r, store: store, logger: logger}
}

// Handler returns the HTTP handler tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/sessions/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.loggingMiddleware(mux)
}

// handleHistory returns the persisted turns of one session.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	turns, err := s.store.ChatTurns(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("Failed to load chat turns",
			zap.Error(err),
			zap.String("session_id", sessionID))
		s.respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"turns":      turns,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleChat routes one chat turn. Only malformed request bodies surface as
// client errors; classification and collaborator failures come back as a
// degraded chat response with status 200.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.New().String()
	}

	resp := s.router.Route(r.Context(), req)
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr))
		next.ServeHTTP(w, r)
	})
}
