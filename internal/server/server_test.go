package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/classifier"
	"github.com/dayoon/recruit-bot/internal/extractor"
	"github.com/dayoon/recruit-bot/internal/models"
	"github.com/dayoon/recruit-bot/internal/router"
	"github.com/dayoon/recruit-bot/internal/session"
	"github.com/dayoon/recruit-bot/internal/storage"
)

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, prompt, systemMessage string, history []models.HistoryMessage) (string, error) {
	return "안녕하세요! 무엇을 도와드릴까요?", nil
}

func newTestServer() (*Server, *storage.MemoryStorage) {
	logger := zap.NewNop()
	store := storage.NewMemoryStorage()
	gen := stubGenerator{}
	suggester := extractor.NewSuggestionGenerator(store, gen, logger)
	scorer := classifier.NewContextScorer(classifier.ContextConfig{
		Threshold:      2.5,
		KeywordWeight:  1.0,
		LengthWeight:   1.0,
		SentenceWeight: 0.5,
	})
	rt := router.New(classifier.NewKeywordClassifier(), scorer, suggester, gen, store, session.NewMemoryStore(),
		router.Config{ShortTextThreshold: 30}, logger)
	return New(rt, store, logger), store
}

func TestChatEndpoint(t *testing.T) {
	srv, _ := newTestServer()

	body := `{"message": "안녕하세요 반가워요", "session_id": "abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected a success-shaped response")
	}
	if resp.Intent != models.IntentChat {
		t.Errorf("intent = %q, want chat", resp.Intent)
	}
	if resp.SessionID != "abc" {
		t.Errorf("session id = %q, want abc", resp.SessionID)
	}
}

func TestChatEndpointGeneratesSessionID(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message": "안녕"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp models.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("expected a generated session id")
	}
}

func TestChatEndpointRejectsMalformedBody(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", rec.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, store := newTestServer()

	if err := store.SaveChatTurn(context.Background(), &models.ChatTurn{
		SessionID: "abc",
		Message:   "안녕",
		Intent:    models.IntentChat,
		Response:  "안녕하세요!",
	}); err != nil {
		t.Fatalf("SaveChatTurn: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/abc/history", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		SessionID string             `json:"session_id"`
		Turns     []*models.ChatTurn `json:"turns"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(payload.Turns) != 1 {
		t.Errorf("got %d turns, want 1", len(payload.Turns))
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
