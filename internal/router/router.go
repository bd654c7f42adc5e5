package router

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/classifier"
	"github.com/dayoon/recruit-bot/internal/extractor"
	"github.com/dayoon/recruit-bot/internal/llm"
	"github.com/dayoon/recruit-bot/internal/models"
	"github.com/dayoon/recruit-bot/internal/session"
	"github.com/dayoon/recruit-bot/internal/storage"
	"github.com/dayoon/recruit-bot/internal/textutil"
)

// User-facing fixed responses.
const (
	clarifyResponse = "무엇을 도와드릴까요? 채용 공고 작성, 지원자 조회, 간단한 계산 등을 요청하실 수 있습니다."
	apologyResponse = "죄송합니다. 지금은 요청을 처리할 수 없습니다. 잠시 후 다시 시도해 주세요."
)

// Phrase tables consulted by the decision order. Slices, not maps: first
// match wins.
var (
	calcMarkers = []string{"계산", "총", "합계", "얼마", "평균", "인건비"}

	navigationPhrases = []string{"페이지로 이동", "페이지 이동", "화면으로", "이동해줘", "페이지 열어"}

	dbPhrases = []string{"조회", "목록", "현황", "지원자 수", "몇 명이 지원"}

	searchPhrases = []string{"검색", "찾아줘", "알아봐"}
)

type Router struct {
	keyword   *classifier.KeywordClassifier
	scorer    *classifier.ContextScorer
	suggester *extractor.SuggestionGenerator
	generator llm.TextGenerator
	store     storage.Storage
	sessions  session.Store
	logger    *zap.Logger

	shortTextThreshold int
}

// Config carries the router's tunables.
type Config struct {
	// ShortTextThreshold is the rune count above which the context scorer
	// runs in addition to the keyword classifier.
	ShortTextThreshold int
}

func New(keyword *classifier.KeywordClassifier, scorer *classifier.ContextScorer, suggester *extractor.SuggestionGenerator, generator llm.TextGenerator, store storage.Storage, sessions session.Store, cfg Config, logger *zap.Logger) *Router {
	return &Router{
		keyword:            keyword,
		scorer:             scorer,
		suggester:          suggester,
		generator:          generator,
		store:              store,
		sessions:           sessions,
		logger:             logger,
		shortTextThreshold: cfg.ShortTextThreshold,
	}
}

// Route classifies one chat turn and dispatches to exactly one intent handler.
// It never returns an error: downstream failures are degraded to a fixed
// apology response at the handler boundary.
func (r *Router) Route(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	raw := strings.TrimSpace(req.Message)

	// Admin toggles bypass everything else, including sanitization.
	if confirmation := session.HandleToggle(r.sessions, req.SessionID, raw); confirmation != "" {
		return r.finish(ctx, req, models.ChatResponse{
			Success:    true,
			Response:   confirmation,
			Intent:     models.IntentAdmin,
			SessionID:  req.SessionID,
			Confidence: 1,
		})
	}

	input := textutil.Sanitize(raw)
	if input == "" {
		return r.finish(ctx, req, models.ChatResponse{
			Success:    true,
			Response:   clarifyResponse,
			Intent:     models.IntentUnknown,
			SessionID:  req.SessionID,
			Confidence: 0,
		})
	}

	classification := r.keyword.Classify(input)

	if len([]rune(input)) > r.shortTextThreshold {
		score := r.scorer.Score(input)
		if score.IsRecruitment {
			return r.finish(ctx, req, r.handleRecruit(ctx, input, score))
		}
	}

	lowered := strings.ToLower(input)

	if classification.Type == models.TypeField && isCalcCategory(classification.Category) && containsAny(lowered, calcMarkers) {
		return r.finish(ctx, req, r.handleCalc(input, classification))
	}
	if containsAny(lowered, navigationPhrases) {
		return r.finish(ctx, req, r.handleNavigation(input))
	}
	if containsAny(lowered, dbPhrases) {
		return r.finish(ctx, req, r.handleDB(ctx, req.SessionID, input, classification))
	}
	if containsAny(lowered, searchPhrases) {
		return r.finish(ctx, req, r.handleSearch(ctx, input))
	}
	if classification.Type == models.TypeQuestion || classification.Type == models.TypeChat {
		return r.finish(ctx, req, r.handleChat(ctx, input, req.ConversationHistory, classification))
	}

	return r.finish(ctx, req, models.ChatResponse{
		Success:    true,
		Response:   clarifyResponse,
		Intent:     models.IntentUnknown,
		SessionID:  req.SessionID,
		Confidence: classification.Confidence,
	})
}

// finish stamps the session ID and persists the turn before returning.
func (r *Router) finish(ctx context.Context, req models.ChatRequest, resp models.ChatResponse) models.ChatResponse {
	resp.SessionID = req.SessionID

	if r.store != nil {
		turn := &models.ChatTurn{
			SessionID:  req.SessionID,
			Message:    req.Message,
			Intent:     resp.Intent,
			Response:   resp.Response,
			Confidence: resp.Confidence,
		}
		if err := r.store.SaveChatTurn(ctx, turn); err != nil {
			r.logger.Error("Failed to save chat turn",
				zap.Error(err),
				zap.String("session_id", req.SessionID),
				zap.String("intent", string(resp.Intent)))
		}
	}

	return resp
}

func isCalcCategory(category string) bool {
	return category == "salary" || category == "headcount"
}

func containsAny(lowered string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return true
		}
	}
	return false
}
