package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/classifier"
	"github.com/dayoon/recruit-bot/internal/extractor"
	"github.com/dayoon/recruit-bot/internal/models"
	"github.com/dayoon/recruit-bot/internal/session"
	"github.com/dayoon/recruit-bot/internal/storage"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt, systemMessage string, history []models.HistoryMessage) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const testJobPosting = "백엔드 개발자를 모집합니다. 담당업무는 커머스 서버 개발 및 운영입니다. " +
	"자격요건은 경력 3년 이상이며 우대사항으로 aws 운영 경험이 있습니다. " +
	"급여는 연봉 5000만원이며 복리후생 제도가 잘 갖추어져 있습니다. " +
	"근무지는 서울 강남 사무실입니다. 제출서류는 이력서와 포트폴리오입니다."

func newTestRouter(gen *fakeGenerator) (*Router, *storage.MemoryStorage, *session.MemoryStore) {
	logger := zap.NewNop()
	store := storage.NewMemoryStorage()
	sessions := session.NewMemoryStore()
	suggester := extractor.NewSuggestionGenerator(store, gen, logger)
	scorer := classifier.NewContextScorer(classifier.ContextConfig{
		Threshold:      2.5,
		KeywordWeight:  1.0,
		LengthWeight:   1.0,
		SentenceWeight: 0.5,
	})
	r := New(classifier.NewKeywordClassifier(), scorer, suggester, gen, store, sessions,
		Config{ShortTextThreshold: 30}, logger)
	return r, store, sessions
}

func route(r *Router, sessionID, message string) models.ChatResponse {
	return r.Route(context.Background(), models.ChatRequest{
		Message:   message,
		SessionID: sessionID,
	})
}

func TestRouteIntents(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantIntent models.Intent
	}{
		{"recruit posting", testJobPosting, models.IntentRecruit},
		{"calc request", "연봉 4000만원 3명 인건비 계산", models.IntentCalc},
		{"navigation", "지원자 페이지로 이동해줘", models.IntentPageNavigation},
		{"db lookup", "개발팀 지원자 목록 조회", models.IntentDB},
		{"search", "업계 평균 연차별 처우 수준 검색", models.IntentSearch},
		{"question", "이 서비스는 어떻게 사용하나요", models.IntentChat},
		{"casual chat", "안녕하세요 반가워요", models.IntentChat},
		{"field without action", "3명 채용 예정입니다", models.IntentUnknown},
		{"gibberish", "오늘 점심 메뉴 추천", models.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: "네, 도와드리겠습니다."}
			r, _, _ := newTestRouter(gen)

			resp := route(r, "s1", tt.message)
			if resp.Intent != tt.wantIntent {
				t.Errorf("intent = %q, want %q (response %q)", resp.Intent, tt.wantIntent, resp.Response)
			}
			if !resp.Success {
				t.Error("router responses are always success-shaped")
			}
			if resp.SessionID != "s1" {
				t.Errorf("session id = %q, want s1", resp.SessionID)
			}
		})
	}
}

func TestRouteRecruitAttachesExtractedFields(t *testing.T) {
	gen := &fakeGenerator{response: "채용 공고 초안입니다."}
	r, _, _ := newTestRouter(gen)

	resp := route(r, "s1", testJobPosting)
	if resp.Intent != models.IntentRecruit {
		t.Fatalf("intent = %q, want recruit", resp.Intent)
	}
	if !resp.ExtractedFields.Has(models.FieldPosition) {
		t.Errorf("extracted fields missing position: %v", resp.ExtractedFields)
	}
	if gen.calls == 0 {
		t.Error("recruit handler should call the LLM for the draft")
	}
}

func TestRouteCalcDoesNotCallLLM(t *testing.T) {
	gen := &fakeGenerator{response: "unused"}
	r, _, _ := newTestRouter(gen)

	resp := route(r, "s1", "연봉 4000만원 3명 인건비 계산")
	if resp.Intent != models.IntentCalc {
		t.Fatalf("intent = %q, want calc", resp.Intent)
	}
	if !strings.Contains(resp.Response, "12000") {
		t.Errorf("response %q should contain the computed total 12000", resp.Response)
	}
	if gen.calls != 0 {
		t.Error("calc handler must not call the LLM")
	}
}

func TestRouteMonthlyToAnnualConversion(t *testing.T) {
	r, _, _ := newTestRouter(&fakeGenerator{})

	resp := route(r, "s1", "월급 300만원이면 연봉 얼마")
	if resp.Intent != models.IntentCalc {
		t.Fatalf("intent = %q, want calc", resp.Intent)
	}
	if !strings.Contains(resp.Response, "3600") {
		t.Errorf("response %q should contain the annual amount 3600", resp.Response)
	}
}

func TestRouteDegradesOnLLMFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	r, _, _ := newTestRouter(gen)

	for _, message := range []string{"안녕하세요 반가워요", testJobPosting} {
		resp := route(r, "s1", message)
		if !resp.Success {
			t.Error("degraded response must still be success-shaped")
		}
		if resp.Intent != models.IntentChat {
			t.Errorf("degraded intent = %q, want chat", resp.Intent)
		}
		if resp.Response != apologyResponse {
			t.Errorf("degraded response = %q, want the fixed apology", resp.Response)
		}
	}
}

func TestRouteEmptyInputAsksForClarification(t *testing.T) {
	r, _, _ := newTestRouter(&fakeGenerator{})

	for _, message := range []string{"", "   ", "<div></div>"} {
		resp := route(r, "s1", message)
		if resp.Intent != models.IntentUnknown {
			t.Errorf("Route(%q) intent = %q, want unknown", message, resp.Intent)
		}
		if resp.Response != clarifyResponse {
			t.Errorf("Route(%q) response = %q, want the clarification prompt", message, resp.Response)
		}
	}
}

func TestRouteAdminToggle(t *testing.T) {
	r, _, sessions := newTestRouter(&fakeGenerator{})

	resp := route(r, "s1", "admin:on")
	if resp.Intent != models.IntentAdmin {
		t.Fatalf("intent = %q, want admin", resp.Intent)
	}
	if !session.IsAdmin(sessions, "s1") {
		t.Fatal("session should be admin after the toggle")
	}

	resp = route(r, "s1", "admin:off")
	if resp.Intent != models.IntentAdmin {
		t.Fatalf("intent = %q, want admin", resp.Intent)
	}
	if session.IsAdmin(sessions, "s1") {
		t.Fatal("session should not be admin after admin:off")
	}
}

func TestRouteDBRespectsAdminMode(t *testing.T) {
	r, store, _ := newTestRouter(&fakeGenerator{})
	ctx := context.Background()

	if err := store.SaveApplicant(ctx, &models.Applicant{
		Name:       "김철수",
		Position:   "백엔드 개발자",
		Department: "개발",
	}); err != nil {
		t.Fatalf("SaveApplicant: %v", err)
	}

	resp := route(r, "s1", "개발팀 지원자 목록 조회")
	if resp.Intent != models.IntentDB {
		t.Fatalf("intent = %q, want db", resp.Intent)
	}
	if strings.Contains(resp.Response, "김철수") {
		t.Error("non-admin session must not see applicant names")
	}

	route(r, "s1", "admin:on")
	resp = route(r, "s1", "개발팀 지원자 목록 조회")
	if !strings.Contains(resp.Response, "김철수") {
		t.Errorf("admin session should see applicant names, got %q", resp.Response)
	}
}

func TestRoutePersistsChatTurns(t *testing.T) {
	r, store, _ := newTestRouter(&fakeGenerator{response: "안녕하세요!"})

	route(r, "s1", "안녕하세요 반가워요")

	turns, err := storeTurns(store)
	if err != nil {
		t.Fatalf("reading turns: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("got %d persisted turns, want 1", len(turns))
	}
	if turns[0].Intent != models.IntentChat {
		t.Errorf("persisted intent = %q, want chat", turns[0].Intent)
	}
}

// storeTurns peeks at the persisted chat turns via the memory store.
func storeTurns(s *storage.MemoryStorage) ([]*models.ChatTurn, error) {
	return s.ChatTurns(context.Background(), "s1")
}
