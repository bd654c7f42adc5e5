package router

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/extractor"
	"github.com/dayoon/recruit-bot/internal/models"
	"github.com/dayoon/recruit-bot/internal/session"
)

const assistantSystemMessage = "당신은 HR 채용 업무를 돕는 어시스턴트입니다. 한국어로 간결하고 정중하게 답변하세요."

// degraded converts a collaborator failure into the chat-shaped apology
// response. Raw errors never leave the handler boundary.
func (r *Router) degraded(cause error, where string) models.ChatResponse {
	r.logger.Error("Handler collaborator failure",
		zap.Error(cause),
		zap.String("handler", where))
	return models.ChatResponse{
		Success:    true,
		Response:   apologyResponse,
		Intent:     models.IntentChat,
		Confidence: 0,
	}
}

func (r *Router) handleRecruit(ctx context.Context, input string, score models.ContextScore) models.ChatResponse {
	fields := extractor.Extract(input)
	suggestions := r.suggester.Generate(ctx, fields, input)

	// Extracted values feed the historical-suggestion store for later turns.
	for _, field := range []string{models.FieldPosition, models.FieldTechStack} {
		for _, v := range fields[field] {
			if err := r.store.RecordAccepted(ctx, field, v); err != nil {
				r.logger.Warn("Failed to record accepted value",
					zap.Error(err),
					zap.String("field", field))
			}
		}
	}

	draft, err := r.generator.Generate(ctx, buildDraftPrompt(input, fields, suggestions), assistantSystemMessage, nil)
	if err != nil {
		return r.degraded(err, "recruit")
	}

	return models.ChatResponse{
		Success:         true,
		Response:        draft,
		Intent:          models.IntentRecruit,
		ExtractedFields: fields,
		Confidence:      score.Confidence,
	}
}

func buildDraftPrompt(input string, fields models.ExtractedFields, suggestions models.SuggestionSet) string {
	var sb strings.Builder
	sb.WriteString("다음 내용을 바탕으로 채용 공고 초안을 작성해 주세요.\n\n원문:\n")
	sb.WriteString(input)
	sb.WriteString("\n\n추출된 항목:\n")
	for name, values := range fields {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", name, strings.Join(values, ", ")))
	}
	if len(suggestions) > 0 {
		sb.WriteString("\n비어 있는 항목과 후보:\n")
		for name, fs := range suggestions {
			var values []string
			for _, s := range fs.Suggestions {
				values = append(values, s.Value)
			}
			sb.WriteString(fmt.Sprintf("- %s: %s\n", name, strings.Join(values, ", ")))
		}
	}
	return sb.String()
}

var (
	calcSalary    = regexp.MustCompile(`(\d+)\s*만\s*원`)
	calcHeadcount = regexp.MustCompile(`(\d+)\s*명`)
)

// handleCalc evaluates the simple salary/headcount arithmetic present in the
// text without calling the LLM.
func (r *Router) handleCalc(input string, classification models.Classification) models.ChatResponse {
	salary := firstNumber(calcSalary, input)
	headcount := firstNumber(calcHeadcount, input)

	var response string
	switch {
	case salary > 0 && headcount > 0:
		response = fmt.Sprintf("연봉 %d만원 기준 %d명의 인건비는 총 %d만원입니다.", salary, headcount, salary*headcount)
	case salary > 0 && strings.Contains(input, "월급"):
		response = fmt.Sprintf("월급 %d만원은 연봉 기준 %d만원입니다.", salary, salary*12)
	case salary > 0:
		response = fmt.Sprintf("기준 금액은 %d만원입니다. 인원 수를 알려주시면 총액을 계산해 드립니다.", salary)
	default:
		response = "계산할 금액이나 인원을 찾지 못했습니다. 예: 연봉 4000만원 3명 인건비 계산"
	}

	return models.ChatResponse{
		Success:    true,
		Response:   response,
		Intent:     models.IntentCalc,
		Confidence: classification.Confidence,
	}
}

func firstNumber(pattern *regexp.Regexp, input string) int {
	m := pattern.FindStringSubmatch(input)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// navigationTargets maps page keywords to frontend page tags, in match order.
var navigationTargets = []struct {
	keyword string
	page    string
}{
	{"지원자", "applicants"},
	{"공고", "postings"},
	{"대시보드", "dashboard"},
	{"설정", "settings"},
}

func (r *Router) handleNavigation(input string) models.ChatResponse {
	page := "home"
	for _, target := range navigationTargets {
		if strings.Contains(input, target.keyword) {
			page = target.page
			break
		}
	}

	return models.ChatResponse{
		Success:    true,
		Response:   fmt.Sprintf("%s 페이지로 이동합니다.", page),
		Intent:     models.IntentPageNavigation,
		Confidence: 0.9,
	}
}

func (r *Router) handleDB(ctx context.Context, sessionID, input string, classification models.Classification) models.ChatResponse {
	filter := models.ApplicantFilter{Limit: 5}
	if classification.Type == models.TypeField && classification.Category == "department" {
		filter.Department = classification.Value
	}

	applicants, err := r.store.QueryApplicants(ctx, filter)
	if err != nil {
		return r.degraded(err, "db")
	}

	var response string
	if len(applicants) == 0 {
		response = "조건에 맞는 지원자가 없습니다."
	} else if session.IsAdmin(r.sessions, sessionID) {
		// Admin sessions see names; everyone else gets the count only.
		names := make([]string, len(applicants))
		for i, a := range applicants {
			names[i] = fmt.Sprintf("%s (%s)", a.Name, a.Position)
		}
		response = fmt.Sprintf("지원자 %d명: %s", len(applicants), strings.Join(names, ", "))
	} else {
		response = fmt.Sprintf("조건에 맞는 지원자는 %d명입니다.", len(applicants))
	}

	return models.ChatResponse{
		Success:    true,
		Response:   response,
		Intent:     models.IntentDB,
		Confidence: classification.Confidence,
	}
}

func (r *Router) handleSearch(ctx context.Context, input string) models.ChatResponse {
	prompt := fmt.Sprintf("다음 요청에 대해 아는 범위에서 간결하게 답해 주세요.\n\n%s", input)
	answer, err := r.generator.Generate(ctx, prompt, assistantSystemMessage, nil)
	if err != nil {
		return r.degraded(err, "search")
	}

	return models.ChatResponse{
		Success:    true,
		Response:   answer,
		Intent:     models.IntentSearch,
		Confidence: 0.7,
	}
}

func (r *Router) handleChat(ctx context.Context, input string, history []models.HistoryMessage, classification models.Classification) models.ChatResponse {
	answer, err := r.generator.Generate(ctx, input, assistantSystemMessage, history)
	if err != nil {
		return r.degraded(err, "chat")
	}

	return models.ChatResponse{
		Success:    true,
		Response:   answer,
		Intent:     models.IntentChat,
		Confidence: classification.Confidence,
	}
}
