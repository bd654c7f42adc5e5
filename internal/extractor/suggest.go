package extractor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dayoon/recruit-bot/internal/llm"
	"github.com/dayoon/recruit-bot/internal/models"
)

// HistoryLookup reads previously accepted field values, most recent first.
type HistoryLookup interface {
	AcceptedValues(ctx context.Context, field string, limit int) ([]string, error)
}

// suggestedFields lists the fields the generator fills candidates for, in
// output order.
var suggestedFields = []string{
	models.FieldPosition,
	models.FieldTechStack,
	models.FieldExperience,
	models.FieldRequirements,
	models.FieldPreferences,
}

// techByPosition keys static tech-stack suggestions by the detected position.
var techByPosition = map[string][]string{
	"백엔드 개발자":   {"java", "spring", "mysql", "aws"},
	"프론트엔드 개발자": {"javascript", "typescript", "react"},
	"풀스택 개발자":   {"typescript", "react", "node.js", "postgresql"},
	"데이터 엔지니어":  {"python", "aws", "postgresql"},
	"머신러닝 엔지니어": {"python", "gcp", "docker"},
}

// staticSuggestions are the position-independent fallback tables.
var staticSuggestions = map[string][]string{
	models.FieldPosition:     {"백엔드 개발자", "프론트엔드 개발자", "디자이너", "기획자"},
	models.FieldTechStack:    {"java", "python", "javascript"},
	models.FieldExperience:   {"신입", "경력 3년 이상", "경력무관"},
	models.FieldRequirements: {"관련 분야 실무 경험", "원활한 커뮤니케이션 능력"},
	models.FieldPreferences:  {"관련 자격증 보유자 우대", "유관 업계 경험자 우대"},
}

const historyLimit = 3

// SuggestionGenerator proposes candidate completions for fields the extractor
// could not fill, drawing from static tables, the historical store, and
// optionally the LLM.
type SuggestionGenerator struct {
	history   HistoryLookup
	generator llm.TextGenerator
	logger    *zap.Logger
}

// NewSuggestionGenerator builds a generator; history and generator may be nil,
// in which case their sources are simply skipped.
func NewSuggestionGenerator(history HistoryLookup, generator llm.TextGenerator, logger *zap.Logger) *SuggestionGenerator {
	return &SuggestionGenerator{history: history, generator: generator, logger: logger}
}

// Generate produces suggestions for every field absent from extracted.
// Ordering within a field is static-pattern first, then historical values,
// then LLM-sourced candidates.
func (g *SuggestionGenerator) Generate(ctx context.Context, extracted models.ExtractedFields, originalText string) models.SuggestionSet {
	set := models.SuggestionSet{}
	position := extracted.First(models.FieldPosition)

	for _, field := range suggestedFields {
		if extracted.Has(field) {
			continue
		}

		var suggestions []models.Suggestion
		for _, v := range g.staticCandidates(field, position) {
			suggestions = append(suggestions, models.Suggestion{Value: v, Source: models.SourcePattern})
		}
		for _, v := range g.historyCandidates(ctx, field) {
			if !containsValue(suggestions, v) {
				suggestions = append(suggestions, models.Suggestion{Value: v, Source: models.SourceHistory})
			}
		}
		if v := g.llmCandidate(ctx, field, originalText); v != "" && !containsValue(suggestions, v) {
			suggestions = append(suggestions, models.Suggestion{Value: v, Source: models.SourceLLM})
		}

		set[field] = models.FieldSuggestions{
			Extracted:   extracted[field],
			Suggestions: suggestions,
		}
	}

	return set
}

func (g *SuggestionGenerator) staticCandidates(field, position string) []string {
	if field == models.FieldTechStack && position != "" {
		if techs, ok := techByPosition[position]; ok {
			return techs
		}
	}
	return staticSuggestions[field]
}

func (g *SuggestionGenerator) historyCandidates(ctx context.Context, field string) []string {
	if g.history == nil {
		return nil
	}
	values, err := g.history.AcceptedValues(ctx, field, historyLimit)
	if err != nil {
		g.logger.Warn("Failed to look up historical suggestions",
			zap.Error(err),
			zap.String("field", field))
		return nil
	}
	return values
}

func (g *SuggestionGenerator) llmCandidate(ctx context.Context, field, originalText string) string {
	if g.generator == nil {
		return ""
	}
	prompt := fmt.Sprintf("다음 채용 공고 초안에서 '%s' 항목이 비어 있습니다. 어울리는 값을 한 가지만 짧게 제안해 주세요.\n\n%s", field, originalText)
	value, err := g.generator.Generate(ctx, prompt, "당신은 채용 공고 작성을 돕는 어시스턴트입니다.", nil)
	if err != nil {
		g.logger.Warn("Failed to get suggestion from LLM",
			zap.Error(err),
			zap.String("field", field))
		return ""
	}
	return strings.TrimSpace(value)
}

func containsValue(suggestions []models.Suggestion, v string) bool {
	for _, s := range suggestions {
		if strings.EqualFold(s.Value, v) {
			return true
		}
	}
	return false
}
