package classifier

import (
	"regexp"
	"strings"

	"github.com/dayoon/recruit-bot/internal/models"
)

// phraseCluster is one recruitment-signal category: a passage that is really a
// job posting tends to hit several of these at once, while an incidental
// mention (a lone salary question) hits at most one.
type phraseCluster struct {
	name    string
	phrases []string
}

var phraseClusters = []phraseCluster{
	{"responsibilities", []string{"담당업무", "주요업무", "업무내용", "담당 업무", "주요 업무", "하시게 될 일"}},
	{"qualifications", []string{"자격요건", "지원자격", "자격 요건", "지원 자격", "필수요건", "우대사항", "우대 사항"}},
	{"submission", []string{"제출서류", "제출 서류", "지원방법", "지원 방법", "이력서", "포트폴리오", "자기소개서"}},
	{"compensation", []string{"연봉", "급여", "처우", "복리후생", "복지", "인센티브"}},
	{"location", []string{"근무지", "근무 장소", "근무위치", "출근", "재택", "사무실"}},
}

// keyIndicatorMin is the per-category floor above which a cluster is reported
// as a key indicator in the diagnostic details.
const keyIndicatorMin = 0.5

var sentenceSplit = regexp.MustCompile(`[.!?\n]+`)

// ContextConfig holds the tunable weights and decision threshold of the
// context scorer. The threshold is deliberately configuration, not a derived
// value; defaults live in pkg/config.
type ContextConfig struct {
	Threshold      float64
	KeywordWeight  float64
	LengthWeight   float64
	SentenceWeight float64
}

// ContextScorer decides whether a longer passage constitutes a job posting.
// It is a pure function of its input text: no randomness, no external calls.
type ContextScorer struct {
	cfg ContextConfig
}

func NewContextScorer(cfg ContextConfig) *ContextScorer {
	return &ContextScorer{cfg: cfg}
}

// Score computes the weighted multi-category context score for the text.
// Empty or whitespace-only text scores zero in every category.
func (s *ContextScorer) Score(text string) models.ContextScore {
	trimmed := strings.TrimSpace(text)
	lowered := strings.ToLower(trimmed)
	runeCount := len([]rune(trimmed))
	sentences := countSentences(trimmed)

	scores := make(map[string]float64, len(phraseClusters)+2)
	var indicators []string
	total := 0.0

	for _, cluster := range phraseClusters {
		hits := 0
		for _, p := range cluster.phrases {
			if strings.Contains(lowered, p) {
				hits++
			}
		}
		// Saturates at two distinct phrases per cluster.
		sub := saturate(float64(hits) / 2.0)
		scores[cluster.name] = sub
		total += sub * s.cfg.KeywordWeight
		if sub >= keyIndicatorMin {
			indicators = append(indicators, cluster.name)
		}
	}

	lengthScore := saturate(float64(runeCount) / 300.0)
	scores["length"] = lengthScore
	total += lengthScore * s.cfg.LengthWeight

	sentenceScore := saturate(float64(sentences) / 5.0)
	scores["sentence_structure"] = sentenceScore
	total += sentenceScore * s.cfg.SentenceWeight

	isRecruitment := total >= s.cfg.Threshold

	confidence := 0.0
	if s.cfg.Threshold > 0 {
		diff := total - s.cfg.Threshold
		if diff < 0 {
			diff = -diff
		}
		confidence = saturate(diff / s.cfg.Threshold)
	}

	return models.ContextScore{
		TotalScore:     total,
		CategoryScores: scores,
		IsRecruitment:  isRecruitment,
		Confidence:     confidence,
		Details: models.ContextDetails{
			KeyIndicators: indicators,
			TextLength:    runeCount,
			SentenceCount: sentences,
		},
	}
}

func saturate(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func countSentences(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	n := 0
	for _, part := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	return n
}
