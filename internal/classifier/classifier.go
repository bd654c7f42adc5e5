package classifier

import (
	"regexp"
	"strings"

	"github.com/dayoon/recruit-bot/internal/models"
)

// Rule confidences are fixed constants per the matching rule, not derived
// from the input.
const (
	fieldConfidence    = 0.8
	questionConfidence = 0.7
	chatConfidence     = 0.6
	unknownConfidence  = 0.3
)

// fieldRule pairs a field category with its trigger keywords and a value
// extractor. Rules live in a slice, not a map: declaration order is the
// tie-break when several categories' keywords appear in one message.
type fieldRule struct {
	category string
	keywords []string
	extract  func(input string) string
}

var (
	headcountPattern = regexp.MustCompile(`(\d+)\s*명`)
	salaryPattern    = regexp.MustCompile(`(\d+)[만천]?원`)
)

// departmentNames is the fixed list of department names matched as substrings.
var departmentNames = []string{"개발", "디자인", "마케팅", "영업", "인사", "기획", "재무", "총무"}

var fieldRules = []fieldRule{
	{
		category: "department",
		keywords: []string{"부서", "팀", "개발", "디자인", "마케팅", "영업부", "인사부", "기획"},
		extract:  extractDepartment,
	},
	{
		category: "headcount",
		keywords: []string{"명", "인원", "충원", "채용 인원"},
		extract:  regexGroupExtractor(headcountPattern),
	},
	{
		category: "salary",
		keywords: []string{"연봉", "월급", "급여", "임금", "만원"},
		extract:  regexGroupExtractor(salaryPattern),
	},
	{
		category: "location",
		keywords: []string{"위치", "근무지", "지역", "장소", "주소"},
		extract:  identityExtractor,
	},
	{
		category: "experience",
		keywords: []string{"경력", "신입", "연차", "경험"},
		extract:  identityExtractor,
	},
	{
		category: "deadline",
		keywords: []string{"마감", "기한", "지원 기간", "까지"},
		extract:  identityExtractor,
	},
}

var questionMarkers = []string{
	"어떻게", "무엇", "뭐", "왜", "언제", "어디", "누구",
	"인가요", "한가요", "습니까", "알려줘", "알려주세요", "?",
}

var chatMarkers = []string{
	"안녕", "반가워", "고마워", "감사", "잘가", "수고",
	"ㅎㅎ", "ㅋㅋ", "hello", "hi", "thanks",
}

// KeywordClassifier classifies a sanitized chat message against fixed keyword
// tables and regex extractors. It is pure and holds no state.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify returns exactly one Classification for the input. Field categories
// are tested in table order and the first hit wins; question markers and chat
// markers follow; anything else is unknown.
func (c *KeywordClassifier) Classify(input string) models.Classification {
	trimmed := strings.TrimSpace(input)
	lowered := strings.ToLower(trimmed)

	for _, rule := range fieldRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return models.Classification{
					Type:       models.TypeField,
					Category:   rule.category,
					Value:      rule.extract(trimmed),
					Confidence: fieldConfidence,
				}
			}
		}
	}

	for _, marker := range questionMarkers {
		if strings.Contains(lowered, marker) {
			return models.Classification{
				Type:       models.TypeQuestion,
				Category:   "general",
				Confidence: questionConfidence,
			}
		}
	}

	for _, marker := range chatMarkers {
		if strings.Contains(lowered, marker) {
			return models.Classification{
				Type:       models.TypeChat,
				Category:   "casual",
				Confidence: chatConfidence,
			}
		}
	}

	return models.Classification{
		Type:       models.TypeUnknown,
		Category:   "general",
		Confidence: unknownConfidence,
	}
}

// regexGroupExtractor returns the first capture group of the pattern, falling
// back to the raw trimmed input when the pattern does not match.
func regexGroupExtractor(pattern *regexp.Regexp) func(string) string {
	return func(input string) string {
		if m := pattern.FindStringSubmatch(input); m != nil {
			return m[1]
		}
		return strings.TrimSpace(input)
	}
}

func identityExtractor(input string) string {
	return strings.TrimSpace(input)
}

// extractDepartment matches the input against the fixed department name list.
func extractDepartment(input string) string {
	for _, name := range departmentNames {
		if strings.Contains(input, name) {
			return name
		}
	}
	return strings.TrimSpace(input)
}
