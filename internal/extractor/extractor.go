package extractor

import (
	"regexp"
	"strings"

	"github.com/dayoon/recruit-bot/internal/models"
)

// positionTitles is the static vocabulary of position names, most specific
// first so "백엔드 개발자" wins over the bare "개발자".
var positionTitles = []string{
	"백엔드 개발자", "프론트엔드 개발자", "풀스택 개발자", "모바일 개발자",
	"데이터 분석가", "데이터 엔지니어", "머신러닝 엔지니어",
	"개발자", "디자이너", "기획자", "마케터", "영업 담당자", "인사 담당자", "pm",
}

// techVocabulary is the static technology-name vocabulary matched as
// case-insensitive substrings.
var techVocabulary = []string{
	"java", "python", "go", "kotlin", "swift", "javascript", "typescript",
	"react", "vue", "angular", "spring", "django", "node.js", "flutter",
	"mysql", "postgresql", "mongodb", "redis", "aws", "gcp", "docker", "kubernetes",
}

var (
	experienceYears  = regexp.MustCompile(`(\d+)\s*년\s*(?:이상)?`)
	headcountValue   = regexp.MustCompile(`(\d+)\s*명`)
	salaryValue      = regexp.MustCompile(`(\d+,?\d*)\s*만\s*원|(\d+)천만\s*원`)
	sentenceBoundary = regexp.MustCompile(`[.!?\n]+`)
)

var locationMarkers = []string{"근무지", "근무 장소", "위치"}

// Extract pulls structured recruitment fields out of free text. Fields with
// no matching text are absent from the result; nothing is null-filled.
func Extract(text string) models.ExtractedFields {
	fields := models.ExtractedFields{}
	lowered := strings.ToLower(text)

	for _, title := range positionTitles {
		if strings.Contains(lowered, title) && !containsAny(fields[models.FieldPosition], title) {
			fields[models.FieldPosition] = append(fields[models.FieldPosition], title)
		}
	}

	for _, tech := range techVocabulary {
		if containsWord(lowered, tech) {
			fields[models.FieldTechStack] = append(fields[models.FieldTechStack], tech)
		}
	}

	if m := experienceYears.FindStringSubmatch(text); m != nil {
		fields[models.FieldExperience] = append(fields[models.FieldExperience], m[0])
	} else if strings.Contains(text, "신입") {
		fields[models.FieldExperience] = append(fields[models.FieldExperience], "신입")
	} else if strings.Contains(text, "경력무관") || strings.Contains(text, "경력 무관") {
		fields[models.FieldExperience] = append(fields[models.FieldExperience], "경력무관")
	}

	if m := headcountValue.FindStringSubmatch(text); m != nil {
		fields[models.FieldHeadcount] = append(fields[models.FieldHeadcount], m[1])
	}

	if m := salaryValue.FindString(text); m != "" {
		fields[models.FieldSalary] = append(fields[models.FieldSalary], strings.TrimSpace(m))
	}

	for _, sentence := range sentenceBoundary.Split(text, -1) {
		s := strings.TrimSpace(sentence)
		if s == "" {
			continue
		}
		switch {
		case strings.Contains(s, "우대") || strings.Contains(s, "선호"):
			fields[models.FieldPreferences] = append(fields[models.FieldPreferences], s)
		case strings.Contains(s, "필수") || strings.Contains(s, "자격요건") || strings.Contains(s, "자격 요건"):
			fields[models.FieldRequirements] = append(fields[models.FieldRequirements], s)
		}
		for _, marker := range locationMarkers {
			if strings.Contains(s, marker) {
				fields[models.FieldLocation] = append(fields[models.FieldLocation], s)
				break
			}
		}
	}

	return fields
}

func containsAny(values []string, v string) bool {
	for _, existing := range values {
		if strings.Contains(existing, v) || strings.Contains(v, existing) {
			return true
		}
	}
	return false
}

// containsWord matches tech names on word boundaries so "go" does not fire
// inside "google" or "django".
func containsWord(lowered, word string) bool {
	idx := 0
	for {
		i := strings.Index(lowered[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(lowered[start-1])
		afterOK := end == len(lowered) || !isWordChar(lowered[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
		if idx >= len(lowered) {
			return false
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}
