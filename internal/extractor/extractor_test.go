package extractor

import (
	"strings"
	"testing"

	"github.com/dayoon/recruit-bot/internal/models"
)

func TestExtractPosition(t *testing.T) {
	fields := Extract("백엔드 개발자를 모집합니다")

	got := fields[models.FieldPosition]
	if len(got) != 1 || got[0] != "백엔드 개발자" {
		t.Errorf("position = %v, want [백엔드 개발자]", got)
	}
}

// The bare "개발자" must not be added again when a more specific title already
// matched.
func TestExtractPositionNoDuplicateTitle(t *testing.T) {
	fields := Extract("프론트엔드 개발자 채용")

	got := fields[models.FieldPosition]
	if len(got) != 1 {
		t.Errorf("position = %v, want a single title", got)
	}
}

func TestExtractTechStack(t *testing.T) {
	fields := Extract("java, spring 경험이 있는 분을 찾습니다. mysql 우대.")

	got := fields[models.FieldTechStack]
	want := map[string]bool{"java": true, "spring": true, "mysql": true}
	if len(got) != len(want) {
		t.Fatalf("tech stack = %v, want %v", got, want)
	}
	for _, tech := range got {
		if !want[tech] {
			t.Errorf("unexpected tech %q in %v", tech, got)
		}
	}
}

// "go" must match on word boundaries only.
func TestExtractTechStackWordBoundaries(t *testing.T) {
	fields := Extract("google 검색과 django 경험")
	for _, tech := range fields[models.FieldTechStack] {
		if tech == "go" {
			t.Errorf("matched 'go' inside another word: %v", fields[models.FieldTechStack])
		}
	}

	fields = Extract("go 언어 경험자")
	if !fields.Has(models.FieldTechStack) {
		t.Error("expected 'go' to match as a standalone word")
	}
}

func TestExtractExperience(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"경력 3년 이상인 분", "3년 이상"},
		{"신입도 지원 가능합니다", "신입"},
		{"경력무관으로 모십니다", "경력무관"},
	}

	for _, tt := range tests {
		fields := Extract(tt.input)
		got := fields[models.FieldExperience]
		if len(got) != 1 || !strings.Contains(got[0], tt.want) {
			t.Errorf("Extract(%q) experience = %v, want containing %q", tt.input, got, tt.want)
		}
	}
}

func TestExtractRequirementAndPreferenceSentences(t *testing.T) {
	fields := Extract("자격요건은 컴퓨터공학 전공입니다. 관련 자격증 보유자는 우대합니다.")

	if !fields.Has(models.FieldRequirements) {
		t.Error("expected a requirements entry")
	}
	if !fields.Has(models.FieldPreferences) {
		t.Error("expected a preferences entry")
	}
}

// Absence means absence: a field with no matching text has no entry at all,
// not an empty placeholder.
func TestExtractAbsentFieldsHaveNoEntry(t *testing.T) {
	fields := Extract("안녕하세요")

	if len(fields) != 0 {
		t.Errorf("Extract of casual text produced entries: %v", fields)
	}
	for name, values := range fields {
		if len(values) == 0 {
			t.Errorf("field %q present with empty value list", name)
		}
	}
}

func TestExtractHeadcountAndSalary(t *testing.T) {
	fields := Extract("3명을 연봉 4000만원 조건으로 모집")

	if got := fields.First(models.FieldHeadcount); got != "3" {
		t.Errorf("headcount = %q, want 3", got)
	}
	if got := fields.First(models.FieldSalary); got == "" {
		t.Error("expected a salary entry")
	}
}
