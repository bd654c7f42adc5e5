package models

// ExtractedFields maps a recruitment field name to the values found in the
// text. A field with no matching text is absent from the map, never present
// with an empty value.
type ExtractedFields map[string][]string

// Field names produced by the extractor.
const (
	FieldPosition     = "position"
	FieldTechStack    = "tech_stack"
	FieldExperience   = "experience"
	FieldRequirements = "requirements"
	FieldPreferences  = "preferences"
	FieldDepartment   = "department"
	FieldHeadcount    = "headcount"
	FieldSalary       = "salary"
	FieldLocation     = "location"
	FieldDeadline     = "deadline"
)

// Has reports whether any value was extracted for the field.
func (f ExtractedFields) Has(name string) bool {
	return len(f[name]) > 0
}

// First returns the first extracted value for the field, or "".
func (f ExtractedFields) First(name string) string {
	if vs := f[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// SuggestionSource tags where a candidate completion came from.
type SuggestionSource string

const (
	SourcePattern SuggestionSource = "pattern"
	SourceHistory SuggestionSource = "history"
	SourceLLM     SuggestionSource = "llm"
)

// Suggestion is one candidate completion for a missing field.
type Suggestion struct {
	Value  string           `json:"value"`
	Source SuggestionSource `json:"source"`
}

// FieldSuggestions describes one missing or weak field: what was found (possibly
// nothing) and the ordered candidate completions.
type FieldSuggestions struct {
	Extracted   []string     `json:"extracted,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// SuggestionSet maps field names to their candidate completions.
type SuggestionSet map[string]FieldSuggestions
