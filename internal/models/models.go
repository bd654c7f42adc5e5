package models

// ClassificationType is the coarse kind of a classified chat message.
type ClassificationType string

const (
	TypeField    ClassificationType = "field"
	TypeQuestion ClassificationType = "question"
	TypeChat     ClassificationType = "chat"
	TypeUnknown  ClassificationType = "unknown"
)

// Classification is the result of keyword/pattern classification of one message.
// Confidence is a fixed constant per matching rule; ties between categories are
// broken by rule declaration order.
type Classification struct {
	Type       ClassificationType `json:"type"`
	Category   string             `json:"category"`
	Value      string             `json:"value,omitempty"`
	Confidence float64            `json:"confidence"`
}

// ContextScore is the weighted multi-category score deciding whether a passage
// reads like a job posting rather than an incidental mention of a recruitment word.
type ContextScore struct {
	TotalScore     float64            `json:"total_score"`
	CategoryScores map[string]float64 `json:"category_scores"`
	IsRecruitment  bool               `json:"is_recruitment"`
	Confidence     float64            `json:"confidence"`
	Details        ContextDetails     `json:"details"`
}

// ContextDetails carries diagnostic information about a context score. It is
// for tracing only and plays no part in the decision.
type ContextDetails struct {
	KeyIndicators []string `json:"key_indicators"`
	TextLength    int      `json:"text_length"`
	SentenceCount int      `json:"sentence_count"`
}

// Intent is the single classification of a chat turn that determines which
// handler processes it.
type Intent string

const (
	IntentRecruit        Intent = "recruit"
	IntentSearch         Intent = "search"
	IntentCalc           Intent = "calc"
	IntentDB             Intent = "db"
	IntentChat           Intent = "chat"
	IntentPageNavigation Intent = "page_navigation"
	IntentUnknown        Intent = "unknown"
	IntentAdmin          Intent = "admin"
)

// HistoryMessage is one prior turn of the conversation, passed in by the client.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound payload of the chat endpoint.
type ChatRequest struct {
	Message             string           `json:"message"`
	SessionID           string           `json:"session_id,omitempty"`
	ConversationHistory []HistoryMessage `json:"conversation_history,omitempty"`
}

// ChatResponse is the envelope returned for every chat turn.
type ChatResponse struct {
	Success         bool            `json:"success"`
	Response        string          `json:"response"`
	Intent          Intent          `json:"intent"`
	SessionID       string          `json:"session_id"`
	ExtractedFields ExtractedFields `json:"extracted_fields,omitempty"`
	Confidence      float64         `json:"confidence"`
}
