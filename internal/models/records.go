package models

import "time"

// Applicant is a stored applicant record, queried by the db-intent handler.
type Applicant struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Experience string    `json:"experience"`
	TechStack  []string  `json:"tech_stack"`
	CreatedAt  time.Time `json:"created_at"`
}

// ApplicantFilter selects applicants by optional criteria; zero values match all.
type ApplicantFilter struct {
	Department string
	Position   string
	Keyword    string
	Limit      int
}

// ChatTurn is one routed chat turn, persisted for later inspection.
type ChatTurn struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Message    string    `json:"message"`
	Intent     Intent    `json:"intent"`
	Response   string    `json:"response"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
