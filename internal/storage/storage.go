package storage

import (
	"context"

	"github.com/dayoon/recruit-bot/internal/models"
)

// RecordStore is the document-store capability consumed by the db-intent
// handler and the chat-turn persistence path.
type RecordStore interface {
	SaveApplicant(ctx context.Context, applicant *models.Applicant) error
	QueryApplicants(ctx context.Context, filter models.ApplicantFilter) ([]*models.Applicant, error)
	SaveChatTurn(ctx context.Context, turn *models.ChatTurn) error
	ChatTurns(ctx context.Context, sessionID string) ([]*models.ChatTurn, error)
	Close() error
}

// SuggestionHistory is the read/write store of previously accepted field
// values, used as a suggestion source.
type SuggestionHistory interface {
	AcceptedValues(ctx context.Context, field string, limit int) ([]string, error)
	RecordAccepted(ctx context.Context, field, value string) error
}

// Storage bundles everything the assistant persists.
type Storage interface {
	RecordStore
	SuggestionHistory
}
