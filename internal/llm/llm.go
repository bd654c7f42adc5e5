package llm

import (
	"context"

	"github.com/dayoon/recruit-bot/internal/models"
)

// TextGenerator is the capability the assistant needs from an LLM provider.
// Implementations may fail (network, timeout, quota); callers degrade to a
// static response instead of propagating the error to the user.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, systemMessage string, history []models.HistoryMessage) (string, error)
}
