package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dayoon/recruit-bot/internal/models"
)

type MemoryStorage struct {
	mu         sync.RWMutex
	applicants []*models.Applicant
	turns      []*models.ChatTurn
	accepted   map[string][]string
	nextID     int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		accepted: make(map[string][]string),
		nextID:   1,
	}
}

func (s *MemoryStorage) SaveApplicant(ctx context.Context, applicant *models.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	applicant.ID = s.nextID
	s.nextID++
	if applicant.CreatedAt.IsZero() {
		applicant.CreatedAt = time.Now()
	}
	s.applicants = append(s.applicants, applicant)
	return nil
}

func (s *MemoryStorage) QueryApplicants(ctx context.Context, filter models.ApplicantFilter) ([]*models.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.Applicant
	for _, a := range s.applicants {
		if !matchesFilter(a, filter) {
			continue
		}
		result = append(result, a)
		if filter.Limit > 0 && len(result) >= filter.Limit {
			break
		}
	}
	return result, nil
}

func matchesFilter(a *models.Applicant, filter models.ApplicantFilter) bool {
	if filter.Department != "" && !strings.Contains(a.Department, filter.Department) {
		return false
	}
	if filter.Position != "" && !strings.Contains(a.Position, filter.Position) {
		return false
	}
	if filter.Keyword != "" {
		kw := strings.ToLower(filter.Keyword)
		if !strings.Contains(strings.ToLower(a.Name), kw) &&
			!strings.Contains(strings.ToLower(a.Position), kw) &&
			!containsFold(a.TechStack, kw) {
			return false
		}
	}
	return true
}

func containsFold(values []string, lowered string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), lowered) {
			return true
		}
	}
	return false
}

func (s *MemoryStorage) SaveChatTurn(ctx context.Context, turn *models.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn.ID = s.nextID
	s.nextID++
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now()
	}
	s.turns = append(s.turns, turn)
	return nil
}

// ChatTurns returns the session's turns in the order they were routed.
func (s *MemoryStorage) ChatTurns(ctx context.Context, sessionID string) ([]*models.ChatTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*models.ChatTurn
	for _, turn := range s.turns {
		if turn.SessionID == sessionID {
			result = append(result, turn)
		}
	}
	return result, nil
}

// AcceptedValues returns up to limit values for the field, most recent first.
func (s *MemoryStorage) AcceptedValues(ctx context.Context, field string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := s.accepted[field]
	var result []string
	for i := len(values) - 1; i >= 0 && (limit <= 0 || len(result) < limit); i-- {
		result = append(result, values[i])
	}
	return result, nil
}

func (s *MemoryStorage) RecordAccepted(ctx context.Context, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.accepted[field] {
		if v == value {
			return nil
		}
	}
	s.accepted[field] = append(s.accepted[field], value)
	return nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
