package session

import (
	"strings"
	"sync"
)

// Toggle commands matched exactly against trimmed, lower-cased input.
const (
	toggleOn  = "admin:on"
	toggleOff = "admin:off"
)

// Confirmation strings returned on a successful toggle.
const (
	enabledResponse  = "관리자 모드가 활성화되었습니다."
	disabledResponse = "관리자 모드가 해제되었습니다."
)

// Store tracks which session identifiers are currently in admin mode. This is
// a demo mechanism, not a security boundary: there is no auth check and no
// expiry beyond process lifetime.
type Store interface {
	Contains(sessionID string) bool
	Add(sessionID string)
	Remove(sessionID string)
}

// MemoryStore is a concurrency-safe in-memory Store. Multiple requests may
// toggle admin mode at the same time.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]struct{})}
}

func (s *MemoryStore) Contains(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[sessionID]
	return ok
}

func (s *MemoryStore) Add(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = struct{}{}
}

func (s *MemoryStore) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// HandleToggle applies an admin toggle command to the store. It returns the
// confirmation string on a match and "" for any other input.
func HandleToggle(store Store, sessionID, input string) string {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case toggleOn:
		store.Add(sessionID)
		return enabledResponse
	case toggleOff:
		store.Remove(sessionID)
		return disabledResponse
	}
	return ""
}

// IsAdmin reports whether the session is currently in admin mode.
func IsAdmin(store Store, sessionID string) bool {
	return store.Contains(sessionID)
}
