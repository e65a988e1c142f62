package session

import (
	"context"
	"sync"
	"time"

	"github.com/roamio/tour-booking/internal/utils"
)

type memoryEntry struct {
	identity  Identity
	expiresAt time.Time
}

// MemoryStore is an in-process Store used in tests and when no Redis
// server is reachable.  Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Create(ctx context.Context, id Identity, ttl time.Duration) (string, error) {
	sid, err := utils.NewSessionID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[sid] = memoryEntry{identity: id, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return sid, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (Identity, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return Identity{}, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return Identity{}, ErrNotFound
	}
	return entry.identity, nil
}

func (s *MemoryStore) Destroy(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
