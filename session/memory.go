package session

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"mailsift/models"
	"mailsift/utils"
)

// MemoryStore keeps sessions in a process-local map. Every Create sweeps
// entries older than the TTL before inserting, so stale sessions cannot
// outlive the next login. A process restart clears all sessions.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration

	now func() time.Time
}

// NewMemoryStore creates an in-memory store with the given session TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, token *oauth2.Token, user models.UserInfo) (string, error) {
	id, err := utils.GenerateSessionID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Evict expired sessions before admitting the new one
	s.sweepLocked()

	s.sessions[id] = &models.Session{
		ID:        id,
		Token:     token,
		User:      user,
		CreatedAt: s.now(),
	}
	return id, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) Sweep(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sweepLocked()
}

func (s *MemoryStore) sweepLocked() int {
	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
