// Package access implements the verification and access-window logic of
// the bot: per-user access grants, one-time verification codes and the
// engine that ties them to the link shortener.
package access

import (
	"sync"
	"time"
)

// Store is the authoritative record of who currently holds an access
// window and until when. Expiry is checked lazily on read; expired
// entries are never purged, so the map grows for the lifetime of the
// process.
type Store struct {
	mu      sync.RWMutex
	expires map[int64]time.Time
	now     func() time.Time
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock builds a Store with an injected clock.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		expires: make(map[int64]time.Time),
		now:     now,
	}
}

// IsAuthorized reports whether userID holds a window that expires
// strictly after the current time.
func (s *Store) IsAuthorized(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiresAt, ok := s.expires[userID]
	return ok && expiresAt.After(s.now())
}

// Grant gives userID a window of d from now, replacing any existing
// window. Durations never stack.
func (s *Store) Grant(userID int64, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[userID] = s.now().Add(d)
}

// ResetAll discards every record. There is no undo.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires = make(map[int64]time.Time)
}
