package session

import (
	"context"
	"sync"
	"time"
)

// Store keeps sessions keyed by the opaque id carried in the browser cookie.
// Put replaces the whole triple atomically, Clear removes it atomically, and
// Get returns the anonymous session for missing, partial or lapsed entries.
type Store interface {
	Put(ctx context.Context, sid string, sess Session) error
	Get(ctx context.Context, sid string) (Session, error)
	Clear(ctx context.Context, sid string) error
}

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

// MemoryStore is the in-process Store backend.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	stop    chan struct{}
	stopped sync.Once
}

// NewMemoryStore builds a memory backed store whose entries lapse after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put stores the session triple under sid.
func (s *MemoryStore) Put(_ context.Context, sid string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sid] = memoryEntry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// Get returns the session for sid, or the anonymous session when absent.
func (s *MemoryStore) Get(_ context.Context, sid string) (Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[sid]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return Session{}, nil
	}
	return entry.sess.Normalize(), nil
}

// Clear removes the session for sid. Clearing an absent session is a no-op.
func (s *MemoryStore) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}

// Close stops the background janitor.
func (s *MemoryStore) Close() {
	s.stopped.Do(func() { close(s.stop) })
}

func (s *MemoryStore) janitor() {
	interval := s.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for sid, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, sid)
				}
			}
			s.mu.Unlock()
		}
	}
}
