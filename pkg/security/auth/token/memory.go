package token

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store. Suitable for single-instance
// deployments and tests; distributed setups should use RedisStore.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session        // token -> session
	byUser   map[uint]map[string]struct{} // user -> live tokens

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// MemoryStoreOption is a functional option for MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired sessions are swept.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.cleanupInterval = d
	}
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		sessions:        make(map[string]*Session),
		byUser:          make(map[uint]map[string]struct{}),
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.cleanup()

	return s
}

// Issue creates a session for the user, revoking all previous sessions of
// the same user under one lock acquisition.
func (s *MemoryStore) Issue(ctx context.Context, userID uint, ttl time.Duration) (*Session, error) {
	now := time.Now()
	session := &Session{
		Token:     NewToken(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for tok := range s.byUser[userID] {
		delete(s.sessions, tok)
	}
	s.byUser[userID] = map[string]struct{}{session.Token: {}}
	s.sessions[session.Token] = session

	return session, nil
}

// Validate resolves a token. Expired sessions are removed lazily.
func (s *MemoryStore) Validate(ctx context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrTokenInvalid
	}
	if session.Expired(time.Now()) {
		s.removeLocked(token)
		return nil, ErrTokenExpired
	}

	clone := *session
	return &clone, nil
}

// Revoke removes a session; unknown tokens are a no-op.
func (s *MemoryStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(token)
	return nil
}

// RevokeAll removes every session belonging to the user.
func (s *MemoryStore) RevokeAll(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for tok := range s.byUser[userID] {
		delete(s.sessions, tok)
	}
	delete(s.byUser, userID)
	return nil
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

func (s *MemoryStore) removeLocked(token string) {
	session, ok := s.sessions[token]
	if !ok {
		return
	}
	delete(s.sessions, token)
	if live, ok := s.byUser[session.UserID]; ok {
		delete(live, token)
		if len(live) == 0 {
			delete(s.byUser, session.UserID)
		}
	}
}

// cleanup periodically sweeps expired sessions.
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for tok, session := range s.sessions {
				if session.Expired(now) {
					s.removeLocked(tok)
				}
			}
			s.mu.Unlock()
		case <-s.stopCleanup:
			return
		}
	}
}
