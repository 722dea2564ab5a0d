package token

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(WithCleanupInterval(time.Hour))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIssueAndValidate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session, err := s.Issue(ctx, 1, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, uint(1), session.UserID)
	assert.True(t, session.ExpiresAt.After(session.IssuedAt))

	got, err := s.Validate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Token, got.Token)
	assert.Equal(t, uint(1), got.UserID)
}

func TestIssueRevokesPreviousSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Issue(ctx, 1, time.Hour)
	require.NoError(t, err)

	second, err := s.Issue(ctx, 1, time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	// The older token dies the moment the newer one is issued.
	_, err = s.Validate(ctx, first.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.Validate(ctx, second.Token)
	assert.NoError(t, err)
}

func TestIssueDoesNotTouchOtherUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice, err := s.Issue(ctx, 1, time.Hour)
	require.NoError(t, err)
	_, err = s.Issue(ctx, 2, time.Hour)
	require.NoError(t, err)

	_, err = s.Validate(ctx, alice.Token)
	assert.NoError(t, err)
}

func TestRevokeIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session, err := s.Issue(ctx, 1, time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, session.Token))
	_, err = s.Validate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Revoking again, or revoking garbage, still succeeds.
	assert.NoError(t, s.Revoke(ctx, session.Token))
	assert.NoError(t, s.Revoke(ctx, "no-such-token"))
}

func TestRevokeAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session, err := s.Issue(ctx, 1, time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.RevokeAll(ctx, 1))
	_, err = s.Validate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	assert.NoError(t, s.RevokeAll(ctx, 1))
}

func TestValidateExpiredSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session, err := s.Issue(ctx, 1, -time.Minute)
	require.NoError(t, err)

	_, err = s.Validate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// The lapsed session is gone; a second lookup sees an unknown token.
	_, err = s.Validate(ctx, session.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestConcurrentIssueLeavesOneLiveSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 32
	tokens := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session, err := s.Issue(ctx, 1, time.Hour)
			if err == nil {
				tokens[i] = session.Token
			}
		}(i)
	}
	wg.Wait()

	live := 0
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, err := s.Validate(ctx, tok); err == nil {
			live++
		}
	}
	assert.Equal(t, 1, live)
}

func TestNewTokenShape(t *testing.T) {
	a := NewToken()
	b := NewToken()

	assert.NotEqual(t, a, b)
	assert.Contains(t, a, ".")
	// ULID prefix is 26 characters.
	assert.Len(t, a[:26], 26)
}
