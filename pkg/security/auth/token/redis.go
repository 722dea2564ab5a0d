package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/edukit/campus/pkg/component/redis"
	"github.com/edukit/campus/pkg/utils/json"
)

// RedisStore is a Redis-backed Store for distributed deployments. A session
// lives under two keys: the token key holds the serialized session, and the
// user key points at the user's current token so issuing can revoke the
// predecessor. Both carry the session TTL so Redis expires them naturally.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// issueScript atomically replaces a user's session: the previous token key
// is deleted before the new pair is written, so two concurrent logins can
// never leave both tokens live.
var issueScript = goredis.NewScript(`
local old = redis.call('GET', KEYS[1])
if old then
  redis.call('DEL', ARGV[4] .. old)
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
redis.call('SET', ARGV[4] .. ARGV[1], ARGV[3], 'PX', ARGV[2])
return 1
`)

// revokeScript deletes a token key and clears the user pointer only when it
// still references this token, leaving a newer session untouched.
var revokeScript = goredis.NewScript(`
local data = redis.call('GET', KEYS[1])
if not data then
  return 0
end
redis.call('DEL', KEYS[1])
local current = redis.call('GET', KEYS[2])
if current == ARGV[1] then
  redis.call('DEL', KEYS[2])
end
return 1
`)

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) tokenKey(token string) string {
	return s.prefix + "token:" + token
}

func (s *RedisStore) userKey(userID uint) string {
	return fmt.Sprintf("%suser:%d", s.prefix, userID)
}

// Issue creates a session, atomically revoking the user's previous one.
func (s *RedisStore) Issue(ctx context.Context, userID uint, ttl time.Duration) (*Session, error) {
	now := time.Now()
	session := &Session{
		Token:     NewToken(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	err = issueScript.Run(ctx, s.client.RDB(),
		[]string{s.userKey(userID)},
		session.Token,
		ttl.Milliseconds(),
		string(data),
		s.prefix+"token:",
	).Err()
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	return session, nil
}

// Validate resolves a token to its session.
func (s *RedisStore) Validate(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.RDB().Get(ctx, s.tokenKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var session Session
	if err := json.UnmarshalString(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	// Redis TTL normally expires first; the stored timestamp is the
	// authority when clocks disagree.
	if session.Expired(time.Now()) {
		_ = s.Revoke(ctx, token)
		return nil, ErrTokenExpired
	}

	return &session, nil
}

// Revoke removes a session; unknown tokens are a no-op.
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	data, err := s.client.RDB().Get(ctx, s.tokenKey(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup session: %w", err)
	}

	var session Session
	if err := json.UnmarshalString(data, &session); err != nil {
		// Unreadable entry; drop the token key regardless.
		return s.client.RDB().Del(ctx, s.tokenKey(token)).Err()
	}

	return revokeScript.Run(ctx, s.client.RDB(),
		[]string{s.tokenKey(token), s.userKey(session.UserID)},
		token,
	).Err()
}

// RevokeAll removes the user's current session.
func (s *RedisStore) RevokeAll(ctx context.Context, userID uint) error {
	current, err := s.client.RDB().Get(ctx, s.userKey(userID)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lookup current session: %w", err)
	}

	return s.client.RDB().Del(ctx, s.tokenKey(current), s.userKey(userID)).Err()
}

// Close is a no-op; the Redis client is managed by its component.
func (s *RedisStore) Close() error {
	return nil
}
