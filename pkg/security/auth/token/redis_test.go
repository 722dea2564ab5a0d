package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edukit/campus/pkg/component/redis"
)

// The constructor takes the redis component client, so the server wiring can
// hand over the same client it registers for health checks.
var _ Store = NewRedisStore((*redis.Client)(nil), "")

func TestNewRedisStoreKeyLayout(t *testing.T) {
	s := NewRedisStore(nil, "")
	assert.Equal(t, "session:token:abc", s.tokenKey("abc"))
	assert.Equal(t, "session:user:42", s.userKey(42))

	custom := NewRedisStore(nil, "campus:")
	assert.Equal(t, "campus:token:abc", custom.tokenKey("abc"))
	assert.Equal(t, "campus:user:7", custom.userKey(7))
}
