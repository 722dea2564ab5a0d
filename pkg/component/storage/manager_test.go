package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	name    string
	pingErr error
	closed  bool
}

func (f *fakeClient) Name() string               { return f.name }
func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
func (f *fakeClient) Close() error               { f.closed = true; return nil }
func (f *fakeClient) Health() HealthChecker      { return func() error { return f.pingErr } }

func TestManagerRegisterAndGet(t *testing.T) {
	mgr := NewManager()
	c := &fakeClient{name: "sqlite"}

	require.NoError(t, mgr.Register("primary", c))
	assert.True(t, mgr.Has("primary"))

	got, err := mgr.Get("primary")
	require.NoError(t, err)
	assert.Equal(t, c, got)

	err = mgr.Register("primary", &fakeClient{name: "other"})
	assert.ErrorIs(t, err, ErrClientAlreadyExists)

	_, err = mgr.Get("missing")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestManagerRejectsInvalidRegistrations(t *testing.T) {
	mgr := NewManager()

	assert.ErrorIs(t, mgr.Register("", &fakeClient{}), ErrInvalidConfig)
	assert.ErrorIs(t, mgr.Register("x", nil), ErrInvalidConfig)
}

func TestManagerHealthCheckAll(t *testing.T) {
	mgr := NewManager()
	mgr.MustRegister("healthy", &fakeClient{name: "sqlite"})
	mgr.MustRegister("broken", &fakeClient{name: "redis", pingErr: errors.New("connection refused")})

	statuses := mgr.HealthCheckAll(context.Background())
	require.Len(t, statuses, 2)
	assert.True(t, statuses["healthy"].Healthy)
	assert.False(t, statuses["broken"].Healthy)
	assert.Error(t, statuses["broken"].Error)
}

func TestManagerCloseAll(t *testing.T) {
	mgr := NewManager()
	a := &fakeClient{name: "a"}
	b := &fakeClient{name: "b"}
	mgr.MustRegister("a", a)
	mgr.MustRegister("b", b)

	require.NoError(t, mgr.CloseAll())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.False(t, mgr.Has("a"))
}
