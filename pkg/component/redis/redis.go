// Package redis provides a Redis storage client used for session tokens
// and caching.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/edukit/campus/pkg/component/storage"
	redisopts "github.com/edukit/campus/pkg/options/redis"
)

var _ storage.Client = (*Client)(nil)

// Client wraps a go-redis client and implements the storage.Client interface.
type Client struct {
	rdb  *goredis.Client
	opts *redisopts.Options
}

// New creates a Redis client and verifies the connection.
func New(opts *redisopts.Options) (*Client, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext creates a Redis client, using ctx for the initial ping.
func NewWithContext(ctx context.Context, opts *redisopts.Options) (*Client, error) {
	if opts == nil {
		return nil, storage.ErrInvalidConfig.WithMessage("redis options cannot be nil")
	}
	if opts.Host == "" {
		return nil, storage.ErrInvalidConfig.WithMessage("redis host is required")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password:     opts.Password,
		DB:           opts.Database,
		MaxRetries:   opts.MaxRetries,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolTimeout:  opts.PoolTimeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}

	return &Client{rdb: rdb, opts: opts}, nil
}

// Name returns the backend identifier.
func (c *Client) Name() string { return "redis" }

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Health returns a checker bound to this client.
func (c *Client) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return c.Ping(ctx)
	}
}

// RDB exposes the underlying go-redis client.
func (c *Client) RDB() *goredis.Client { return c.rdb }
