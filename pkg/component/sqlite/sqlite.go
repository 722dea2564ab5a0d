// Package sqlite provides a SQLite storage client built on GORM. It backs
// local development and tests; ":memory:" opens a throwaway database.
package sqlite

import (
	"context"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/component/storage"
	sqliteopts "github.com/edukit/campus/pkg/options/sqlite"
)

var _ storage.Client = (*Client)(nil)

// Client wraps gorm.DB and implements the storage.Client interface.
type Client struct {
	db   *gorm.DB
	opts *sqliteopts.Options
}

// New creates a SQLite client and verifies the connection.
func New(opts *sqliteopts.Options) (*Client, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext creates a SQLite client, using ctx for the initial ping.
func NewWithContext(ctx context.Context, opts *sqliteopts.Options) (*Client, error) {
	if opts == nil {
		return nil, storage.ErrInvalidConfig.WithMessage("sqlite options cannot be nil")
	}
	if opts.Path == "" {
		return nil, storage.ErrInvalidConfig.WithMessage("sqlite path is required")
	}

	db, err := gorm.Open(sqlite.Open(opts.Path), &gorm.Config{
		Logger: storage.NewGormLogger(opts.LogLevel),
	})
	if err != nil {
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}
	// SQLite serializes writers; a single connection avoids table locking
	// errors under concurrent access.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}

	return &Client{db: db, opts: opts}, nil
}

// Name returns the backend identifier.
func (c *Client) Name() string { return "sqlite" }

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health returns a checker bound to this client.
func (c *Client) Health() storage.HealthChecker {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return c.Ping(ctx)
	}
}

// DB exposes the underlying gorm.DB.
func (c *Client) DB() *gorm.DB { return c.db }
