// Package postgres provides a PostgreSQL storage client built on GORM.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/component/storage"
	pgopts "github.com/edukit/campus/pkg/options/postgres"
)

var _ storage.Client = (*Client)(nil)

// Client wraps gorm.DB and implements the storage.Client interface.
type Client struct {
	db   *gorm.DB
	opts *pgopts.Options
}

// BuildDSN creates a PostgreSQL key=value DSN from the options. The password
// is quoted so spaces or quotes cannot break DSN parsing.
func BuildDSN(opts *pgopts.Options) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		opts.Host,
		opts.Port,
		opts.Username,
		escapeValue(opts.Password),
		opts.Database,
		opts.SSLMode,
	)
}

// escapeValue quotes a DSN value when it contains characters that would
// break the space-separated key=value format.
func escapeValue(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " '\\") {
		return value
	}
	escaped := strings.ReplaceAll(value, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")
	return "'" + escaped + "'"
}

// New creates a PostgreSQL client and verifies the connection.
func New(opts *pgopts.Options) (*Client, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext creates a PostgreSQL client, using ctx for the initial ping.
func NewWithContext(ctx context.Context, opts *pgopts.Options) (*Client, error) {
	if opts == nil {
		return nil, storage.ErrInvalidConfig.WithMessage("postgres options cannot be nil")
	}
	if opts.Host == "" || opts.Database == "" {
		return nil, storage.ErrInvalidConfig.WithMessage("postgres host and database are required")
	}

	db, err := gorm.Open(pgdriver.Open(BuildDSN(opts)), &gorm.Config{
		Logger: storage.NewGormLogger(opts.LogLevel),
	})
	if err != nil {
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}
	if opts.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
	}
	if opts.MaxOpenConnections > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
	}
	if opts.MaxConnectionLifeTime > 0 {
		sqlDB.SetConnMaxLifetime(opts.MaxConnectionLifeTime)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, storage.ErrConnectionFailed.WithCause(err)
	}

	return &Client{db: db, opts: opts}, nil
}

// Name returns the backend identifier.
func (c *Client) Name() string { return "postgres" }

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the connection pool.
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
