// Package mysql provides a MySQL storage client built on GORM.
package mysql

import (
	"context"
	"fmt"
	"net/url"
	"time"

	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/edukit/campus/pkg/component/storage"
	mysqlopts "github.com/edukit/campus/pkg/options/mysql"
)

var _ storage.Client = (*Client)(nil)

// Client wraps gorm.DB and implements the storage.Client interface.
type Client struct {
	db   *gorm.DB
	opts *mysqlopts.Options
}

// BuildDSN creates a MySQL DSN from the options. The password is escaped so
// special characters cannot break DSN parsing.
func BuildDSN(opts *mysqlopts.Options) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		opts.Username,
		url.QueryEscape(opts.Password),
		opts.Host,
		opts.Port,
		opts.Database,
	)
}

// New creates a MySQL client and verifies the connection.
func New(opts *mysqlopts.Options) (*Client, error) {
	return NewWithContext(context.Background(), opts)
}

// NewWithContext creates a MySQL client, using ctx for the initial ping.
func NewWithContext(ctx context.Context, opts *mysqlopts.Options) (*Client, error) {
	if opts == nil {
		return nil, storage.ErrInvalidConfig.WithMessage("mysql options cannot be nil")
	}
	if opts.Host == "" || opts.Database == "" {
		return nil, storage.ErrInvalidConfig.WithMessage("mysql host and database are required")
	}

	db, err := gorm.Open(mysqldriver.Open(BuildDSN(opts)), &gorm.Config{
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
func (c *Client) Name() string { return "mysql" }

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
