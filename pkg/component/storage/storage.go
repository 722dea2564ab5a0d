// Package storage defines the common contract for storage backends and a
// registry that manages their lifecycle and health.
package storage

import (
	"context"
	"time"
)

// HealthChecker verifies that a backend is reachable.
type HealthChecker func() error

// Client is the base interface every storage backend implements.
type Client interface {
	// Name returns the backend type identifier, e.g. "mysql" or "redis".
	Name() string

	// Ping checks connectivity to the backend.
	Ping(ctx context.Context) error

	// Close releases the backend connection. Safe to call more than once.
	Close() error

	// Health returns a checker bound to this client.
	Health() HealthChecker
}

// HealthStatus is the result of a single health check.
type HealthStatus struct {
	Name    string        `json:"name"`
	Healthy bool          `json:"healthy"`
	Latency time.Duration `json:"latency"`
	Error   error         `json:"error,omitempty"`
}
