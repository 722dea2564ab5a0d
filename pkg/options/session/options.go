// Package session provides session and token configuration options.
package session

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/edukit/campus/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains session and bearer token configuration.
type Options struct {
	// Store selects the token store backend (memory|redis).
	Store string `json:"store" mapstructure:"store"`
	// TTL is how long an issued token remains valid. Refresh restarts it.
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`
	// CookieName is the cookie mirroring the bearer token for the admin pages.
	CookieName string `json:"cookie-name" mapstructure:"cookie-name"`
	// CookieSecure marks the session cookie Secure.
	CookieSecure bool `json:"cookie-secure" mapstructure:"cookie-secure"`
	// LoginPath is where the navigation gate redirects unauthenticated traffic.
	LoginPath string `json:"login-path" mapstructure:"login-path"`
}

// NewOptions creates a new Options with default values.
func NewOptions() *Options {
	return &Options{
		Store:        "memory",
		TTL:          24 * time.Hour,
		CookieName:   "campus_session",
		CookieSecure: false,
		LoginPath:    "/admin/login",
	}
}

// Validate validates the session options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	switch o.Store {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("session.store must be memory or redis, got %q", o.Store))
	}
	if o.TTL <= 0 {
		errs = append(errs, fmt.Errorf("session.ttl must be positive"))
	}
	if o.CookieName == "" {
		errs = append(errs, fmt.Errorf("session.cookie-name cannot be empty"))
	}
	return errs
}

// AddFlags adds flags for session options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.StringVar(&o.Store, p+"session.store", o.Store, "Token store backend (memory|redis)")
	fs.DurationVar(&o.TTL, p+"session.ttl", o.TTL, "Bearer token lifetime")
	fs.StringVar(&o.CookieName, p+"session.cookie-name", o.CookieName, "Session cookie name for the admin pages")
	fs.BoolVar(&o.CookieSecure, p+"session.cookie-secure", o.CookieSecure, "Mark the session cookie Secure")
	fs.StringVar(&o.LoginPath, p+"session.login-path", o.LoginPath, "Login page path for the navigation gate")
}
