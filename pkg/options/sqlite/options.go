// Package sqlite provides SQLite configuration options.
package sqlite

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/edukit/campus/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options defines configuration options for SQLite.
type Options struct {
	// Path is the database file path. ":memory:" opens an in-memory database.
	Path     string `json:"path" mapstructure:"path"`
	LogLevel int    `json:"log-level" mapstructure:"log-level"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Path:     "campus.db",
		LogLevel: 1,
	}
}

// Validate checks if the options are valid.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Path == "" {
		errs = append(errs, fmt.Errorf("sqlite.path cannot be empty"))
	}
	return errs
}

// AddFlags adds flags for SQLite options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	p := options.Join(prefixes...)
	fs.StringVar(&o.Path, p+"sqlite.path", o.Path, "SQLite database file path (\":memory:\" for in-memory)")
	fs.IntVar(&o.LogLevel, p+"sqlite.log-level", o.LogLevel, "SQLite log level (1=silent 2=error 3=warn 4=info)")
}
