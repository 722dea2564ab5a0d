// Package site wires the campus API application together: configuration,
// storage backends, session store, authorization, and the HTTP server.
package site

import (
	"fmt"

	"github.com/edukit/campus/pkg/app"
	loggeropts "github.com/edukit/campus/pkg/options/logger"
	mysqlopts "github.com/edukit/campus/pkg/options/mysql"
	pgopts "github.com/edukit/campus/pkg/options/postgres"
	redisopts "github.com/edukit/campus/pkg/options/redis"
	httpopts "github.com/edukit/campus/pkg/options/server/http"
	sessionopts "github.com/edukit/campus/pkg/options/session"
	sqliteopts "github.com/edukit/campus/pkg/options/sqlite"
)

// Options aggregates the full configuration of the campus API server.
type Options struct {
	// Driver selects the relational backend (mysql|postgres|sqlite).
	Driver string `json:"driver" mapstructure:"driver"`

	HTTP     *httpopts.Options    `json:"http" mapstructure:"http"`
	MySQL    *mysqlopts.Options   `json:"mysql" mapstructure:"mysql"`
	Postgres *pgopts.Options      `json:"postgres" mapstructure:"postgres"`
	SQLite   *sqliteopts.Options  `json:"sqlite" mapstructure:"sqlite"`
	Redis    *redisopts.Options   `json:"redis" mapstructure:"redis"`
	Session  *sessionopts.Options `json:"session" mapstructure:"session"`
	Log      *loggeropts.Options  `json:"log" mapstructure:"log"`

	// Admin seeds the bootstrap administrator account on startup.
	Admin AdminOptions `json:"admin" mapstructure:"admin"`
}

// AdminOptions configures the bootstrap administrator.
type AdminOptions struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"-" mapstructure:"password"`
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		Driver:   "sqlite",
		HTTP:     httpopts.NewOptions(),
		MySQL:    mysqlopts.NewOptions(),
		Postgres: pgopts.NewOptions(),
		SQLite:   sqliteopts.NewOptions(),
		Redis:    redisopts.NewOptions(),
		Session:  sessionopts.NewOptions(),
		Log:      loggeropts.NewOptions(),
		Admin: AdminOptions{
			Username: "admin",
		},
	}
}

// Flags returns the named flag sets grouped per concern.
func (o *Options) Flags() app.NamedFlagSets {
	var nfs app.NamedFlagSets

	fs := nfs.FlagSet("server")
	fs.StringVar(&o.Driver, "driver", o.Driver, "Relational backend (mysql|postgres|sqlite).")
	fs.StringVar(&o.Admin.Username, "admin.username", o.Admin.Username, "Bootstrap administrator username.")
	fs.StringVar(&o.Admin.Password, "admin.password", o.Admin.Password, "Bootstrap administrator password. Empty skips seeding.")
	o.HTTP.AddFlags(fs)

	o.MySQL.AddFlags(nfs.FlagSet("mysql"))
	o.Postgres.AddFlags(nfs.FlagSet("postgres"))
	o.SQLite.AddFlags(nfs.FlagSet("sqlite"))
	o.Redis.AddFlags(nfs.FlagSet("redis"))
	o.Session.AddFlags(nfs.FlagSet("session"))
	o.Log.AddFlags(nfs.FlagSet("log"))

	return nfs
}

// Validate checks the aggregated options.
func (o *Options) Validate() error {
	switch o.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("driver must be mysql, postgres or sqlite, got %q", o.Driver)
	}

	var errs []error
	errs = append(errs, o.HTTP.Validate()...)
	errs = append(errs, o.Session.Validate()...)
	switch o.Driver {
	case "mysql":
		errs = append(errs, o.MySQL.Validate()...)
	case "postgres":
		errs = append(errs, o.Postgres.Validate()...)
	case "sqlite":
		errs = append(errs, o.SQLite.Validate()...)
	}
	if o.Session.Store == "redis" {
		errs = append(errs, o.Redis.Validate()...)
	}
	if err := o.Log.Validate(); err != nil {
		errs = append(errs, err)
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Complete fills in derived defaults.
func (o *Options) Complete() error {
	return o.Log.Complete()
}
