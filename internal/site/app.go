package site

import (
	"github.com/kart-io/logger"

	"github.com/edukit/campus/pkg/app"
)

const appName = "campus-api"

// NewApp creates the campus API application.
func NewApp() *app.App {
	opts := NewOptions()

	return app.NewApp(
		app.WithName(appName),
		app.WithShortDescription("Campus content management API"),
		app.WithDescription("campus-api serves a school website backend: public content\n"+
			"endpoints, a token-authenticated admin API, and a cookie-gated admin shell."),
		app.WithOptions(opts),
		app.WithRunFunc(func() error {
			return run(opts)
		}),
	)
}

func run(opts *Options) error {
	if err := opts.Log.Init(); err != nil {
		return err
	}
	logger.Global().Infow("Starting", "app", appName, "version", app.GetVersion(), "driver", opts.Driver)

	server, err := NewServer(opts)
	if err != nil {
		return err
	}
	return server.Run()
}
