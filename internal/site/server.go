package site

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/edukit/campus/internal/site/biz"
	"github.com/edukit/campus/internal/site/router"
	"github.com/edukit/campus/internal/site/store"
	"github.com/edukit/campus/pkg/app"
	"github.com/edukit/campus/pkg/component/mysql"
	"github.com/edukit/campus/pkg/component/postgres"
	redisclient "github.com/edukit/campus/pkg/component/redis"
	"github.com/edukit/campus/pkg/component/sqlite"
	"github.com/edukit/campus/pkg/component/storage"
	"github.com/edukit/campus/pkg/security/auth/token"
	"github.com/edukit/campus/pkg/security/authz"
)

// Server is the assembled campus API server.
type Server struct {
	opts     *Options
	storage  *storage.Manager
	store    store.Factory
	sessions token.Store
	engine   *gin.Engine
}

// NewServer builds the server from completed options: connects the storage
// backends, migrates the schema, seeds the bootstrap data, and mounts the
// routes.
func NewServer(opts *Options) (*Server, error) {
	manager := storage.NewManager()

	db, err := openDatabase(opts, manager)
	if err != nil {
		return nil, err
	}

	factory := store.NewFactory(db)
	if err := factory.AutoMigrate(); err != nil {
		_ = manager.CloseAll()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	sessions, err := openSessionStore(opts, manager)
	if err != nil {
		_ = manager.CloseAll()
		return nil, err
	}

	authorizer, err := authz.NewGormAuthorizer(db)
	if err != nil {
		_ = manager.CloseAll()
		return nil, fmt.Errorf("init authorizer: %w", err)
	}
	if err := authorizer.SeedDefaultPolicies(); err != nil {
		_ = manager.CloseAll()
		return nil, fmt.Errorf("seed policies: %w", err)
	}

	if err := seedAdmin(opts, factory, authorizer); err != nil {
		_ = manager.CloseAll()
		return nil, err
	}

	gin.SetMode(opts.HTTP.Mode)
	engine := gin.New()
	router.Register(engine, router.Config{
		Store:      factory,
		Sessions:   sessions,
		Authorizer: authorizer,
		Session:    opts.Session,
		Storage:    manager,
		Version:    app.GetVersion(),
	})

	return &Server{
		opts:     opts,
		storage:  manager,
		store:    factory,
		sessions: sessions,
		engine:   engine,
	}, nil
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	watchConfig()

	srv := &http.Server{
		Addr:         s.opts.HTTP.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.opts.HTTP.ReadTimeout,
		WriteTimeout: s.opts.HTTP.WriteTimeout,
		IdleTimeout:  s.opts.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Global().Infow("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.close()
		return err
	case sig := <-quit:
		logger.Global().Infow("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Global().Errorw("Graceful shutdown failed", "error", err)
	}

	s.close()
	logger.Global().Infow("Server stopped")
	return nil
}

func (s *Server) close() {
	if err := s.sessions.Close(); err != nil {
		logger.Global().Warnw("Session store close failed", "error", err)
	}
	if err := s.storage.CloseAll(); err != nil {
		logger.Global().Warnw("Storage close failed", "error", err)
	}
}

// openDatabase connects the configured relational backend and registers it
// with the storage manager.
func openDatabase(opts *Options, manager *storage.Manager) (*gorm.DB, error) {
	switch opts.Driver {
	case "mysql":
		client, err := mysql.New(opts.MySQL)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		manager.MustRegister("mysql", client)
		return client.DB(), nil
	case "postgres":
		client, err := postgres.New(opts.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		manager.MustRegister("postgres", client)
		return client.DB(), nil
	case "sqlite":
		client, err := sqlite.New(opts.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		manager.MustRegister("sqlite", client)
		return client.DB(), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", opts.Driver)
	}
}

// openSessionStore builds the token store backend. The redis store survives
// process restarts; the memory store does not.
func openSessionStore(opts *Options, manager *storage.Manager) (token.Store, error) {
	switch opts.Session.Store {
	case "redis":
		client, err := redisclient.New(opts.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		manager.MustRegister("redis", client)
		return token.NewRedisStore(client, ""), nil
	default:
		return token.NewMemoryStore(), nil
	}
}

// seedAdmin creates the bootstrap administrator and grants it the admin
// role. Skipped when no password is configured.
func seedAdmin(opts *Options, factory store.Factory, authorizer *authz.Authorizer) error {
	if opts.Admin.Password == "" {
		return nil
	}

	users := biz.NewUserService(factory)
	created, err := users.EnsureAdmin(context.Background(), opts.Admin.Username, opts.Admin.Password)
	if err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}
	if created {
		logger.Global().Infow("Bootstrap administrator created", "username", opts.Admin.Username)
	}
	if err := authorizer.GrantRole("user:"+opts.Admin.Username, "role:admin"); err != nil {
		return fmt.Errorf("grant admin role: %w", err)
	}
	return nil
}

// watchConfig logs config file edits so operators get confirmation that a
// change was noticed. Most settings are read at startup only.
func watchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.Global().Infow("Config file changed", "file", e.Name, "op", e.Op.String())
	})
	viper.WatchConfig()
}
