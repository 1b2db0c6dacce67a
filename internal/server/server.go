// Package server assembles the task manager from its configuration and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmanager/config"
	"github.com/ncobase/taskmanager/internal/data"
	"github.com/ncobase/taskmanager/internal/handler"
	"github.com/ncobase/taskmanager/internal/middleware"
	"github.com/ncobase/taskmanager/internal/service"
	"github.com/ncobase/taskmanager/logging/logger"
	"github.com/ncobase/taskmanager/logging/observes"
	"github.com/ncobase/taskmanager/net/resp"
	"github.com/ncobase/taskmanager/security/jwt"
	"github.com/ncobase/taskmanager/storage"
	"github.com/ncobase/taskmanager/version"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 30 * time.Second

// Options tune how the App is assembled.
type Options struct {
	// Memory keeps all data in process instead of MongoDB.
	Memory bool
	// Logger overrides the process logger.
	Logger *logger.Logger
}

// App represents the main application.
type App struct {
	config  *config.Config
	logger  *logger.Logger
	data    *data.Data
	handler *handler.Handler
	engine  *gin.Engine
	server  *http.Server
}

// NewApp creates a new application instance with manual dependency injection.
func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	validate := cfg.Validate
	if opts.Memory {
		validate = cfg.ValidateAuth
	}
	if err := validate(); err != nil {
		return nil, nil, err
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	log := opts.Logger
	if log == nil {
		closeLogger, err := logger.New(cfg.Logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create logger: %w", err)
		}
		cleanups = append(cleanups, closeLogger)
		log = logger.StdLogger()
	}

	if s := sentryConfig(cfg); s != nil {
		flush, err := observes.NewSentry(&observes.SentryOptions{
			Dsn:         s.Endpoint,
			Name:        cfg.AppName,
			Release:     version.Version,
			Environment: s.Environment,
			SampleRate:  s.SampleRate,
		})
		if err != nil {
			log.Warn(ctx, "Sentry disabled", "error", err)
		} else {
			log.AddHook(observes.NewSentryHook())
			cleanups = append(cleanups, flush)
		}
	}

	var d *data.Data
	if opts.Memory {
		d = data.NewMemory()
		log.Warn(ctx, "Using in-memory store, data is lost on exit")
	} else {
		var err error
		if d, err = data.New(ctx, cfg.Data, log); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to create data layer: %w", err)
		}
	}
	cleanups = append(cleanups, func() {
		if err := d.Close(); err != nil {
			log.Error(context.Background(), "failed to close data layer", "error", err)
		}
	})

	files, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create storage: %w", err)
	}

	svc := service.New(service.Options{
		Data:             d,
		Logger:           log,
		Tokens:           jwt.NewTokenManager(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Expire),
		AdminInviteToken: cfg.Auth.AdminInviteToken,
		Storage:          files,
		PublicPath:       cfg.Storage.PublicPath,
		MaxUploadSize:    cfg.Storage.MaxSize,
		CacheTTL:         cfg.Data.Redis.CacheTTL,
	})

	app := &App{
		config:  cfg,
		logger:  log,
		data:    d,
		handler: handler.NewHandler(svc, log),
	}
	app.engine = app.router()

	return app, cleanup, nil
}

func sentryConfig(cfg *config.Config) *config.Sentry {
	if cfg.Observes == nil || cfg.Observes.Sentry == nil || cfg.Observes.Sentry.Endpoint == "" {
		return nil
	}
	return cfg.Observes.Sentry
}

// Handler returns the HTTP handler of the application.
func (a *App) Handler() http.Handler {
	return a.engine
}

func (a *App) router() *gin.Engine {
	if a.config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Trace())
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.CORS(a.config.Frontend.ClientURL))

	a.handler.RegisterRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		resp.Success(c.Writer, map[string]any{
			"status":     "healthy",
			"version":    version.Version,
			"components": a.data.Health(c.Request.Context()),
		})
	})
	r.Static(a.config.Storage.PublicPath, a.config.Storage.Bucket)

	return r
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	config.Watch(a.reload)

	addr := a.config.Addr()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(context.Background(), "Starting server", "addr", addr, "version", version.Version)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			a.logger.Error(context.Background(), "Server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info(context.Background(), "Shutting down server...")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(sctx); err != nil {
		a.logger.Error(sctx, "Server forced to shutdown", "error", err)
		return err
	}

	a.logger.Info(context.Background(), "Server exited")
	return nil
}

// reload applies the settings that can change without a restart.
func (a *App) reload(cfg *config.Config) {
	if cfg.Logger != nil && cfg.Logger.Level > 0 {
		a.logger.SetLevel(logrus.Level(cfg.Logger.Level))
	}
	a.logger.Info(context.Background(), "Configuration reloaded")
}
