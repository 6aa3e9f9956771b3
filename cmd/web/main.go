// Package main is the entrypoint for the user management view server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/usermgmt/usermgmt/internal/config"
	"github.com/usermgmt/usermgmt/internal/handler"
	"github.com/usermgmt/usermgmt/internal/metrics"
	"github.com/usermgmt/usermgmt/internal/middleware"
	"github.com/usermgmt/usermgmt/internal/server"
	"github.com/usermgmt/usermgmt/internal/userapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize user API client
	recorder := metrics.NewInMemory()
	client, err := userapi.New(userapi.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Observer: userapi.Observers{
			userapi.NewLogObserver(logger),
			userapi.NewMetricsObserver(recorder),
		},
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create user API client",
			slog.String("error", err.Error()),
			slog.String("api_base_url", redactURL(cfg.APIBaseURL)),
		)
		os.Exit(1)
	}

	defaultBackend, _ := userapi.BackendByName(cfg.Backend)

	// Initialize handlers
	h := handler.New()
	viewHandler := handler.NewViewHandler(cfg.Backend, map[string]handler.UserDirectory{
		userapi.JPA.Name:     client.Users(userapi.JPA),
		userapi.MyBatis.Name: client.Users(userapi.MyBatis),
	}, logger)
	healthHandler := handler.NewHealthHandler(handler.PingFunc(func(ctx context.Context) error {
		_, err := client.Users(defaultBackend).CountActive(ctx)
		return err
	}))
	metricsHandler := handler.NewMetricsHandler(recorder)

	// Setup router
	r := setupRouter(h, viewHandler, healthHandler, metricsHandler, cfg, logger)

	// Create and run server
	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"api_base_url", redactURL(cfg.APIBaseURL),
		"backend", cfg.Backend,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	viewHandler *handler.ViewHandler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	r.With(middleware.Security(cfg.IsDevelopment())).Get("/", viewHandler.Users)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

// redactURL strips the password from a URL before it is logged.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}
