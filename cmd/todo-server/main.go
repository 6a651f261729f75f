package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/reflow/scalar"
	"github.com/reflow/scalar/adapters/scalarchi"
	"github.com/reflow/scalar/internal/config"
	"github.com/reflow/scalar/internal/metrics"
	"github.com/reflow/scalar/internal/telemetry"
	"github.com/reflow/scalar/internal/todo"
)

const apiVersion = "1.0.0"

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	setupLogging(cfg.Logging)

	log.Info().Msg("Starting todo server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry
	otelProvider, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}
	if otelProvider != nil {
		log.Info().
			Str("endpoint", cfg.Telemetry.Endpoint).
			Str("service", cfg.Telemetry.ServiceName).
			Msg("OpenTelemetry enabled")
	}
	telemetry.InitMetrics()

	r, docs, err := newRouter(cfg, todo.NewStore(), metrics.New())
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Docs.Path).Msg("Failed to mount API reference")
	}
	log.Info().Str("url", docs.URL()).Msg("API reference mounted")

	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := otelProvider.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Telemetry shutdown error")
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}

		cancel()
	}()

	log.Info().Str("addr", addr).Msg("Server listening")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Server stopped")
}

// newRouter wires the middleware, the operational endpoints, the todo API
// and its API reference. The returned descriptor is the one mounted.
func newRouter(cfg *config.Config, store *todo.Store, promMetrics *metrics.Metrics) (chi.Router, scalar.Scalar, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(promMetrics.Instrument)

	if cfg.Telemetry.Enabled {
		r.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, cfg.Telemetry.ServiceName)
		})
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		ExposedHeaders: cfg.CORS.ExposeHeaders,
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promMetrics.Handler())

	api := humachi.New(r, todo.Config(cfg.Docs.Title, apiVersion))
	todo.Register(api, store)

	// The document is complete only once every operation is registered.
	docs := scalar.New(api.OpenAPI()).
		WithURL(cfg.Docs.Path).
		WithTitle(cfg.Docs.Title).
		WithConfig(cfg.Docs.Scalar())
	if err := scalarchi.Register(r, docs); err != nil {
		return nil, scalar.Scalar{}, err
	}
	return r, docs, nil
}

func setupLogging(cfg config.LoggingConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	zerolog.TimeFieldFormat = time.RFC3339
}
