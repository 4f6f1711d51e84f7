// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// genstats serves activity reports over a directory of generated output
// artifacts: parse the filenames, aggregate per day, user and hour, and
// expose the result as an HTML dashboard, a JSON API and spreadsheet exports.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/genstats/internal/config"
	"github.com/olegiv/genstats/internal/handler"
	"github.com/olegiv/genstats/internal/logging"
	"github.com/olegiv/genstats/internal/middleware"
	"github.com/olegiv/genstats/internal/render"
	"github.com/olegiv/genstats/internal/report"
	"github.com/olegiv/genstats/internal/version"
	"github.com/olegiv/genstats/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = ""
	appGitCommit = ""
	appBuildTime = ""
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "genstats - output artifact activity reports\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_OUTPUTS_DIR       Artifact directory (default: ./outputs)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_FILE_PREFIX       Artifact filename prefix (default: output)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_SERVER_HOST       Server host (default: localhost)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_LOG_LEVEL         Log level: debug|info|warn|error (default: info)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_TOP_USERS         Leaderboard size (default: 5)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_RATE_LIMIT_RPS    Requests per second per client (default: 10)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GENSTATS_RATE_LIMIT_BURST  Burst allowance per client (default: 20)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		ver := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}.Resolve()
		_, _ = fmt.Printf("genstats %s\n", ver)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ver := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}.Resolve()

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	// WARN and ERROR records are additionally retained in memory for the
	// /api/v1/events endpoint.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventBuffer := logging.NewEventBufferHandler(textHandler)
	logger := slog.New(eventBuffer)
	slog.SetDefault(logger)

	slog.Info("starting genstats",
		"version", ver.String(),
		"outputs_dir", cfg.OutputsDir,
		"file_prefix", cfg.FilePrefix,
		"env", cfg.Env)

	if _, err := os.Stat(cfg.OutputsDir); os.IsNotExist(err) {
		slog.Warn("outputs directory does not exist yet, reports will be empty",
			"dir", cfg.OutputsDir)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(templatesFS)
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	engine := report.NewEngine(
		report.DirSource{Dir: cfg.OutputsDir},
		cfg.FilePrefix,
		cfg.TopUsers,
	)

	// Metrics registry with process and runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	reportHandler := handler.NewReportHandler(engine, renderer, metrics)
	exportHandler := handler.NewExportHandler(engine)
	healthHandler := handler.NewHealthHandler(cfg.OutputsDir, ver)
	eventsHandler := handler.NewEventsHandler(eventBuffer)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(rateLimiter.Middleware())
	r.Use(middleware.Compress())

	r.Get("/", reportHandler.Dashboard)
	r.Get("/users/{id}", reportHandler.UserPage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/report", reportHandler.APIReport)
		r.Get("/users/{id}", reportHandler.APIUser)
		r.Get("/days/{date}/hours", reportHandler.APIDayHours)
		r.Get("/events", eventsHandler.List)
	})

	r.Get("/export/csv", exportHandler.CSV)
	r.Get("/export/xlsx", exportHandler.XLSX)

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Exports over large directories can be slow
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
