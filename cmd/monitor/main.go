package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/htan-dcc/synapse-monitor/internal/config"
	"github.com/htan-dcc/synapse-monitor/internal/health"
	"github.com/htan-dcc/synapse-monitor/internal/metrics"
	"github.com/htan-dcc/synapse-monitor/internal/monitor"
	"github.com/htan-dcc/synapse-monitor/internal/notify"
	"github.com/htan-dcc/synapse-monitor/internal/render"
	"github.com/htan-dcc/synapse-monitor/internal/schedule"
	"github.com/htan-dcc/synapse-monitor/internal/warehouse"

	// Registers the sqlite driver for local warehouse snapshots; production
	// deployments select their driver via WAREHOUSE_DRIVER.
	_ "modernc.org/sqlite"
)

func main() {
	// Setup structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Set log level
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Str("run_mode", cfg.RunMode).
		Int("days_back", cfg.DaysBack).
		Bool("slack_enabled", cfg.SlackEnabled()).
		Msg("starting synapse monitor")

	wh, err := warehouse.Open(warehouse.Config{
		Driver:    cfg.WarehouseDriver,
		DSN:       cfg.WarehouseDSN,
		QueryFile: cfg.QueryFile,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open warehouse connection")
	}
	defer wh.Close()

	if !cfg.SlackEnabled() {
		logger.Warn().Msg("SLACK_WEBHOOK_URL not set — payloads will be logged, not delivered")
	}
	notifier := notify.New(cfg.SlackWebhookURL, logger)

	m := metrics.New()
	pipeline := monitor.New(wh, notifier, monitor.Config{
		DaysBack: cfg.DaysBack,
		Limits: render.Limits{
			CondensedThreshold: cfg.CondensedThreshold,
			MaxPairs:           cfg.MaxPairs,
			MaxFolders:         cfg.MaxFolders,
		},
		Links: render.LinkBuilder{BaseURL: cfg.LinkBaseURL},
	}, m, logger)

	if !cfg.DaemonMode() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := pipeline.Run(ctx); err != nil {
			logger.Fatal().Err(err).Msg("monitor run failed")
		}
		return
	}

	// Daemon mode: cron schedule plus health/metrics endpoints.
	checker := health.NewChecker(logger)
	checker.Register("warehouse", func(ctx context.Context) health.Status {
		if err := wh.Ping(ctx); err != nil {
			return health.StatusDown
		}
		return health.StatusOK
	})

	sched, err := schedule.New(cfg.CronSpec, pipeline, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("spec", cfg.CronSpec).Msg("invalid cron spec")
	}
	sched.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", health.LivenessHandler())
	mux.HandleFunc("/ready", checker.ReadinessHandler())
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logger.Info().Msg("synapse monitor stopped")
}
