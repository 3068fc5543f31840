package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/loanpilot/loanpilot/internal/api"
	"github.com/loanpilot/loanpilot/internal/audit"
	"github.com/loanpilot/loanpilot/internal/cache"
	"github.com/loanpilot/loanpilot/internal/config"
	"github.com/loanpilot/loanpilot/internal/events"
	"github.com/loanpilot/loanpilot/internal/processor"
	"github.com/loanpilot/loanpilot/internal/session"
	"github.com/loanpilot/loanpilot/internal/verify"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("loanpilot starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.NewMemoryStore()

	// Eligibility cache — shared Redis when configured, in-process otherwise.
	var eligCache cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		eligCache = cache.NewRedis(cfg.RedisAddr, cfg.CacheTTL)
		slog.Info("redis cache ready", "addr", cfg.RedisAddr)
	}

	// Audit trail (optional — without a database the trail is discarded).
	var recorder audit.Recorder = audit.Noop{}
	if cfg.DatabaseURL != "" {
		pg, err := audit.NewPg(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to audit database", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		recorder = pg
		slog.Info("audit database connected")
	}

	// Event publisher (optional — loanpilot works without NATS, just no events).
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		var err error
		publisher, err = events.NewPublisher(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without intake events")
	}

	verifier := verify.NewStub(cfg.VerifyLatency)

	proc := processor.New(store, verifier, eligCache, recorder, publisher, processor.Latency{
		Eligibility: cfg.EligibilityLatency,
		Decision:    cfg.DecisionLatency,
	}, slog.Default())

	srv := api.NewServer(cfg.Port, proc, cfg.AllowedOrigins)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("loanpilot ready", "port", cfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("loanpilot stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
