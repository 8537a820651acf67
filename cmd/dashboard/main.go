package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"AntarcticExplorer/internal/collector"
	"AntarcticExplorer/internal/config"
	"AntarcticExplorer/internal/logging"
	"AntarcticExplorer/internal/metrics"
	"AntarcticExplorer/internal/notifier"
	"AntarcticExplorer/internal/recorder"
	"AntarcticExplorer/internal/scheduler"
	"AntarcticExplorer/internal/server"
	"AntarcticExplorer/internal/stats"
	"AntarcticExplorer/internal/tui"
	"AntarcticExplorer/internal/view"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		return 1
	}

	// Init logger; the TUI owns the terminal, so its logs are dropped
	var logOut io.Writer = os.Stderr
	if cfg.UI.Mode == config.ModeTUI {
		logOut = io.Discard
	}
	logger := logging.NewLoggerWithWriter(logOut, cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(logger)

	runID := uuid.NewString()
	startedAt := time.Now()
	logger.Info("antarctic_explorer_starting",
		"run_id", runID,
		"mode", cfg.UI.Mode,
		"interval", cfg.Telemetry.Interval,
		"capacity", cfg.Telemetry.Capacity,
	)

	// Init generator
	var opts []collector.Option
	if cfg.Telemetry.Seed != 0 {
		opts = append(opts, collector.WithSeed(cfg.Telemetry.Seed))
	}
	gen := collector.NewUniformGenerator(*cfg.Telemetry.Min, *cfg.Telemetry.Max, cfg.Telemetry.TimestampLayout, opts...)

	// Init trigger, session stats and metrics
	cell := &view.Cell{}
	trig := scheduler.NewTrigger(cfg.Telemetry.Interval, gen, cfg.Telemetry.Capacity, cell)
	sess := stats.NewSession(runID, startedAt)
	mc := metrics.NewCollector(metrics.CollectorConfig{
		RunID:    runID,
		Interval: cfg.Telemetry.Interval,
		Capacity: cfg.Telemetry.Capacity,
	})

	// Init recorder
	var rec recorder.Recorder
	if cfg.Archive.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Archive.SQLitePath, logger)
		if err != nil {
			logger.Warn("sqlite_recorder_init_failed", "path", cfg.Archive.SQLitePath, "error", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Telegram alerts, only when configured
	var (
		alerter *notifier.TrendAlerter
		sender  scheduler.Sender
		tn      *notifier.TelegramNotifier
	)
	if cfg.AlertsEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Alert.BotToken, cfg.Alert.ChatID, cfg.Proxy, logger)
		alerter = notifier.NewTrendAlerter(cfg.Alert.SlopeThreshold, cfg.Alert.Cooldown)
		sender = tn
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, runID, trig, cell, sess, mc, rec, alerter, sender, logger)
	if err := sched.RegisterAll(cfg.Summary.Cron, cfg.Archive.PruneCron, cfg.Archive.Retention); err != nil {
		logger.Error("register_cron_tasks_failed", "error", err)
		return 1
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram_polling_started")
	}

	// Terminal dashboard
	if cfg.UI.Mode == config.ModeTUI {
		p := tea.NewProgram(tui.New(tui.Config{
			Title:    cfg.Server.Title,
			Capacity: cfg.Telemetry.Capacity,
			Source:   cell,
		}), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "tui: %v\n", err)
			cancel()
			return 1
		}
		cancel()
		return 0
	}

	// Web dashboard
	srv := server.New(server.Config{
		Addr:     cfg.Server.Addr,
		Title:    cfg.Server.Title,
		Interval: cfg.Telemetry.Interval,
		Cell:     cell,
		Session:  sess,
		Logger:   logger,
	})
	if err := srv.Start(); err != nil {
		logger.Error("dashboard_server_start_failed", "addr", cfg.Server.Addr, "error", err)
		cancel()
		return 1
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutdown_signal_received", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("dashboard_server_shutdown_failed", "error", err)
	}
	cancel()
	logger.Info("antarctic_explorer_stopped", "run_id", runID)
	return 0
}
