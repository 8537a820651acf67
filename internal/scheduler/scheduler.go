package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"AntarcticExplorer/internal/metrics"
	"AntarcticExplorer/internal/model"
	"AntarcticExplorer/internal/notifier"
	"AntarcticExplorer/internal/recorder"
	"AntarcticExplorer/internal/stats"
	"AntarcticExplorer/internal/view"
)

const archiveQueueSize = 64

// Sender delivers alert text.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the tick loop plus the cron housekeeping jobs, and fans each
// published view out to metrics, session statistics, the archive and alerts.
type Scheduler struct {
	Cron     *cron.Cron
	Trigger  *Trigger
	Cell     *view.Cell
	Session  *stats.Session
	Metrics  *metrics.Collector
	Recorder recorder.Recorder
	Alerter  *notifier.TrendAlerter
	Sender   Sender
	RunID    string
	Ctx      context.Context

	logger   *slog.Logger
	archive  chan *recorder.SampleRecord
	done     chan struct{}
	loopDone chan struct{}
}

// NewScheduler creates a Scheduler and hooks it into the trigger's publish step.
// Alerter and Sender may be nil to disable alerts.
func NewScheduler(ctx context.Context, runID string, trig *Trigger, cell *view.Cell, sess *stats.Session,
	mc *metrics.Collector, rec recorder.Recorder, alerter *notifier.TrendAlerter, sender Sender, logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Trigger:  trig,
		Cell:     cell,
		Session:  sess,
		Metrics:  mc,
		Recorder: rec,
		Alerter:  alerter,
		Sender:   sender,
		RunID:    runID,
		Ctx:      ctx,
		logger:   logger,
		archive:  make(chan *recorder.SampleRecord, archiveQueueSize),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	trig.OnPublish(s.afterTick)
	return s
}

// RegisterAll registers the summary and archive-pruning jobs.
func (s *Scheduler) RegisterAll(summaryCron, pruneCron string, retention time.Duration) error {
	if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	if retention > 0 {
		if _, err := s.Cron.AddFunc(pruneCron, func() { s.pruneTask(retention) }); err != nil {
			return fmt.Errorf("register prune task: %w", err)
		}
	}
	return nil
}

// Start launches the archive writer, cron, and the tick loop. The first tick
// runs synchronously so a view is published before Start returns.
func (s *Scheduler) Start() {
	go s.archiveLoop()
	s.Cron.Start()
	s.Trigger.Tick()
	go func() {
		defer close(s.loopDone)
		s.Trigger.Run(s.Ctx)
	}()
	s.logger.Info("scheduler_started", "run_id", s.RunID, "interval", s.Trigger.Interval())
}

// Stop stops cron, waits for the tick loop to exit and drains pending archive
// writes. Ctx must be cancelled before or during Stop.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	<-s.loopDone
	close(s.archive)
	<-s.done
	s.logger.Info("scheduler_stopped")
}

// afterTick runs on the tick goroutine and must not block.
func (s *Scheduler) afterTick(v *model.DerivedView, took time.Duration) {
	if s.Metrics != nil {
		s.Metrics.RecordTick(v, took)
	}
	if v.Latest == nil {
		return
	}
	s.Session.Observe(v.Latest.Value)
	s.logger.Debug("tick_published", "tick", v.Tick, "value", v.Latest.Value, "rows", len(v.Rows), "trend", v.HasTrend())

	rec := &recorder.SampleRecord{RunID: s.RunID, Tick: v.Tick, Sample: *v.Latest}
	if v.HasTrend() {
		slope := v.Trend.Slope
		rec.Slope = &slope
	}
	select {
	case s.archive <- rec:
	default:
		s.logger.Warn("archive_queue_full", "tick", v.Tick)
		s.archiveFailed()
	}

	if s.Alerter != nil && s.Sender != nil {
		if msg, ok := s.Alerter.Check(v, time.Now()); ok {
			s.logger.Info("trend_alert", "slope", v.Trend.Slope)
			go s.trySend(msg)
		}
	}
}

func (s *Scheduler) archiveLoop() {
	defer close(s.done)
	for rec := range s.archive {
		if err := s.Recorder.RecordSample(rec); err != nil {
			s.logger.Error("archive_sample_failed", "tick", rec.Tick, "error", err)
			s.archiveFailed()
		}
	}
}

func (s *Scheduler) archiveFailed() {
	if s.Metrics != nil {
		s.Metrics.ArchiveFailed()
	}
}

func (s *Scheduler) summaryTask() {
	sum := s.Session.Summary()
	s.logger.Info("session_summary",
		"run_id", sum.RunID,
		"count", sum.Count,
		"min", sum.Min,
		"max", sum.Max,
		"mean", sum.Mean,
		"p50", sum.P50,
		"p95", sum.P95,
	)
}

func (s *Scheduler) pruneTask(retention time.Duration) {
	removed, err := s.Recorder.Prune(time.Now().Add(-retention))
	if err != nil {
		s.logger.Error("archive_prune_failed", "error", err)
		return
	}
	s.logger.Info("archive_pruned", "removed", removed, "retention", retention)
}

// HandleCommand answers a bot command from the latest published view.
func (s *Scheduler) HandleCommand(command string) string {
	v := s.Cell.Load()
	switch command {
	case "/latest", "latest":
		return notifier.FormatLatest(v)
	case "/history", "history":
		return notifier.FormatHistory(v)
	case "/trend", "trend":
		return notifier.FormatTrend(v)
	case "/summary", "summary":
		return notifier.FormatSummary(s.Session.Summary(), time.Now())
	default:
		return "Available commands:\n• /latest\n• /history\n• /trend\n• /summary"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.logger.Error("send_notification_failed", "error", err)
	}
}
