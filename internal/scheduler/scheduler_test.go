package scheduler

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"AntarcticExplorer/internal/metrics"
	"AntarcticExplorer/internal/notifier"
	"AntarcticExplorer/internal/recorder"
	"AntarcticExplorer/internal/stats"
)

type memoryRecorder struct {
	mu      sync.Mutex
	records []*recorder.SampleRecord
	pruned  []time.Time
}

func (m *memoryRecorder) RecordSample(rec *recorder.SampleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryRecorder) Prune(olderThan time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruned = append(m.pruned, olderThan)
	return 0, nil
}

func (m *memoryRecorder) Close() error { return nil }

func (m *memoryRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func newTestScheduler(t *testing.T, ctx context.Context, values ...float64) (*Scheduler, *memoryRecorder, *fakeSender) {
	t.Helper()
	trig, cell := newSequenceTrigger(5, values...)
	rec := &memoryRecorder{}
	sender := &fakeSender{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mc := metrics.NewCollectorWithRegistry(metrics.CollectorConfig{RunID: "test", Interval: time.Second, Capacity: 5}, prometheus.NewRegistry())
	s := NewScheduler(ctx, "test-run", trig, cell, stats.NewSession("test-run", time.Now()), mc, rec,
		notifier.NewTrendAlerter(0.5, time.Hour), sender, logger)
	return s, rec, sender
}

func TestScheduler_TickFansOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, rec, sender := newTestScheduler(t, ctx, -18, -17, -16)

	go s.archiveLoop()
	for i := 0; i < 3; i++ {
		s.Trigger.Tick()
	}

	if got := s.Session.Summary().Count; got != 3 {
		t.Errorf("session count = %d, want 3", got)
	}

	// Stop without the cron/tick goroutines: close the queue directly.
	cancel()
	close(s.archive)
	<-s.done
	if rec.count() != 3 {
		t.Errorf("archived = %d, want 3", rec.count())
	}
	if rec.records[0].RunID != "test-run" || rec.records[0].Slope != nil {
		t.Errorf("first record = %+v", rec.records[0])
	}
	if rec.records[2].Slope == nil || *rec.records[2].Slope != 1 {
		t.Errorf("third record slope = %v, want 1", rec.records[2].Slope)
	}

	deadline := time.Now().Add(time.Second)
	for len(sender.messages()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if msgs := sender.messages(); len(msgs) != 1 || !strings.Contains(msgs[0], "Warmer") {
		t.Errorf("alerts = %q, want one warming alert", msgs)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, rec, _ := newTestScheduler(t, ctx, -17)
	if err := s.RegisterAll("0 * * * * *", "0 */10 * * * *", time.Hour); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	s.Start()
	if v := s.Cell.Load(); v == nil || v.Tick != 1 {
		t.Fatalf("expected first tick published by Start, got %+v", v)
	}
	cancel()
	s.Stop()
	if rec.count() < 1 {
		t.Errorf("archived = %d, want at least 1", rec.count())
	}
}

func TestScheduler_RegisterAllRejectsBadCron(t *testing.T) {
	s, _, _ := newTestScheduler(t, context.Background(), -17)
	if err := s.RegisterAll("not a cron", "0 * * * * *", time.Hour); err == nil {
		t.Error("expected error for invalid summary cron")
	}
}

func TestScheduler_PruneTask(t *testing.T) {
	s, rec, _ := newTestScheduler(t, context.Background(), -17)
	before := time.Now()
	s.pruneTask(time.Hour)
	if len(rec.pruned) != 1 {
		t.Fatalf("prune calls = %d, want 1", len(rec.pruned))
	}
	if cutoff := rec.pruned[0]; cutoff.After(before.Add(-time.Hour + time.Second)) {
		t.Errorf("cutoff %v is not about an hour ago", cutoff)
	}
}

func TestScheduler_HandleCommand(t *testing.T) {
	s, _, _ := newTestScheduler(t, context.Background(), -17.2, -16.8)
	if got := s.HandleCommand("/latest"); !strings.Contains(got, "No readings") {
		t.Errorf("before first tick: %q", got)
	}
	s.Trigger.Tick()
	s.Trigger.Tick()

	tests := []struct {
		cmd  string
		want string
	}{
		{"/latest", "-16.8 C"},
		{"/history", "-17.2"},
		{"/trend", "slope"},
		{"/summary", "test-run"},
		{"/help", "Available commands"},
	}
	for _, tt := range tests {
		if got := s.HandleCommand(tt.cmd); !strings.Contains(got, tt.want) {
			t.Errorf("HandleCommand(%q) = %q, want substring %q", tt.cmd, got, tt.want)
		}
	}
}
