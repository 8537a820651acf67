package notifier

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"AntarcticExplorer/internal/model"
	"AntarcticExplorer/internal/stats"
	"AntarcticExplorer/internal/view"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func windowOf(values ...float64) *model.DerivedView {
	rows := make([]model.Sample, len(values))
	for i, v := range values {
		rows[i] = model.Sample{Value: v, Timestamp: "2024-01-01 00:00:00"}
	}
	return view.Build(rows)
}

func TestFormatLatest(t *testing.T) {
	if got := FormatLatest(nil); got != noReadings {
		t.Errorf("nil view: %q", got)
	}
	got := FormatLatest(windowOf(-17.5, -17.0))
	if !strings.Contains(got, "-17.0 C") || !strings.Contains(got, "warmer than usual") {
		t.Errorf("unexpected latest text: %q", got)
	}
}

func TestFormatHistory(t *testing.T) {
	got := FormatHistory(windowOf(-17.5, -16.2))
	if !strings.Contains(got, "-17.5") || !strings.Contains(got, "-16.2") {
		t.Errorf("history missing rows: %q", got)
	}
}

func TestFormatTrend(t *testing.T) {
	if got := FormatTrend(windowOf(-17)); !strings.Contains(got, "at least 2") {
		t.Errorf("single-row trend text: %q", got)
	}
	if got := FormatTrend(windowOf(1, 2, 3)); !strings.Contains(got, "+1.000") {
		t.Errorf("trend text: %q", got)
	}
}

func TestFormatSummary(t *testing.T) {
	now := time.Now()
	s := stats.NewSession("run-x", now.Add(-2*time.Hour))
	s.Observe(-17)
	got := FormatSummary(s.Summary(), now)
	if !strings.Contains(got, "run-x") || !strings.Contains(got, "2 hours ago") {
		t.Errorf("summary text: %q", got)
	}
}

func TestTrendAlerter(t *testing.T) {
	a := NewTrendAlerter(0.5, time.Minute)
	now := time.Now()

	if _, ok := a.Check(windowOf(-17), now); ok {
		t.Error("no alert expected without a trend")
	}
	if _, ok := a.Check(windowOf(-17.0, -16.9), now); ok {
		t.Error("no alert expected below threshold")
	}
	msg, ok := a.Check(windowOf(-18, -17, -16), now)
	if !ok {
		t.Fatal("expected alert for steep rise")
	}
	if !strings.Contains(msg, "Warmer than usual") {
		t.Errorf("alert text: %q", msg)
	}
	if _, ok := a.Check(windowOf(-16, -17, -18), now.Add(30*time.Second)); ok {
		t.Error("alert inside cooldown should be suppressed")
	}
	if _, ok := a.Check(windowOf(-16, -17, -18), now.Add(2*time.Minute)); !ok {
		t.Error("alert after cooldown expected")
	}
}

func TestTelegramNotifier_Send(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottoken/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("token", "42", "", discardLogger())
	tn.APIBase = srv.URL
	if err := tn.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["chat_id"] != "42" || got["text"] != "hello" {
		t.Errorf("payload = %v", got)
	}
}

func TestTelegramNotifier_SendWithRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("token", "42", "", discardLogger())
	tn.APIBase = srv.URL
	if err := tn.SendWithRetry(context.Background(), "hello", 0); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestTelegramNotifier_GetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") != "7" {
			t.Errorf("offset = %s", r.URL.Query().Get("offset"))
		}
		io.WriteString(w, `{"ok":true,"result":[{"update_id":7,"message":{"text":"/latest"}}]}`)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("token", "42", "", discardLogger())
	tn.APIBase = srv.URL
	updates, err := tn.getUpdates(context.Background(), srv.Client(), 7)
	if err != nil {
		t.Fatalf("getUpdates: %v", err)
	}
	if len(updates) != 1 || updates[0].Message.Text != "/latest" {
		t.Errorf("updates = %+v", updates)
	}
}
