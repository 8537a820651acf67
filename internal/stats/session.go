// Package stats tracks statistics over every sample seen since startup.
package stats

import (
	"math"
	"sync"
	"time"

	"github.com/influxdata/tdigest"
)

// Summary is a point-in-time copy of the session statistics.
type Summary struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	Count     int64     `json:"count"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Mean      float64   `json:"mean"`
	P50       float64   `json:"p50"`
	P95       float64   `json:"p95"`
}

// Session accumulates values with a T-Digest for percentiles.
// Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	runID     string
	startedAt time.Time
	digest    *tdigest.TDigest
	count     int64
	sum       float64
	min       float64
	max       float64
}

// NewSession creates an empty session tagged with runID.
func NewSession(runID string, startedAt time.Time) *Session {
	return &Session{
		runID:     runID,
		startedAt: startedAt,
		digest:    tdigest.NewWithCompression(100),
		min:       math.Inf(1),
		max:       math.Inf(-1),
	}
}

// Observe records one value.
func (s *Session) Observe(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digest.Add(v, 1)
	s.count++
	s.sum += v
	if v < s.min {
		s.min = v
	}
	if v > s.max {
		s.max = v
	}
}

// Summary returns the current statistics. Value fields are zero until the first Observe.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{RunID: s.runID, StartedAt: s.startedAt, Count: s.count}
	if s.count == 0 {
		return sum
	}
	sum.Min = s.min
	sum.Max = s.max
	sum.Mean = s.sum / float64(s.count)
	sum.P50 = s.digest.Quantile(0.50)
	sum.P95 = s.digest.Quantile(0.95)
	return sum
}
