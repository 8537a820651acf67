package stats

import (
	"math"
	"testing"
	"time"
)

func TestSession_Empty(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSession("run-1", start)
	sum := s.Summary()
	if sum.Count != 0 || sum.Min != 0 || sum.Max != 0 || sum.P50 != 0 {
		t.Errorf("empty summary = %+v, want zero values", sum)
	}
	if sum.RunID != "run-1" || !sum.StartedAt.Equal(start) {
		t.Errorf("identity = %q/%v", sum.RunID, sum.StartedAt)
	}
}

func TestSession_Observe(t *testing.T) {
	s := NewSession("run-2", time.Now())
	for i := 0; i < 100; i++ {
		s.Observe(-18.0 + float64(i%21)*0.1)
	}
	sum := s.Summary()
	if sum.Count != 100 {
		t.Errorf("count = %d, want 100", sum.Count)
	}
	if sum.Min != -18.0 {
		t.Errorf("min = %v, want -18", sum.Min)
	}
	if math.Abs(sum.Max-(-16.0)) > 1e-9 {
		t.Errorf("max = %v, want -16", sum.Max)
	}
	if sum.P50 < sum.Min || sum.P50 > sum.Max {
		t.Errorf("p50 %v outside [%v, %v]", sum.P50, sum.Min, sum.Max)
	}
	if sum.P95 < sum.P50 {
		t.Errorf("p95 %v below p50 %v", sum.P95, sum.P50)
	}
	if sum.Mean < sum.Min || sum.Mean > sum.Max {
		t.Errorf("mean %v outside range", sum.Mean)
	}
}

func TestSession_ConcurrentObserve(t *testing.T) {
	s := NewSession("run-3", time.Now())
	done := make(chan struct{})
	for g := 0; g < 4; g++ {
		go func() {
			for i := 0; i < 250; i++ {
				s.Observe(-17)
			}
			done <- struct{}{}
		}()
	}
	for g := 0; g < 4; g++ {
		<-done
	}
	if got := s.Summary().Count; got != 1000 {
		t.Errorf("count = %d, want 1000", got)
	}
}
