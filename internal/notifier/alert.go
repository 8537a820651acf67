package notifier

import (
	"math"
	"sync"
	"time"

	"AntarcticExplorer/internal/model"
)

// TrendAlerter decides when a steep trend is worth a message.
// At most one alert is raised per cooldown period.
type TrendAlerter struct {
	Threshold float64
	Cooldown  time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewTrendAlerter creates an alerter firing when |slope| >= threshold.
func NewTrendAlerter(threshold float64, cooldown time.Duration) *TrendAlerter {
	return &TrendAlerter{Threshold: threshold, Cooldown: cooldown}
}

// Check returns the alert text and true when v warrants an alert at now.
func (a *TrendAlerter) Check(v *model.DerivedView, now time.Time) (string, bool) {
	if !v.HasTrend() || v.Latest == nil {
		return "", false
	}
	if math.Abs(v.Trend.Slope) < a.Threshold {
		return "", false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.last.IsZero() && now.Sub(a.last) < a.Cooldown {
		return "", false
	}
	a.last = now
	return FormatTrendAlert(v), true
}
