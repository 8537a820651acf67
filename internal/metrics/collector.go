// Package metrics exposes Prometheus metrics for the telemetry loop.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"AntarcticExplorer/internal/model"
)

// Collector records per-tick metrics.
type Collector struct {
	info          *prometheus.GaugeVec
	ticks         prometheus.Counter
	latest        prometheus.Gauge
	slope         prometheus.Gauge
	trendPresent  prometheus.Gauge
	historyLength prometheus.Gauge
	tickDuration  prometheus.Histogram
	archiveErrors prometheus.Counter
}

// CollectorConfig describes the running telemetry loop.
type CollectorConfig struct {
	RunID    string
	Interval time.Duration
	Capacity int
}

// NewCollector creates a collector registered with the default registry.
func NewCollector(cfg CollectorConfig) *Collector {
	return NewCollectorWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewCollectorWithRegistry creates a collector with a custom registry.
func NewCollectorWithRegistry(cfg CollectorConfig, registry prometheus.Registerer) *Collector {
	c := &Collector{
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "antarctic_telemetry_info",
			Help: "Information about the telemetry loop (value always 1)",
		}, []string{"run_id", "interval", "capacity"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "antarctic_ticks_total",
			Help: "Total ticks executed",
		}),
		latest: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "antarctic_temperature_celsius",
			Help: "Latest generated temperature",
		}),
		slope: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "antarctic_trend_slope_celsius_per_tick",
			Help: "Slope of the fitted trend over the history window",
		}),
		trendPresent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "antarctic_trend_present",
			Help: "1 when the window holds enough rows for a trend, else 0",
		}),
		historyLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "antarctic_history_length",
			Help: "Samples currently held in the rolling window",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "antarctic_tick_duration_seconds",
			Help:    "Time spent executing one tick",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}),
		archiveErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "antarctic_archive_errors_total",
			Help: "Samples that failed to reach the archive",
		}),
	}
	registry.MustRegister(c.info, c.ticks, c.latest, c.slope, c.trendPresent,
		c.historyLength, c.tickDuration, c.archiveErrors)

	c.info.WithLabelValues(cfg.RunID, cfg.Interval.String(), strconv.Itoa(cfg.Capacity)).Set(1)
	return c
}

// RecordTick updates metrics from a freshly published view.
func (c *Collector) RecordTick(v *model.DerivedView, took time.Duration) {
	c.ticks.Inc()
	c.tickDuration.Observe(took.Seconds())
	c.historyLength.Set(float64(len(v.Rows)))
	if v.Latest != nil {
		c.latest.Set(v.Latest.Value)
	}
	if v.HasTrend() {
		c.trendPresent.Set(1)
		c.slope.Set(v.Trend.Slope)
	} else {
		c.trendPresent.Set(0)
		c.slope.Set(0)
	}
}

// ArchiveFailed counts a sample the recorder could not store.
func (c *Collector) ArchiveFailed() {
	c.archiveErrors.Inc()
}
