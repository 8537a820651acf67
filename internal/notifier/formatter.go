package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"AntarcticExplorer/internal/model"
	"AntarcticExplorer/internal/stats"
	"AntarcticExplorer/internal/view"
)

const noReadings = "No readings yet."

// FormatLatest formats the current reading.
func FormatLatest(v *model.DerivedView) string {
	if v == nil || v.Latest == nil {
		return noReadings
	}
	return fmt.Sprintf("🌡 <b>Current Temperature</b>\n%s (%s)\n%s",
		view.DisplayValue(v.Latest.Value), view.Caption(v), v.Latest.Timestamp)
}

// FormatHistory formats the rolling window as a plain table.
func FormatHistory(v *model.DerivedView) string {
	if v == nil || len(v.Rows) == 0 {
		return noReadings
	}
	var b strings.Builder
	b.WriteString("📋 <b>Recent readings</b>\n<pre>")
	for _, r := range v.Rows {
		b.WriteString(fmt.Sprintf("%s  %6.1f\n", r.Timestamp, r.Value))
	}
	b.WriteString("</pre>")
	return b.String()
}

// FormatTrend formats the fitted trend line.
func FormatTrend(v *model.DerivedView) string {
	if v == nil || len(v.Rows) == 0 {
		return noReadings
	}
	if !v.HasTrend() {
		return fmt.Sprintf("📈 Trend needs at least 2 readings (have %d).", len(v.Rows))
	}
	return fmt.Sprintf("📈 <b>Trend</b> over %d readings\nslope: %+.3f °C/tick\nintercept: %.2f °C\nwindow: min %.1f / mean %.2f / max %.1f",
		len(v.Rows), v.Trend.Slope, v.Trend.Intercept, v.Stats.Min, v.Stats.Mean, v.Stats.Max)
}

// FormatTrendAlert formats a steep-trend alert.
func FormatTrendAlert(v *model.DerivedView) string {
	caption := view.Caption(v)
	return fmt.Sprintf("⚠️ <b>%s</b>\nslope %+.3f °C/tick over the last %d readings\nlatest: %s at %s",
		strings.ToUpper(caption[:1])+caption[1:], v.Trend.Slope, len(v.Rows), view.DisplayValue(v.Latest.Value), v.Latest.Timestamp)
}

// FormatSummary formats the session statistics.
func FormatSummary(s stats.Summary, now time.Time) string {
	var b strings.Builder
	b.WriteString("📊 <b>Session summary</b>\n")
	b.WriteString(fmt.Sprintf("run: %s\n", s.RunID))
	b.WriteString(fmt.Sprintf("started: %s\n", humanize.RelTime(s.StartedAt, now, "ago", "from now")))
	b.WriteString(fmt.Sprintf("readings: %s\n", humanize.Comma(s.Count)))
	if s.Count > 0 {
		b.WriteString(fmt.Sprintf("min %.1f / mean %.2f / max %.1f\n", s.Min, s.Mean, s.Max))
		b.WriteString(fmt.Sprintf("p50 %.2f / p95 %.2f\n", s.P50, s.P95))
	}
	return b.String()
}
