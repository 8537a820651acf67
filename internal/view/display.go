package view

import (
	"fmt"

	"AntarcticExplorer/internal/model"
)

// DisplayValue renders a temperature for the value box, e.g. "-17.2 C".
func DisplayValue(v float64) string {
	return fmt.Sprintf("%.1f C", v)
}

// Caption describes the direction of the fitted trend.
func Caption(v *model.DerivedView) string {
	if !v.HasTrend() {
		return "collecting readings"
	}
	switch {
	case v.Trend.Slope > 0:
		return "warmer than usual"
	case v.Trend.Slope < 0:
		return "colder than usual"
	default:
		return "holding steady"
	}
}

// ChartPoint pairs a row timestamp with its observed and fitted value.
type ChartPoint struct {
	Timestamp string   `json:"timestamp"`
	Value     float64  `json:"value"`
	Fitted    *float64 `json:"fitted,omitempty"`
}

// ChartSeries pairs every row with its fitted value for plotting. Fitted is
// omitted when the view has no trend.
func ChartSeries(v *model.DerivedView) []ChartPoint {
	if v == nil {
		return nil
	}
	points := make([]ChartPoint, len(v.Rows))
	for i, r := range v.Rows {
		points[i] = ChartPoint{Timestamp: r.Timestamp, Value: r.Value}
		if v.HasTrend() {
			f := v.Fitted[i]
			points[i].Fitted = &f
		}
	}
	return points
}
