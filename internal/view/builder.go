// Package view builds and publishes the derived table + trend bundle.
package view

import (
	"time"

	"AntarcticExplorer/internal/calculator"
	"AntarcticExplorer/internal/model"
)

// Build computes a fresh DerivedView from the history window.
//
// An empty window yields an empty view. A window with fewer than two rows
// carries rows and latest but no trend.
func Build(history []model.Sample) *model.DerivedView {
	v := &model.DerivedView{BuiltAt: time.Now()}
	if len(history) == 0 {
		return v
	}

	v.Rows = make([]model.Sample, len(history))
	copy(v.Rows, history)
	latest := v.Rows[len(v.Rows)-1]
	v.Latest = &latest

	values := calculator.ExtractValues(v.Rows)
	v.Stats = calculator.CalculateWindowStats(values)

	// Fewer than two distinct x values leaves the trend unset.
	if trend, err := calculator.FitIndexed(values); err == nil {
		v.Trend = &trend
		v.Fitted = calculator.FittedValues(trend, len(values))
	}
	return v
}
