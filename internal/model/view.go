package model

import "time"

// Trend is an ordinary least-squares fit of value against row index.
type Trend struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At returns the fitted value for row index i.
func (t Trend) At(i int) float64 {
	return t.Slope*float64(i) + t.Intercept
}

// WindowStats summarises the values currently held in the history window.
type WindowStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// DerivedView is the table + trend bundle rebuilt on every tick.
// A published view is never mutated.
type DerivedView struct {
	Rows    []Sample    `json:"rows"`
	Latest  *Sample     `json:"latest"`
	Trend   *Trend      `json:"trend"`
	Fitted  []float64   `json:"fitted"`
	Stats   WindowStats `json:"stats"`
	Tick    uint64      `json:"tick"`
	BuiltAt time.Time   `json:"built_at"`
}

// HasTrend reports whether a regression line was fitted.
func (v *DerivedView) HasTrend() bool {
	return v != nil && v.Trend != nil
}
