package calculator

import (
	"errors"

	"AntarcticExplorer/internal/model"
)

// ErrInsufficientData is returned when a series is too short for the requested calculation.
var ErrInsufficientData = errors.New("not enough data")

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, ErrInsufficientData
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// CalculateMean returns the arithmetic mean of all values.
func CalculateMean(values []float64) (float64, error) {
	return CalculateSMA(values, len(values))
}

// ExtractValues returns the sample values in row order.
func ExtractValues(samples []model.Sample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	return values
}
