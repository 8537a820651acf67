package calculator

import (
	"errors"

	"AntarcticExplorer/internal/model"
)

// ErrDegenerateFit is returned when every x value is identical and the slope is undefined.
var ErrDegenerateFit = errors.New("degenerate fit: zero variance in x")

// FitLine computes the ordinary least-squares line y = slope*x + intercept.
// slope = cov(x,y)/var(x), intercept = mean(y) - slope*mean(x).
func FitLine(xs, ys []float64) (model.Trend, error) {
	if len(xs) != len(ys) {
		return model.Trend{}, errors.New("x and y must have the same length")
	}
	if len(xs) == 0 {
		return model.Trend{}, ErrInsufficientData
	}

	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var sxx, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return model.Trend{}, ErrDegenerateFit
	}

	slope := sxy / sxx
	return model.Trend{Slope: slope, Intercept: meanY - slope*meanX}, nil
}

// FitIndexed fits values against their row index 0..len-1.
func FitIndexed(values []float64) (model.Trend, error) {
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	return FitLine(xs, values)
}

// FittedValues evaluates the trend at every row index 0..n-1.
func FittedValues(t model.Trend, n int) []float64 {
	fitted := make([]float64, n)
	for i := range fitted {
		fitted[i] = t.At(i)
	}
	return fitted
}
