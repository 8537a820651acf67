package calculator

import (
	"math"

	"AntarcticExplorer/internal/model"
)

// CalculateRange scans values and returns the high and low.
func CalculateRange(values []float64) (high, low float64, err error) {
	if len(values) == 0 {
		return 0, 0, ErrInsufficientData
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low, nil
}

// CalculateWindowStats returns min, max and mean of the window. An empty window yields zero stats.
func CalculateWindowStats(values []float64) model.WindowStats {
	high, low, err := CalculateRange(values)
	if err != nil {
		return model.WindowStats{}
	}
	mean, err := CalculateMean(values)
	if err != nil {
		return model.WindowStats{}
	}
	return model.WindowStats{Min: low, Max: high, Mean: mean}
}
