package recorder

import (
	"time"

	"AntarcticExplorer/internal/model"
)

// SampleRecord is one archived reading together with the window's trend at that tick.
type SampleRecord struct {
	RunID  string
	Tick   uint64
	Sample model.Sample
	Slope  *float64
}

// Recorder archives samples for offline analysis. The archive is write-only:
// nothing reads it back at startup.
type Recorder interface {
	RecordSample(rec *SampleRecord) error
	Prune(olderThan time.Time) (int64, error)
	Close() error
}
