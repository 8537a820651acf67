package collector

import (
	"time"

	"AntarcticExplorer/internal/model"
)

// Generator produces one reading per call.
type Generator interface {
	Generate() model.Sample
	Name() string
}

// Clock supplies wall-clock time so tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
