package collector

import (
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"AntarcticExplorer/internal/model"
)

// Default telemetry range in degrees Celsius.
const (
	DefaultMin = -18.0
	DefaultMax = -16.0
)

// UniformGenerator draws values uniformly from [Min, Max], rounded to one decimal place.
type UniformGenerator struct {
	Min    float64
	Max    float64
	Layout string
	clock  Clock
	rng    *rand.Rand
}

// Option customises a UniformGenerator.
type Option func(*UniformGenerator)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(g *UniformGenerator) { g.clock = c }
}

// WithSeed makes the value stream reproducible.
func WithSeed(seed uint64) Option {
	return func(g *UniformGenerator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// NewUniformGenerator creates a generator over [lo, hi]. An empty layout uses model.DefaultTimestampLayout.
func NewUniformGenerator(lo, hi float64, layout string, opts ...Option) *UniformGenerator {
	if layout == "" {
		layout = model.DefaultTimestampLayout
	}
	g := &UniformGenerator{
		Min:    lo,
		Max:    hi,
		Layout: layout,
		clock:  realClock{},
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *UniformGenerator) Name() string { return "uniform" }

// Generate returns a new reading stamped with the current time.
func (g *UniformGenerator) Generate() model.Sample {
	raw := g.Min + g.rng.Float64()*(g.Max-g.Min)
	now := g.clock.Now()
	return model.Sample{
		Value:     clamp(Round1(raw), g.Min, g.Max),
		Timestamp: now.Format(g.Layout),
		Time:      now,
	}
}

// Round1 rounds v to one decimal place, half away from zero.
func Round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}

// clamp keeps a rounded value inside the closed interval when the bounds carry more than one decimal.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SequenceGenerator replays fixed values for development and testing.
type SequenceGenerator struct {
	Values []float64
	Layout string
	Clock  Clock
	next   int
}

func (s *SequenceGenerator) Name() string { return "sequence" }

// Generate returns the next value, cycling once the sequence is exhausted.
func (s *SequenceGenerator) Generate() model.Sample {
	layout := s.Layout
	if layout == "" {
		layout = model.DefaultTimestampLayout
	}
	clock := s.Clock
	if clock == nil {
		clock = realClock{}
	}
	var v float64
	if len(s.Values) > 0 {
		v = s.Values[s.next%len(s.Values)]
		s.next++
	}
	now := clock.Now()
	return model.Sample{Value: v, Timestamp: now.Format(layout), Time: now}
}
