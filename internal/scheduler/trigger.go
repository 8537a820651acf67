package scheduler

import (
	"context"
	"time"

	"AntarcticExplorer/internal/collector"
	"AntarcticExplorer/internal/history"
	"AntarcticExplorer/internal/model"
	"AntarcticExplorer/internal/view"
)

// PublishFunc is called after each view is published, on the tick goroutine.
// It must not block.
type PublishFunc func(v *model.DerivedView, took time.Duration)

// Trigger owns the history window and runs the generate-append-rebuild cycle.
// The next tick is armed only after the previous one completes.
type Trigger struct {
	interval  time.Duration
	generator collector.Generator
	buffer    *history.Buffer
	cell      *view.Cell
	onPublish PublishFunc
	ticks     uint64
}

// NewTrigger creates a Trigger that publishes into cell.
func NewTrigger(interval time.Duration, gen collector.Generator, capacity int, cell *view.Cell) *Trigger {
	return &Trigger{
		interval:  interval,
		generator: gen,
		buffer:    history.New(capacity),
		cell:      cell,
	}
}

// OnPublish registers fn to run after every publish. Must be called before Run.
func (t *Trigger) OnPublish(fn PublishFunc) {
	t.onPublish = fn
}

// Interval returns the delay between the end of one tick and the start of the next.
func (t *Trigger) Interval() time.Duration { return t.interval }

// Tick runs one synchronous cycle and returns the published view. It must only
// be called from the goroutine that runs Run, or before Run starts.
func (t *Trigger) Tick() *model.DerivedView {
	start := time.Now()

	t.buffer.Append(t.generator.Generate())
	t.ticks++

	v := view.Build(t.buffer.Snapshot())
	v.Tick = t.ticks
	t.cell.Publish(v)

	if t.onPublish != nil {
		t.onPublish(v, time.Since(start))
	}
	return v
}

// Run ticks every interval until ctx is cancelled.
func (t *Trigger) Run(ctx context.Context) {
	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			t.Tick()
			timer.Reset(t.interval)
		}
	}
}
