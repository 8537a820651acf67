// Package history keeps the bounded rolling window of recent samples.
package history

import (
	"github.com/gammazero/deque"

	"AntarcticExplorer/internal/model"
)

// DefaultCapacity is the number of samples retained when no capacity is configured.
const DefaultCapacity = 5

// Buffer is a fixed-capacity FIFO window. The oldest sample is evicted once
// the capacity is exceeded. Buffer is not safe for concurrent use; a single
// owner mutates it and hands out copies via Snapshot.
type Buffer struct {
	q   deque.Deque[model.Sample]
	cap int
}

// New creates a Buffer holding at most capacity samples.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{cap: capacity}
}

// Append adds s at the back, evicting from the front so Len never exceeds Cap.
func (b *Buffer) Append(s model.Sample) {
	b.q.PushBack(s)
	for b.q.Len() > b.cap {
		b.q.PopFront()
	}
}

// Snapshot returns the samples oldest-first in a newly allocated slice.
func (b *Buffer) Snapshot() []model.Sample {
	out := make([]model.Sample, b.q.Len())
	for i := range out {
		out[i] = b.q.At(i)
	}
	return out
}

// Len returns the number of samples currently held.
func (b *Buffer) Len() int { return b.q.Len() }

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.cap }
