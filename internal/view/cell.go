package view

import (
	"sync/atomic"

	"AntarcticExplorer/internal/model"
)

// Cell holds the most recently published view. Readers never block on the
// producer and never observe a partially built view.
type Cell struct {
	p atomic.Pointer[model.DerivedView]
}

// Publish replaces the current view. v must not be mutated afterwards.
func (c *Cell) Publish(v *model.DerivedView) {
	c.p.Store(v)
}

// Load returns the latest view, or nil before the first publish.
func (c *Cell) Load() *model.DerivedView {
	return c.p.Load()
}
