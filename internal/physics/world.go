// Package physics runs the per-tick simulation step over every shape in the volume.
package physics

import (
	"fmt"

	"shapefield/internal/bounds"
	"shapefield/internal/shape"
)

// World holds the shapes and the volume they bounce around in.
type World struct {
	Volume bounds.Volume
	Shapes []*shape.Shape

	// CollisionEnabled turns the pairwise pass on or off.
	CollisionEnabled bool

	log shape.Logger
}

// NewWorld returns an empty world filling a w by h viewport with collisions on.
func NewWorld(w, h int, log shape.Logger) *World {
	return &World{
		Volume:           bounds.FromViewport(w, h),
		CollisionEnabled: true,
		log:              log,
	}
}

// AddShape appends s. Order is the pair order of the collision pass.
func (w *World) AddShape(s *shape.Shape) {
	w.Shapes = append(w.Shapes, s)
}

// Resize recomputes the volume. It must run between steps, never during one.
func (w *World) Resize(width, height int) {
	w.Volume = bounds.FromViewport(width, height)
	w.logf("physics: volume resized to %dx%dx%.0f", width, height, w.Volume.Depth())
}

// StepStats reports what one step did.
type StepStats struct {
	Skipped    int // shapes whose update failed and were rolled back
	Collisions int
}

// Step advances the world by one tick. Every shape moves, bounces, rotates and
// recolours first; only then are unordered pairs i<j collided, so a collision
// never cascades within a tick. A shape whose update fails is rolled back to its
// pre-tick state and left out of the collision pass.
func (w *World) Step() StepStats {
	var stats StepStats
	skip := make([]bool, len(w.Shapes))
	for i, s := range w.Shapes {
		if s == nil {
			skip[i] = true
			continue
		}
		if err := w.animate(s); err != nil {
			w.logf("physics: skipping %s this tick: %v", s, err)
			skip[i] = true
			stats.Skipped++
		}
	}

	if w.CollisionEnabled {
		for i := 0; i < len(w.Shapes); i++ {
			if skip[i] {
				continue
			}
			a := w.Shapes[i]
			for j := i + 1; j < len(w.Shapes); j++ {
				if skip[j] {
					continue
				}
				if a.Collide(w.Shapes[j]) {
					stats.Collisions++
				}
			}
		}
	}

	for i, s := range w.Shapes {
		if !skip[i] {
			s.Sync()
		}
	}
	return stats
}

// animate runs one shape's tick, restoring its snapshot if it fails or panics.
func (w *World) animate(s *shape.Shape) (err error) {
	before := s.Snapshot()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			s.Restore(before)
		}
	}()
	return s.Animate(w.Volume)
}

// Find returns the shape for a renderable, or nil.
func (w *World) Find(h shape.Renderable) *shape.Shape {
	if h == nil {
		return nil
	}
	for _, s := range w.Shapes {
		if s != nil && s.Handle() == h {
			return s
		}
	}
	return nil
}

// SetPolicy installs p on every shape.
func (w *World) SetPolicy(p shape.ColorPolicy) {
	for _, s := range w.Shapes {
		if s != nil {
			s.SetPolicy(p)
		}
	}
}

func (w *World) logf(format string, args ...any) {
	if w.log != nil {
		w.log.Logf(format, args...)
	}
}
