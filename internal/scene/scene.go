// Package scene is the context object tying one run together: the config, the
// rendering backend, the simulation world, the pick tracker and the animation
// loop. Nothing about a run is global.
package scene

import (
	"fmt"

	"shapefield/internal/config"
	"shapefield/internal/geometry"
	"shapefield/internal/graphics"
	"shapefield/internal/physics"
	"shapefield/internal/pointer"
	"shapefield/internal/shape"
)

// Backend is the rendering engine as seen by the scene.
type Backend interface {
	shape.Renderer
	// Viewport returns the current drawable size in pixels.
	Viewport() (width, height int)
	// Intersect returns the nearest renderable under the screen point, or nil.
	Intersect(x, y float32) shape.Renderable
	// SetPointerCursor switches between the pointing-hand and default cursors.
	SetPointerCursor(pointing bool)
}

// Scene owns every piece of run state.
type Scene struct {
	Config  config.Config
	World   *physics.World
	Tracker *pointer.Tracker
	Loop    *graphics.Loop

	backend Backend
	params  shape.Params
	log     shape.Logger

	pointerX, pointerY float32
	hasPointer         bool
}

// New builds the scene and populates it with cfg.EntityCount shapes.
// A shape that fails to build is logged and left out.
func New(cfg config.Config, b Backend, log shape.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := cfg.ShapeParams()
	if err != nil {
		return nil, err
	}
	w, h := b.Viewport()
	loop := graphics.NewLoop()
	tracker := pointer.NewTracker(loop, log)
	tracker.Policy = cfg.ClickPolicy
	tracker.BoostFactor = cfg.BoostFactor
	tracker.Highlight = cfg.Highlight()

	s := &Scene{
		Config:  cfg,
		World:   physics.NewWorld(w, h, log),
		Tracker: tracker,
		Loop:    loop,
		backend: b,
		params:  params,
		log:     log,
	}
	s.World.CollisionEnabled = cfg.CollisionEnabled
	for i := 0; i < cfg.EntityCount; i++ {
		if _, err := s.Spawn(); err != nil {
			s.logf("scene: shape %d: %v", i, err)
		}
	}
	s.logf("scene: %d shapes in %.0fx%.0fx%.0f", len(s.World.Shapes),
		s.World.Volume.Width(), s.World.Volume.Height(), s.World.Volume.Depth())
	return s, nil
}

// Spawn adds one shape. Options pin properties; the rest are sampled.
func (s *Scene) Spawn(opts ...shape.Option) (*shape.Shape, error) {
	sh, err := shape.New(s.backend, s.World.Volume, s.params, s.log, opts...)
	if err != nil {
		return nil, err
	}
	s.World.AddShape(sh)
	return sh, nil
}

// Duplicate clones src at the point mirrored through the volume centre, moving
// the opposite way. A picked source lends its colour from before the highlight.
func (s *Scene) Duplicate(src *shape.Shape) (*shape.Shape, error) {
	over := shape.State{
		Position: s.World.Volume.Center().Mul(2).Sub(src.Position),
		Velocity: src.Velocity.Mul(-1),
	}
	if src == s.Tracker.Picked() {
		over.Color = s.Tracker.SavedColor()
	}
	sh, err := src.Clone(s.backend, s.World.Volume, s.params, s.log, over)
	if err != nil {
		return nil, err
	}
	s.World.AddShape(sh)
	return sh, nil
}

// Tick is one animation frame: the simulation step, then the per-frame pick
// re-check when enabled.
func (s *Scene) Tick() {
	s.World.Step()
	if s.Config.HoverEveryFrame && s.hasPointer {
		s.hover()
	}
}

// Resize rebuilds the bounding volume for a new viewport. Shapes outside it are
// clamped by the next step.
func (s *Scene) Resize(width, height int) {
	s.World.Resize(width, height)
}

// PointerMove re-evaluates the pick at the new pointer position.
func (s *Scene) PointerMove(x, y float32) {
	s.pointerX, s.pointerY, s.hasPointer = x, y, true
	s.hover()
}

// Click applies the click policy.
func (s *Scene) Click() {
	s.Tracker.Click()
}

// Picked returns the shape under the pointer, or nil.
func (s *Scene) Picked() *shape.Shape { return s.Tracker.Picked() }

func (s *Scene) hover() {
	hit := s.World.Find(s.backend.Intersect(s.pointerX, s.pointerY))
	if s.Tracker.Hover(hit) {
		s.backend.SetPointerCursor(hit != nil)
	}
}

// SetRecolorPolicy installs the named policy on every shape and on shapes spawned later.
func (s *Scene) SetRecolorPolicy(name string) error {
	p, err := shape.PolicyByName(name, s.Config.MaxSpeed)
	if err != nil {
		return err
	}
	s.params.Color = p
	s.World.SetPolicy(p)
	if name == "" {
		name = shape.PolicyPosition
	}
	s.Config.RecolorPolicy = name
	return nil
}

func (s *Scene) SetCollisions(on bool) {
	s.World.CollisionEnabled = on
	s.Config.CollisionEnabled = on
}

func (s *Scene) SetClickPolicy(p pointer.ClickPolicy) error {
	if !p.Valid() {
		return fmt.Errorf("unknown click policy %q", p)
	}
	s.Tracker.Policy = p
	s.Config.ClickPolicy = p
	return nil
}

// Counts returns how many shapes of each kind are in the scene.
func (s *Scene) Counts() map[geometry.Kind]int {
	out := make(map[geometry.Kind]int)
	for _, sh := range s.World.Shapes {
		out[sh.Kind]++
	}
	return out
}

// Close drops the pick and every shape.
func (s *Scene) Close() {
	s.Tracker.Forget()
	s.World.Shapes = nil
	s.Loop.Stop()
}

func (s *Scene) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Logf(format, args...)
	}
}
