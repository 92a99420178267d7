package shape

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"

	"shapefield/internal/bounds"
	"shapefield/internal/geometry"
	"shapefield/internal/palette"
)

// State is an immutable value copy of a shape. Frozen is deliberately absent:
// a snapshot describes the shape, not the pointer currently holding it.
type State struct {
	Kind            geometry.Kind
	P, Q            int
	Size            float32
	Position        mgl32.Vec3
	Rotation        mgl32.Vec3
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Color           palette.RGB
}

func (s *Shape) Snapshot() State {
	return State{
		Kind:            s.Kind,
		P:               s.P,
		Q:               s.Q,
		Size:            s.Size,
		Position:        s.Position,
		Rotation:        s.Rotation,
		Velocity:        s.Velocity,
		AngularVelocity: s.AngularVelocity,
		Color:           s.color,
	}
}

// Restore rewinds the kinematic state and colour to st. Kind and size are part
// of the mesh and are left alone.
func (s *Shape) Restore(st State) {
	s.Position = st.Position
	s.Rotation = st.Rotation
	s.Velocity = st.Velocity
	s.AngularVelocity = st.AngularVelocity
	s.SetColor(st.Color)
}

// With returns st with every non-zero field of overrides copied over it.
// A zero field means "keep", so a value cannot be overridden with zero.
func (st State) With(overrides State) (State, error) {
	out := st
	if err := copier.CopyWithOption(&out, &overrides, copier.Option{IgnoreEmpty: true}); err != nil {
		return st, fmt.Errorf("apply state overrides: %w", err)
	}
	return out, nil
}

// Options turns a state into the options that recreate it exactly.
func (st State) Options() []Option {
	opts := []Option{
		WithSize(st.Size),
		WithPosition(st.Position),
		WithRotation(st.Rotation),
		WithVelocity(st.Velocity),
		WithAngularVelocity(st.AngularVelocity),
		WithColor(st.Color),
	}
	if st.Kind.Valid() {
		opts = append(opts, WithKind(st.Kind))
	}
	if st.Kind == geometry.RandomKnot {
		opts = append(opts, WithKnot(st.P, st.Q))
	}
	return opts
}

// Clone builds a new shape from this one's snapshot with overrides applied.
// The clone gets its own renderable and shares the colour policy.
func (s *Shape) Clone(r Renderer, vol bounds.Volume, params Params, log Logger, overrides State) (*Shape, error) {
	st, err := s.Snapshot().With(overrides)
	if err != nil {
		return nil, err
	}
	params.Color = s.policy
	return New(r, vol, params, log, st.Options()...)
}
