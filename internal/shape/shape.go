// Package shape is the simulated object: a procedural mesh drifting and spinning
// through the bounding volume, bouncing off its walls and off other shapes, and
// recoloured every tick.
//
// A Shape owns its kinematic state. The renderer only ever sees the pose and
// colour pushed to the shape's Renderable.
package shape

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"shapefield/internal/bounds"
	"shapefield/internal/geometry"
	"shapefield/internal/palette"
	"shapefield/internal/rng"
)

// ErrNonFinite reports a shape whose position or velocity became NaN or infinite.
var ErrNonFinite = errors.New("shape state is not finite")

// Renderable is the rendering engine's handle for one shape.
type Renderable interface {
	SetPose(position, rotation mgl32.Vec3)
	SetColor(c palette.RGB)
}

// Renderer creates a renderable for a shape kind at a given size.
type Renderer interface {
	Create(p geometry.Params, size float32) (Renderable, error)
}

// Logger receives non-fatal diagnostics.
type Logger interface {
	Logf(format string, args ...any)
}

// Params are the sampling ranges used for any property not given explicitly.
type Params struct {
	MinSize  float32
	MaxSize  float32
	MaxSpeed float32 // per-axis linear speed bound
	MaxSpin  float32 // per-axis angular speed bound, radians per tick
	Kinds    []geometry.Kind
	Color    ColorPolicy // nil means PositionColor
}

// DefaultParams match the stock scene.
func DefaultParams() Params {
	return Params{
		MinSize:  10,
		MaxSize:  50,
		MaxSpeed: 2,
		MaxSpin:  0.02,
		Kinds:    geometry.Kinds(),
		Color:    PositionColor{},
	}
}

// Validate reports the first unusable range.
func (p Params) Validate() error {
	switch {
	case !finite(p.MinSize) || p.MinSize <= 0:
		return fmt.Errorf("min size %v must be positive", p.MinSize)
	case !finite(p.MaxSize) || p.MaxSize < p.MinSize:
		return fmt.Errorf("max size %v below min size %v", p.MaxSize, p.MinSize)
	case !finite(p.MaxSpeed) || p.MaxSpeed < 0:
		return fmt.Errorf("max speed %v must not be negative", p.MaxSpeed)
	case !finite(p.MaxSpin) || p.MaxSpin < 0:
		return fmt.Errorf("max spin %v must not be negative", p.MaxSpin)
	}
	for _, k := range p.Kinds {
		if !k.Valid() {
			return fmt.Errorf("shape kind pool contains %s", k)
		}
	}
	return nil
}

// Shape is one simulated object.
type Shape struct {
	Kind geometry.Kind
	P, Q int // random knot winding numbers

	// Size is the radius-equivalent half extent used for wall margins and
	// shape-to-shape contact. Always positive.
	Size float32

	Position        mgl32.Vec3
	Rotation        mgl32.Vec3 // euler angles, radians, unbounded
	Velocity        mgl32.Vec3 // units per tick
	AngularVelocity mgl32.Vec3 // radians per tick, fixed after creation

	// Frozen suspends Move, Rotate and Recolor. Bounce and Collide still apply.
	Frozen bool

	color  palette.RGB
	policy ColorPolicy
	handle Renderable
}

// New creates a shape inside vol. Every property without an Option is sampled
// from params; invalid explicit values are logged and sampled instead.
// r may be nil for a shape that is never drawn.
func New(r Renderer, vol bounds.Volume, params Params, log Logger, opts ...Option) (*Shape, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("new shape: %w", err)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.sanitize(log)

	s := &Shape{policy: params.Color}
	if s.policy == nil {
		s.policy = PositionColor{}
	}

	s.Kind = o.kindOr(params.Kinds)
	if s.Kind == geometry.RandomKnot {
		s.P, s.Q = rng.Int(1, 8), rng.Int(1, 8)
		if o.knot != nil {
			s.P, s.Q = o.knot[0], o.knot[1]
		}
	}
	norm := s.Params()
	s.P, s.Q = norm.P, norm.Q

	if o.size != nil {
		s.Size = *o.size
	} else {
		s.Size = rng.Float(params.MinSize, params.MaxSize)
	}
	s.Position = pick(o.position, func() mgl32.Vec3 { return samplePosition(vol, s.Size) })
	s.Rotation = pick(o.rotation, func() mgl32.Vec3 { return rng.Vec3(0, 2*math32.Pi) })
	s.Velocity = pick(o.velocity, func() mgl32.Vec3 { return rng.Vec3(-params.MaxSpeed, params.MaxSpeed) })
	s.AngularVelocity = pick(o.angular, func() mgl32.Vec3 { return rng.Vec3(-params.MaxSpin, params.MaxSpin) })

	if r != nil {
		h, err := r.Create(norm, s.Size)
		if err != nil {
			return nil, fmt.Errorf("new shape %s: %w", s.Kind, err)
		}
		s.handle = h
	}

	if o.color != nil {
		s.SetColor(*o.color)
	} else {
		s.Recolor(vol)
	}
	s.Sync()
	return s, nil
}

func pick(v *mgl32.Vec3, sample func() mgl32.Vec3) mgl32.Vec3 {
	if v != nil {
		return *v
	}
	return sample()
}

// samplePosition draws a point uniformly from vol shrunk by size on every side.
// An axis too thin to hold the shape gets its midpoint.
func samplePosition(vol bounds.Volume, size float32) mgl32.Vec3 {
	lo, hi := vol.Min(), vol.Max()
	var p mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		a, b := lo[axis]+size, hi[axis]-size
		if a >= b {
			p[axis] = (lo[axis] + hi[axis]) / 2
			continue
		}
		p[axis] = rng.Float(a, b)
	}
	return p
}

// Params returns the geometry parameters of this shape's mesh.
func (s *Shape) Params() geometry.Params {
	return geometry.Params{Kind: s.Kind, P: s.P, Q: s.Q}.Normalized()
}

func (s *Shape) Handle() Renderable { return s.handle }

func (s *Shape) Color() palette.RGB { return s.color }

// SetColor stores c and forwards it to the renderable.
func (s *Shape) SetColor(c palette.RGB) {
	s.color = c
	if s.handle != nil {
		s.handle.SetColor(c)
	}
}

// SetPolicy swaps the recolour rule.
func (s *Shape) SetPolicy(p ColorPolicy) {
	if p == nil {
		p = PositionColor{}
	}
	s.policy = p
}

// Sync pushes the current pose to the renderable.
func (s *Shape) Sync() {
	if s.handle != nil {
		s.handle.SetPose(s.Position, s.Rotation)
	}
}

// Animate advances the shape by one tick: move, bounce, rotate, recolor.
// The order matters: the wall clamp sees the post-move position and the colour
// reflects where the shape ended up.
func (s *Shape) Animate(vol bounds.Volume) error {
	s.Move()
	s.Bounce(vol)
	s.Rotate()
	if !s.Finite() {
		return ErrNonFinite
	}
	s.Recolor(vol)
	return nil
}

// Move adds one tick of velocity to the position.
func (s *Shape) Move() {
	if s.Frozen {
		return
	}
	s.Position = s.Position.Add(s.Velocity)
}

// MoveTo places the shape at p.
func (s *Shape) MoveTo(p mgl32.Vec3) error {
	if !finiteVec(p) {
		return fmt.Errorf("move to %v: %w", p, ErrNonFinite)
	}
	s.Position = p
	return nil
}

// Rotate adds one tick of angular velocity to the rotation.
func (s *Shape) Rotate() {
	if s.Frozen {
		return
	}
	s.Rotation = s.Rotation.Add(s.AngularVelocity)
}

// Bounce keeps the shape inside vol shrunk by Size. On every axis a shape at or
// past a wall is clamped onto it, and its velocity on that axis is negated if it
// was still heading outward. Frozen shapes are clamped too.
func (s *Shape) Bounce(vol bounds.Volume) {
	lo, hi := vol.Min(), vol.Max()
	for axis := 0; axis < 3; axis++ {
		low, high := lo[axis]+s.Size, hi[axis]-s.Size
		if low > high {
			// volume thinner than the shape: park it on the midplane
			s.Position[axis] = (lo[axis] + hi[axis]) / 2
			continue
		}
		switch {
		case s.Position[axis] <= low:
			s.Position[axis] = low
			if s.Velocity[axis] < 0 {
				s.Velocity[axis] = -s.Velocity[axis]
			}
		case s.Position[axis] >= high:
			s.Position[axis] = high
			if s.Velocity[axis] > 0 {
				s.Velocity[axis] = -s.Velocity[axis]
			}
		}
	}
}

// Wrap teleports a shape that fully left vol to the opposite face.
// It is the alternative boundary rule to Bounce.
func (s *Shape) Wrap(vol bounds.Volume) {
	lo, hi := vol.Min(), vol.Max()
	for axis := 0; axis < 3; axis++ {
		switch {
		case s.Position[axis] < lo[axis]-s.Size:
			s.Position[axis] = hi[axis] + s.Size
		case s.Position[axis] > hi[axis]+s.Size:
			s.Position[axis] = lo[axis] - s.Size
		}
	}
}

// Collide resolves contact with other when their spheres of size overlap.
// Both shapes leave along the line between their centres, away from each other,
// and trade speeds: s leaves with other's old speed and other with s's.
// Coincident centres give no direction and are left for a later tick.
// It reports whether a collision was resolved.
func (s *Shape) Collide(other *Shape) bool {
	if other == nil || other == s {
		return false
	}
	d := s.Position.Sub(other.Position)
	dist := d.Len()
	if dist == 0 || !finite(dist) || dist >= s.Size+other.Size {
		return false
	}
	// Reversing both velocities first would not change either magnitude, so
	// the speeds can be read directly.
	speed := s.Velocity.Len()
	otherSpeed := other.Velocity.Len()
	s.Velocity = d.Mul(otherSpeed / dist)
	other.Velocity = d.Mul(-speed / dist)
	return true
}

// Recolor applies the colour policy unless the shape is frozen.
func (s *Shape) Recolor(vol bounds.Volume) {
	if s.Frozen {
		return
	}
	s.SetColor(s.policy.Color(s, vol))
}

// Finite reports whether the kinematic state is free of NaN and Inf.
func (s *Shape) Finite() bool {
	return finite(s.Size) && finiteVec(s.Position) && finiteVec(s.Rotation) &&
		finiteVec(s.Velocity) && finiteVec(s.AngularVelocity)
}

func (s *Shape) String() string {
	return fmt.Sprintf("%s(size=%.1f pos=%.1f,%.1f,%.1f)", s.Kind, s.Size, s.Position[0], s.Position[1], s.Position[2])
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
