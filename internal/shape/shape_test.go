package shape

import (
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"shapefield/internal/bounds"
	"shapefield/internal/geometry"
	"shapefield/internal/palette"
)

type recordingLog struct{ lines []string }

func (l *recordingLog) Logf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

type fakeHandle struct {
	pos, rot mgl32.Vec3
	color    palette.RGB
	poses    int
}

func (h *fakeHandle) SetPose(p, r mgl32.Vec3) { h.pos, h.rot = p, r; h.poses++ }
func (h *fakeHandle) SetColor(c palette.RGB)  { h.color = c }

type fakeRenderer struct {
	created []geometry.Params
	sizes   []float32
	err     error
}

func (r *fakeRenderer) Create(p geometry.Params, size float32) (Renderable, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = append(r.created, p)
	r.sizes = append(r.sizes, size)
	return &fakeHandle{}, nil
}

// box200 spans -100..100 on every axis.
var box200 = bounds.Volume{Left: -100, Right: 100, Top: 100, Bottom: -100, Front: 100, Back: -100}

func mustNew(t *testing.T, opts ...Option) *Shape {
	t.Helper()
	s, err := New(nil, box200, DefaultParams(), nil, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewSamplesInsideVolume(t *testing.T) {
	params := DefaultParams()
	for i := 0; i < 200; i++ {
		s, err := New(nil, box200, params, nil)
		if err != nil {
			t.Fatal(err)
		}
		if s.Size < params.MinSize || s.Size > params.MaxSize {
			t.Fatalf("size %v outside [%v, %v]", s.Size, params.MinSize, params.MaxSize)
		}
		if !box200.Contains(s.Position, s.Size) {
			t.Fatalf("spawned at %v with size %v, outside the shrunk volume", s.Position, s.Size)
		}
		for axis := 0; axis < 3; axis++ {
			if s.Velocity[axis] < -params.MaxSpeed || s.Velocity[axis] > params.MaxSpeed {
				t.Fatalf("velocity %v exceeds max speed", s.Velocity)
			}
			if s.AngularVelocity[axis] < -params.MaxSpin || s.AngularVelocity[axis] > params.MaxSpin {
				t.Fatalf("angular velocity %v exceeds max spin", s.AngularVelocity)
			}
		}
		if !s.Kind.Valid() {
			t.Fatalf("sampled invalid kind %s", s.Kind)
		}
	}
}

func TestNewUsesExplicitOptions(t *testing.T) {
	r := &fakeRenderer{}
	color := palette.RGB{R: 0.1, G: 0.2, B: 0.3}
	s, err := New(r, box200, DefaultParams(), nil,
		WithKind(geometry.RandomKnot),
		WithKnot(3, 5),
		WithSize(12),
		WithPosition(mgl32.Vec3{1, 2, 3}),
		WithRotation(mgl32.Vec3{0.1, 0.2, 0.3}),
		WithVelocity(mgl32.Vec3{1, 0, -1}),
		WithAngularVelocity(mgl32.Vec3{0.01, 0, 0}),
		WithColor(color),
	)
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind != geometry.RandomKnot || s.P != 3 || s.Q != 5 {
		t.Errorf("kind = %s p=%d q=%d", s.Kind, s.P, s.Q)
	}
	if s.Size != 12 || s.Position != (mgl32.Vec3{1, 2, 3}) || s.Velocity != (mgl32.Vec3{1, 0, -1}) {
		t.Errorf("explicit values not kept: %+v", s.Snapshot())
	}
	if s.Color() != color {
		t.Errorf("colour = %+v, want %+v", s.Color(), color)
	}
	if len(r.created) != 1 || r.created[0].Key() != "random_knot/3/5" || r.sizes[0] != 12 {
		t.Fatalf("renderer calls = %v %v", r.created, r.sizes)
	}
	h := s.Handle().(*fakeHandle)
	if h.color != color || h.pos != (mgl32.Vec3{1, 2, 3}) || h.rot != (mgl32.Vec3{0.1, 0.2, 0.3}) {
		t.Errorf("handle not synced: %+v", h)
	}
}

func TestNewDegradesMalformedOptions(t *testing.T) {
	log := &recordingLog{}
	nan := math32.NaN()
	s, err := New(nil, box200, DefaultParams(), log,
		WithKind(geometry.Invalid),
		WithSize(-4),
		WithPosition(mgl32.Vec3{nan, 0, 0}),
		WithVelocity(mgl32.Vec3{0, math32.Inf(1), 0}),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Kind.Valid() || s.Size <= 0 || !s.Finite() {
		t.Fatalf("malformed options leaked into the shape: %v", s.Snapshot())
	}
	if !box200.Contains(s.Position, s.Size) {
		t.Errorf("fallback position %v outside the volume", s.Position)
	}
	if len(log.lines) != 4 {
		t.Errorf("logged %d lines, want 4: %q", len(log.lines), log.lines)
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	p := DefaultParams()
	p.MinSize = 0
	if _, err := New(nil, box200, p, nil); err == nil {
		t.Error("zero min size accepted")
	}
	p = DefaultParams()
	p.MaxSize = 1
	if _, err := New(nil, box200, p, nil); err == nil {
		t.Error("max size below min size accepted")
	}
	p = DefaultParams()
	p.Kinds = []geometry.Kind{geometry.Invalid}
	if _, err := New(nil, box200, p, nil); err == nil {
		t.Error("invalid kind pool accepted")
	}
}

func TestNewRendererFailure(t *testing.T) {
	r := &fakeRenderer{err: fmt.Errorf("no context")}
	if _, err := New(r, box200, DefaultParams(), nil); err == nil {
		t.Fatal("renderer error swallowed")
	}
}

func TestNewRecolorsWithoutExplicitColor(t *testing.T) {
	s := mustNew(t, WithPosition(mgl32.Vec3{}))
	c := s.Color()
	if !mgl32.FloatEqual(c.R, 0.5) || !mgl32.FloatEqual(c.G, 0.5) || !mgl32.FloatEqual(c.B, 0.5) {
		t.Fatalf("centre shape colour = %+v, want grey", c)
	}
}

func TestBounceScenario(t *testing.T) {
	s := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{99, 0, 0}), WithVelocity(mgl32.Vec3{5, 0, 0}))
	s.Bounce(box200)
	if s.Position[0] != 90 {
		t.Errorf("x = %v, want 90", s.Position[0])
	}
	if s.Velocity[0] != -5 {
		t.Errorf("vx = %v, want -5", s.Velocity[0])
	}
}

func TestBounceReflectsOnlyCrossingAxes(t *testing.T) {
	tests := []struct {
		name    string
		pos     mgl32.Vec3
		vel     mgl32.Vec3
		wantPos mgl32.Vec3
		wantVel mgl32.Vec3
	}{
		{"inside", mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, -2, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, -2, 3}},
		{"floor", mgl32.Vec3{0, -95, 0}, mgl32.Vec3{1, -2, 3}, mgl32.Vec3{0, -90, 0}, mgl32.Vec3{1, 2, 3}},
		{"back and right", mgl32.Vec3{120, 0, -100}, mgl32.Vec3{4, 1, -3}, mgl32.Vec3{90, 0, -90}, mgl32.Vec3{-4, 1, 3}},
		// Already heading inward: clamp without flipping.
		{"inward", mgl32.Vec3{-95, 0, 0}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{-90, 0, 0}, mgl32.Vec3{2, 0, 0}},
	}
	for _, tt := range tests {
		s := mustNew(t, WithSize(10), WithPosition(tt.pos), WithVelocity(tt.vel))
		s.Bounce(box200)
		if s.Position != tt.wantPos {
			t.Errorf("%s: position %v, want %v", tt.name, s.Position, tt.wantPos)
		}
		if s.Velocity != tt.wantVel {
			t.Errorf("%s: velocity %v, want %v", tt.name, s.Velocity, tt.wantVel)
		}
	}
}

func TestBounceAppliesWhileFrozen(t *testing.T) {
	s := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{150, 0, 0}), WithVelocity(mgl32.Vec3{1, 0, 0}))
	s.Frozen = true
	s.Bounce(box200)
	if s.Position[0] != 90 || s.Velocity[0] != -1 {
		t.Fatalf("frozen shape not clamped: pos %v vel %v", s.Position, s.Velocity)
	}
}

func TestBounceThinVolume(t *testing.T) {
	thin := bounds.Volume{Left: -5, Right: 5, Top: 100, Bottom: -100, Front: 100, Back: -100}
	s := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{3, 0, 0}))
	s.Bounce(thin)
	if s.Position[0] != 0 {
		t.Fatalf("x = %v, want the midplane", s.Position[0])
	}
}

func TestBoundaryContainmentOverManyTicks(t *testing.T) {
	for i := 0; i < 20; i++ {
		s := mustNew(t, WithVelocity(mgl32.Vec3{7.5, -13, 21}))
		for tick := 0; tick < 300; tick++ {
			if err := s.Animate(box200); err != nil {
				t.Fatal(err)
			}
			if !box200.Contains(s.Position, s.Size) {
				t.Fatalf("tick %d: %v escaped with size %v", tick, s.Position, s.Size)
			}
		}
	}
}

func TestFreezeInvariant(t *testing.T) {
	s := mustNew(t, WithPosition(mgl32.Vec3{10, 20, 30}), WithVelocity(mgl32.Vec3{1, 1, 1}),
		WithAngularVelocity(mgl32.Vec3{0.01, 0.02, 0.03}), WithSize(10))
	s.Frozen = true
	before := s.Snapshot()
	for i := 0; i < 50; i++ {
		if err := s.Animate(box200); err != nil {
			t.Fatal(err)
		}
	}
	after := s.Snapshot()
	if after.Position != before.Position || after.Rotation != before.Rotation {
		t.Fatalf("frozen shape moved: %v -> %v", before.Position, after.Position)
	}
	if after.Velocity != before.Velocity || after.AngularVelocity != before.AngularVelocity {
		t.Fatal("animate touched velocities of a frozen shape")
	}
	if after.Color != before.Color {
		t.Fatal("frozen shape was recoloured")
	}
}

func TestAnimateOrder(t *testing.T) {
	s := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{88, 0, 0}), WithVelocity(mgl32.Vec3{5, 0, 0}),
		WithRotation(mgl32.Vec3{}), WithAngularVelocity(mgl32.Vec3{0.5, 0, 0}))
	if err := s.Animate(box200); err != nil {
		t.Fatal(err)
	}
	// Moved to 93, clamped back to 90, reflected.
	if s.Position[0] != 90 || s.Velocity[0] != -5 {
		t.Fatalf("pos %v vel %v", s.Position, s.Velocity)
	}
	if s.Rotation[0] != 0.5 {
		t.Errorf("rotation %v", s.Rotation)
	}
	want := palette.ByPosition(s.Position, box200.Min(), box200.Extents())
	if s.Color() != want {
		t.Errorf("colour %+v does not match final position colour %+v", s.Color(), want)
	}
}

func TestAnimateReportsNonFinite(t *testing.T) {
	s := mustNew(t)
	s.Velocity = mgl32.Vec3{math32.NaN(), 0, 0}
	if err := s.Animate(box200); err != ErrNonFinite {
		t.Fatalf("Animate = %v, want ErrNonFinite", err)
	}
}

func TestCollideScenario(t *testing.T) {
	a := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{0, 0, 0}), WithVelocity(mgl32.Vec3{3, 0, 0}))
	b := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{15, 0, 0}), WithVelocity(mgl32.Vec3{-3, 0, 0}))
	if !a.Collide(b) {
		t.Fatal("overlapping shapes did not collide")
	}
	if !a.Velocity.ApproxEqual(mgl32.Vec3{-3, 0, 0}) {
		t.Errorf("a velocity %v, want (-3,0,0)", a.Velocity)
	}
	if !b.Velocity.ApproxEqual(mgl32.Vec3{3, 0, 0}) {
		t.Errorf("b velocity %v, want (3,0,0)", b.Velocity)
	}
}

func TestCollideExchangesSpeeds(t *testing.T) {
	a := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{0, 0, 0}), WithVelocity(mgl32.Vec3{1, 0, 0}))
	b := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{0, 12, 0}), WithVelocity(mgl32.Vec3{0, 0, -4}))
	a.Collide(b)
	if got := a.Velocity.Len(); !mgl32.FloatEqual(got, 4) {
		t.Errorf("a speed %v, want b's old speed 4", got)
	}
	if got := b.Velocity.Len(); !mgl32.FloatEqual(got, 1) {
		t.Errorf("b speed %v, want a's old speed 1", got)
	}
	if a.Velocity[1] >= 0 || b.Velocity[1] <= 0 {
		t.Errorf("shapes not separating along y: a %v b %v", a.Velocity, b.Velocity)
	}
}

func TestCollideSymmetric(t *testing.T) {
	build := func() (*Shape, *Shape) {
		a := mustNew(t, WithSize(8), WithPosition(mgl32.Vec3{1, 2, 3}), WithVelocity(mgl32.Vec3{1.5, -2, 0.5}))
		b := mustNew(t, WithSize(9), WithPosition(mgl32.Vec3{6, -3, 7}), WithVelocity(mgl32.Vec3{-0.25, 1, 3}))
		return a, b
	}
	a1, b1 := build()
	a1.Collide(b1)
	a2, b2 := build()
	b2.Collide(a2)
	if !a1.Velocity.ApproxEqual(a2.Velocity) || !b1.Velocity.ApproxEqual(b2.Velocity) {
		t.Fatalf("order dependent: a %v vs %v, b %v vs %v", a1.Velocity, a2.Velocity, b1.Velocity, b2.Velocity)
	}
}

func TestCollideIgnoresDistantAndCoincident(t *testing.T) {
	a := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{0, 0, 0}), WithVelocity(mgl32.Vec3{1, 0, 0}))
	b := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{20, 0, 0}), WithVelocity(mgl32.Vec3{-1, 0, 0}))
	if a.Collide(b) {
		t.Error("touching but not overlapping shapes collided")
	}
	c := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{0, 0, 0}), WithVelocity(mgl32.Vec3{0, 2, 0}))
	if a.Collide(c) {
		t.Error("coincident shapes collided")
	}
	if a.Velocity != (mgl32.Vec3{1, 0, 0}) || c.Velocity != (mgl32.Vec3{0, 2, 0}) {
		t.Error("coincident collision changed velocities")
	}
	if !c.Finite() || a.Collide(a) {
		t.Error("self collision")
	}
}

func TestSpeedPolicy(t *testing.T) {
	p := DefaultParams()
	p.Color = SpeedColor{MaxSpeed: 2}
	s, err := New(nil, box200, p, nil, WithVelocity(mgl32.Vec3{5, 0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	if want := palette.BySpeed(5, 2); s.Color() != want {
		t.Fatalf("colour %+v, want %+v", s.Color(), want)
	}
	s.SetPolicy(nil)
	s.Position = mgl32.Vec3{}
	s.Recolor(box200)
	if !mgl32.FloatEqual(s.Color().R, 0.5) {
		t.Errorf("nil policy did not fall back to position colour: %+v", s.Color())
	}
}

func TestPolicyByName(t *testing.T) {
	if p, err := PolicyByName("speed", 3); err != nil || p != (SpeedColor{MaxSpeed: 3}) {
		t.Errorf("speed policy = %v, %v", p, err)
	}
	if p, err := PolicyByName("position", 3); err != nil || p != (PositionColor{}) {
		t.Errorf("position policy = %v, %v", p, err)
	}
	if _, err := PolicyByName("rainbow", 3); err == nil {
		t.Error("unknown policy accepted")
	}
}

func TestWrap(t *testing.T) {
	s := mustNew(t, WithSize(10), WithPosition(mgl32.Vec3{111, -111, 0}))
	s.Wrap(box200)
	if s.Position[0] != -110 || s.Position[1] != 110 {
		t.Fatalf("wrapped to %v", s.Position)
	}
}

func TestMoveTo(t *testing.T) {
	s := mustNew(t)
	if err := s.MoveTo(mgl32.Vec3{1, 2, 3}); err != nil || s.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("MoveTo = %v, position %v", err, s.Position)
	}
	if err := s.MoveTo(mgl32.Vec3{math32.Inf(-1), 0, 0}); err == nil {
		t.Fatal("non-finite MoveTo accepted")
	}
	if s.Position != (mgl32.Vec3{1, 2, 3}) {
		t.Error("rejected MoveTo changed the position")
	}
}
