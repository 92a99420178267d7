package bounds

import "github.com/go-gl/mathgl/mgl32"

// Volume is the axis-aligned box the shapes live in. It is centered at the origin
// and rebuilt from the viewport whenever the window changes size.
// X runs Left..Right, Y runs Bottom..Top and Z runs Back..Front.
type Volume struct {
	Left, Right float32
	Top, Bottom float32
	Front, Back float32
}

// FromViewport builds the volume for a width x height viewport.
// Depth is not an input: it is the mean of width and height.
func FromViewport(width, height int) Volume {
	w := float32(width)
	h := float32(height)
	d := (w + h) / 2
	return Volume{
		Left:   -w / 2,
		Right:  w / 2,
		Top:    h / 2,
		Bottom: -h / 2,
		Front:  d / 2,
		Back:   -d / 2,
	}
}

func (v Volume) Width() float32  { return v.Right - v.Left }
func (v Volume) Height() float32 { return v.Top - v.Bottom }
func (v Volume) Depth() float32  { return v.Front - v.Back }

// Min returns the (left, bottom, back) corner.
func (v Volume) Min() mgl32.Vec3 { return mgl32.Vec3{v.Left, v.Bottom, v.Back} }

// Max returns the (right, top, front) corner.
func (v Volume) Max() mgl32.Vec3 { return mgl32.Vec3{v.Right, v.Top, v.Front} }

// Extents returns (width, height, depth).
func (v Volume) Extents() mgl32.Vec3 { return mgl32.Vec3{v.Width(), v.Height(), v.Depth()} }

func (v Volume) Center() mgl32.Vec3 { return v.Min().Add(v.Max()).Mul(0.5) }

// Contains reports whether p lies inside the volume shrunk by margin on every side.
func (v Volume) Contains(p mgl32.Vec3, margin float32) bool {
	lo, hi := v.Min(), v.Max()
	for axis := 0; axis < 3; axis++ {
		if p[axis] < lo[axis]+margin || p[axis] > hi[axis]-margin {
			return false
		}
	}
	return true
}

// IsEmpty reports a degenerate volume (zero or negative extent on some axis),
// which happens while a window is minimised.
func (v Volume) IsEmpty() bool {
	return v.Width() <= 0 || v.Height() <= 0 || v.Depth() <= 0
}
