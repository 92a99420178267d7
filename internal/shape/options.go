package shape

import (
	"github.com/go-gl/mathgl/mgl32"

	"shapefield/internal/geometry"
	"shapefield/internal/palette"
	"shapefield/internal/rng"
)

// Option pins one property of a new shape instead of sampling it.
type Option func(*options)

type options struct {
	kind     *geometry.Kind
	knot     *[2]int
	size     *float32
	position *mgl32.Vec3
	rotation *mgl32.Vec3
	velocity *mgl32.Vec3
	angular  *mgl32.Vec3
	color    *palette.RGB
}

func WithKind(k geometry.Kind) Option { return func(o *options) { o.kind = &k } }

// WithKnot sets the winding numbers of a RandomKnot.
func WithKnot(p, q int) Option { return func(o *options) { o.knot = &[2]int{p, q} } }

func WithSize(size float32) Option { return func(o *options) { o.size = &size } }

func WithPosition(p mgl32.Vec3) Option { return func(o *options) { o.position = &p } }

func WithRotation(r mgl32.Vec3) Option { return func(o *options) { o.rotation = &r } }

func WithVelocity(v mgl32.Vec3) Option { return func(o *options) { o.velocity = &v } }

func WithAngularVelocity(v mgl32.Vec3) Option { return func(o *options) { o.angular = &v } }

// WithColor fixes the starting colour; without it the shape is recoloured at creation.
func WithColor(c palette.RGB) Option { return func(o *options) { o.color = &c } }

// sanitize drops malformed explicit values so they fall back to sampling.
func (o *options) sanitize(log Logger) {
	if o.kind != nil && !o.kind.Valid() {
		logf(log, "shape: ignoring kind %s, picking one at random", *o.kind)
		o.kind = nil
	}
	if o.size != nil && (!finite(*o.size) || *o.size <= 0) {
		logf(log, "shape: ignoring size %v, sampling instead", *o.size)
		o.size = nil
	}
	o.position = checkVec(log, "position", o.position)
	o.rotation = checkVec(log, "rotation", o.rotation)
	o.velocity = checkVec(log, "velocity", o.velocity)
	o.angular = checkVec(log, "angular velocity", o.angular)
	if o.color != nil {
		c := *o.color
		if !finite(c.R) || !finite(c.G) || !finite(c.B) {
			logf(log, "shape: ignoring colour %+v", c)
			o.color = nil
		} else {
			c = c.Clamped()
			o.color = &c
		}
	}
}

func checkVec(log Logger, name string, v *mgl32.Vec3) *mgl32.Vec3 {
	if v != nil && !finiteVec(*v) {
		logf(log, "shape: ignoring %s %v, sampling instead", name, *v)
		return nil
	}
	return v
}

func (o *options) kindOr(pool []geometry.Kind) geometry.Kind {
	if o.kind != nil {
		return *o.kind
	}
	if k := rng.Choice(pool); k.Valid() {
		return k
	}
	return rng.Choice(geometry.Kinds())
}

func logf(log Logger, format string, args ...any) {
	if log != nil {
		log.Logf(format, args...)
	}
}
