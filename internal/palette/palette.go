// Package palette holds the colour type shared by shapes and the renderer and
// the two recolour rules: position-normalised RGB and speed-driven HSL.
package palette

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a linear colour with components in [0, 1].
type RGB struct {
	R, G, B float32
}

// Clamped returns c with every component forced into [0, 1]. NaN becomes 0.
func (c RGB) Clamped() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// Shade returns the darker half-intensity colour used for self-illumination.
func (c RGB) Shade() RGB {
	return RGB{c.R / 2, c.G / 2, c.B / 2}
}

// Bytes converts to 8-bit channels.
func (c RGB) Bytes() (r, g, b uint8) {
	c = c.Clamped()
	return uint8(c.R*255 + 0.5), uint8(c.G*255 + 0.5), uint8(c.B*255 + 0.5)
}

func (c RGB) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func clamp01(v float32) float32 {
	if v > 0 {
		if v > 1 {
			return 1
		}
		return v
	}
	return 0
}

// ParseHex accepts #rgb or #rrggbb.
func ParseHex(s string) (RGB, error) {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// ByPosition maps p into the box that starts at corner and spans extents, and
// reads the normalised (x, y, z) as (r, g, b). Zero extents yield 0 on that axis.
func ByPosition(p, corner, extents mgl32.Vec3) RGB {
	local := p.Sub(corner)
	var n mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		if extents[axis] > 0 {
			n[axis] = local[axis] / extents[axis]
		}
	}
	return RGB{n[0], n[1], n[2]}.Clamped()
}

// BySpeed colours slow shapes violet and fast ones red. The speed fraction is
// clamped at maxSpeed+1 and mapped to hue 255*(1-fraction) at full saturation
// and half lightness.
func BySpeed(speed, maxSpeed float32) RGB {
	limit := maxSpeed + 1
	if limit <= 0 || math32.IsNaN(speed) {
		return fromColorful(colorful.Hsl(255, 1, 0.5))
	}
	fraction := math32.Min(math32.Abs(speed), limit) / limit
	hue := 255 * (1 - fraction)
	return fromColorful(colorful.Hsl(float64(hue), 1, 0.5))
}

func fromColorful(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{float32(c.R), float32(c.G), float32(c.B)}
}
