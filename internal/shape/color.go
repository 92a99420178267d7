package shape

import (
	"fmt"

	"shapefield/internal/bounds"
	"shapefield/internal/palette"
)

// ColorPolicy derives a shape's colour once per tick. Only one policy is active
// per shape; the scene installs the same one on every shape.
type ColorPolicy interface {
	Color(s *Shape, vol bounds.Volume) palette.RGB
}

// PositionColor reads the shape's normalised position in the volume as RGB.
type PositionColor struct{}

func (PositionColor) Color(s *Shape, vol bounds.Volume) palette.RGB {
	return palette.ByPosition(s.Position, vol.Min(), vol.Extents())
}

// SpeedColor maps linear speed to an HSL hue.
type SpeedColor struct {
	MaxSpeed float32
}

func (p SpeedColor) Color(s *Shape, _ bounds.Volume) palette.RGB {
	return palette.BySpeed(s.Velocity.Len(), p.MaxSpeed)
}

// Policy names accepted by PolicyByName.
const (
	PolicyPosition = "position"
	PolicySpeed    = "speed"
)

// PolicyByName returns the colour policy for a configuration name.
func PolicyByName(name string, maxSpeed float32) (ColorPolicy, error) {
	switch name {
	case PolicyPosition, "":
		return PositionColor{}, nil
	case PolicySpeed:
		return SpeedColor{MaxSpeed: maxSpeed}, nil
	default:
		return nil, fmt.Errorf("unknown recolor policy %q", name)
	}
}
