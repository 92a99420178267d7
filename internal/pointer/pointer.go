// Package pointer tracks which shape is under the mouse. Hovering a shape picks
// it: the shape is frozen and highlighted until the pointer leaves it.
package pointer

import (
	"fmt"

	"shapefield/internal/palette"
	"shapefield/internal/shape"
)

// ClickPolicy selects what a click does.
type ClickPolicy string

const (
	// ClickBoost multiplies the picked shape's velocity and lets it go.
	ClickBoost ClickPolicy = "boost"
	// ClickToggle starts or stops the animation loop.
	ClickToggle ClickPolicy = "toggle"
)

func (p ClickPolicy) Valid() bool { return p == ClickBoost || p == ClickToggle }

// ParseClickPolicy accepts "boost" and "toggle". Empty means boost.
func ParseClickPolicy(s string) (ClickPolicy, error) {
	if s == "" {
		return ClickBoost, nil
	}
	p := ClickPolicy(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown click policy %q", s)
	}
	return p, nil
}

// Toggler is the animation loop as seen by a toggle click.
type Toggler interface {
	Toggle() bool
}

// DefaultHighlight is the colour of a picked shape.
var DefaultHighlight = palette.RGB{R: 0, G: 0x80 / 255.0, B: 1}

// Tracker is the pick state machine. Idle when Picked() is nil.
type Tracker struct {
	Highlight   palette.RGB
	Policy      ClickPolicy
	BoostFactor float32
	Loop        Toggler

	picked *shape.Shape
	saved  palette.RGB
	log    shape.Logger
}

// NewTracker returns an idle tracker with the boost policy.
func NewTracker(loop Toggler, log shape.Logger) *Tracker {
	return &Tracker{
		Highlight:   DefaultHighlight,
		Policy:      ClickBoost,
		BoostFactor: 4,
		Loop:        loop,
		log:         log,
	}
}

func (t *Tracker) Picked() *shape.Shape { return t.picked }

// SavedColor is the picked shape's colour from before the highlight.
func (t *Tracker) SavedColor() palette.RGB { return t.saved }

// Hover feeds the nearest shape under the pointer, or nil for a miss.
// Hovering the already picked shape changes nothing. It reports whether the pick changed.
func (t *Tracker) Hover(hit *shape.Shape) bool {
	if hit == t.picked {
		return false
	}
	t.Release()
	if hit == nil {
		return true
	}
	t.picked = hit
	t.saved = hit.Color()
	hit.Frozen = true
	hit.SetColor(t.Highlight)
	t.logf("pointer: picked %s", hit)
	return true
}

// Release returns the picked shape to its saved colour and unfreezes it.
func (t *Tracker) Release() {
	if t.picked == nil {
		return
	}
	s := t.picked
	t.picked = nil
	s.Frozen = false
	s.SetColor(t.saved)
	t.logf("pointer: released %s", s)
}

// Click applies the click policy. Under ClickBoost a click with nothing picked
// does nothing. It reports whether anything changed.
func (t *Tracker) Click() bool {
	switch t.Policy {
	case ClickToggle:
		if t.Loop == nil {
			return false
		}
		running := t.Loop.Toggle()
		t.logf("pointer: click toggled loop, running=%t", running)
		return true
	default:
		s := t.picked
		if s == nil {
			return false
		}
		s.Velocity = s.Velocity.Mul(t.BoostFactor)
		s.Frozen = false
		t.logf("pointer: boosted %s to speed %.2f", s, s.Velocity.Len())
		return true
	}
}

// Forget drops the pick without touching the shape, for teardown.
func (t *Tracker) Forget() { t.picked = nil }

func (t *Tracker) logf(format string, args ...any) {
	if t.log != nil {
		t.log.Logf(format, args...)
	}
}
