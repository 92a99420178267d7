package render

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Text draws overlay text. If a font is set (SetFont), text is drawn with that font;
// otherwise raylib's default (pixel) font is used.
type Text struct {
	font rl.Font
}

// SetFont sets the font used by Draw and Measure. Zero texture ID = use raylib default.
func (t *Text) SetFont(font rl.Font) {
	t.font = font
}

// Draw draws s with its top-left corner at (x, y).
func (t *Text) Draw(s string, x, y, size int32, color rl.Color) {
	if t.font.Texture.ID == 0 {
		rl.DrawText(s, x, y, size, color)
		return
	}
	rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// Measure returns the width of s in pixels.
func (t *Text) Measure(s string, size int32) int32 {
	if t.font.Texture.ID == 0 {
		return rl.MeasureText(s, size)
	}
	return int32(rl.MeasureTextEx(t.font, s, float32(size), 1).X)
}

// LoadFont loads a TTF/OTF font from path for the overlays. The engine owns it and
// unloads it on Close. Call after Open.
func (e *Engine) LoadFont(path string) (rl.Font, error) {
	f := rl.LoadFont(path)
	if f.Texture.ID == 0 {
		return rl.Font{}, os.ErrNotExist
	}
	e.fonts = append(e.fonts, f)
	return f, nil
}
