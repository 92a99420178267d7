package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"shapefield/internal/render"
	"shapefield/internal/scene"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the runtime overlays: FPS and heap in the top-right corner, shape
// count and the picked shape in the top-left. The flags live on the scene config
// so the fps and memalloc commands and config --save see the same values.
type Debug struct {
	scn          *scene.Scene
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
	text         render.Text
}

// New returns a Debug overlay reading its flags from scn.Config.
func New(scn *scene.Scene) *Debug {
	return &Debug{scn: scn}
}

// SetFont sets the overlay font (e.g. same as the terminal). Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) {
	d.text.SetFont(font)
}

// Draw renders any enabled debug overlays. Call after the 3D pass.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	cfg := &d.scn.Config
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if cfg.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if cfg.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if cfg.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}

	if cfg.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		d.drawRight(d.lastMemText, screenW, y)
	}

	if !cfg.ShowFPS && !cfg.ShowMemAlloc {
		return
	}
	left := int32(padding)
	status := "running"
	if !d.scn.Loop.Running() {
		status = "stopped"
	}
	d.text.Draw(fmt.Sprintf("Shapes: %d (%s)", len(d.scn.World.Shapes), status), left, padding, fontSize, rl.Green)
	if p := d.scn.Picked(); p != nil {
		d.text.Draw(p.String(), left, padding+lineHeight, fontSize, rl.Green)
	}
}

func (d *Debug) drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := d.text.Measure(text, fontSize)
	d.text.Draw(text, screenW-w-padding, y, fontSize, rl.Green)
}
