// Package render is the raylib backend: the window, an orthographic camera looking
// down -Z at the bounding volume, one lit mesh per shape kind, ray picking and the
// input events the scene subscribes to.
package render

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"shapefield/internal/geometry"
	"shapefield/internal/graphics"
	"shapefield/internal/palette"
	"shapefield/internal/shape"
)

// clipBudget is how deep, in camera units, the volume may be. raylib clips 3D
// drawing at 1000 units, so larger viewports are drawn scaled down.
const clipBudget = 600

var background = rl.Black

var (
	_ graphics.Window  = (*Engine)(nil)
	_ shape.Renderer   = (*Engine)(nil)
	_ shape.Renderable = (*Handle)(nil)
)

// Options configure the window.
type Options struct {
	Width, Height int
	TargetFPS     int
	Title         string
}

// Handle is one drawable shape instance. Every handle of a kind shares the mesh.
type Handle struct {
	mesh     *cached
	size     float32
	position mgl32.Vec3
	rotation mgl32.Vec3
	color    palette.RGB
}

func (h *Handle) SetPose(position, rotation mgl32.Vec3) {
	h.position, h.rotation = position, rotation
}

func (h *Handle) SetColor(c palette.RGB) { h.color = c }

// transform is scale by size, rotate, then translate, all in view units.
func (h *Handle) transform(scale float32) rl.Matrix {
	s := h.size * scale
	m := rl.MatrixMultiply(rl.MatrixScale(s, s, s), rl.MatrixRotateXYZ(rl.NewVector3(h.rotation[0], h.rotation[1], h.rotation[2])))
	return rl.MatrixMultiply(m, rl.MatrixTranslate(h.position[0]*scale, h.position[1]*scale, h.position[2]*scale))
}

// Engine owns the window and everything drawn in it.
type Engine struct {
	camera   rl.Camera3D
	meshes   *meshCache
	lit      *litShader
	mtl      rl.Material
	handles  []*Handle
	overlays []func()
	fonts    []rl.Font

	width, height int
	scale         float32
	lightDir      [3]float32
	mouse         rl.Vector2
	hasMouse      bool

	// OnResize is called with the new size after a non-empty window resize.
	OnResize func(width, height int)
	// OnPointerMove is called when the mouse moves, in screen pixels.
	OnPointerMove func(x, y float32)
	// OnClick is called on a left button press.
	OnClick func()
	// Input runs first in every PollEvents. Returning true swallows the frame's
	// pointer input, e.g. while the terminal is open.
	Input func() bool

	log shape.Logger
}

// Open creates the window and GPU state. Call Close when done.
func Open(opts Options, log shape.Logger) *Engine {
	title := opts.Title
	if title == "" {
		title = "shapefield"
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), title)
	rl.SetExitKey(rl.KeyNull) // ESC toggles the terminal; close via window button
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}

	e := &Engine{meshes: newMeshCache(), log: log}
	e.mtl = rl.LoadMaterialDefault()
	if e.lit = newLitShader(); e.lit != nil {
		e.mtl.Shader = e.lit.shader
	} else {
		e.logf("render: lit shader failed to compile, using raylib default")
	}
	e.resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	return e
}

// Close frees GPU resources and closes the window.
func (e *Engine) Close() {
	e.handles = nil
	for _, f := range e.fonts {
		rl.UnloadFont(f)
	}
	e.fonts = nil
	e.meshes.unload()
	if e.lit != nil {
		e.lit.unload()
	}
	rl.CloseWindow()
}

// AddOverlay registers a 2D draw call made after the 3D pass, in order.
func (e *Engine) AddOverlay(draw func()) {
	e.overlays = append(e.overlays, draw)
}

func (e *Engine) Viewport() (int, int) { return e.width, e.height }

// Create returns a handle drawing the mesh for p at the given size.
func (e *Engine) Create(p geometry.Params, size float32) (shape.Renderable, error) {
	if size <= 0 {
		return nil, errors.New("render: size must be positive")
	}
	m, err := e.meshes.get(p)
	if err != nil {
		return nil, err
	}
	h := &Handle{mesh: m, size: size, color: palette.RGB{R: 1, G: 1, B: 1}}
	e.handles = append(e.handles, h)
	return h, nil
}

// Intersect casts a ray through the screen point and returns the nearest handle
// it hits, or nil.
func (e *Engine) Intersect(x, y float32) shape.Renderable {
	ray := rl.GetScreenToWorldRay(rl.NewVector2(x, y), e.camera)
	var best *Handle
	var bestDist float32
	for _, h := range e.handles {
		center := rl.NewVector3(h.position[0]*e.scale, h.position[1]*e.scale, h.position[2]*e.scale)
		reach := h.mesh.radius * h.size * e.scale
		if !rl.GetRayCollisionSphere(ray, center, reach).Hit {
			continue
		}
		hit := rl.GetRayCollisionMesh(ray, h.mesh.mesh, h.transform(e.scale))
		if hit.Hit && (best == nil || hit.Distance < bestDist) {
			best, bestDist = h, hit.Distance
		}
	}
	if best == nil {
		return nil
	}
	return best
}

func (e *Engine) SetPointerCursor(pointing bool) {
	if pointing {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
		return
	}
	rl.SetMouseCursor(rl.MouseCursorDefault)
}

func (e *Engine) ShouldClose() bool { return rl.WindowShouldClose() }

// PollEvents dispatches resize, pointer and click events for this frame.
func (e *Engine) PollEvents() {
	if rl.IsWindowResized() {
		w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
		if w > 0 && h > 0 {
			e.resize(w, h)
			if e.OnResize != nil {
				e.OnResize(w, h)
			}
		}
	}
	if e.Input != nil && e.Input() {
		return
	}
	m := rl.GetMousePosition()
	if !e.hasMouse || m != e.mouse {
		e.mouse, e.hasMouse = m, true
		if e.OnPointerMove != nil {
			e.OnPointerMove(m.X, m.Y)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && e.OnClick != nil {
		e.OnClick()
	}
}

// Present draws every handle and the overlays. raylib waits for the next frame in EndDrawing.
func (e *Engine) Present() {
	rl.BeginDrawing()
	rl.ClearBackground(background)

	rl.BeginMode3D(e.camera)
	if e.lit != nil {
		pos := e.camera.Position
		e.lit.setFrame([3]float32{pos.X, pos.Y, pos.Z}, e.lightDir)
	}
	albedo := e.mtl.GetMap(rl.MapAlbedo)
	for _, h := range e.handles {
		if albedo != nil {
			albedo.Color = toColor(h.color)
		}
		if e.lit != nil {
			e.lit.setEmissive(h.color.Shade())
		}
		rl.DrawMesh(h.mesh.mesh, e.mtl, h.transform(e.scale))
	}
	rl.EndMode3D()

	for _, draw := range e.overlays {
		draw()
	}
	rl.EndDrawing()
}

// Stats reports how many handles and distinct meshes are loaded.
func (e *Engine) Stats() (handles, meshes int) {
	return len(e.handles), e.meshes.len()
}

// resize fits the orthographic camera to a width x height viewport. The volume
// depth follows the viewport, so the view scale shrinks for large windows to keep
// the back plane inside the far clip distance.
func (e *Engine) resize(width, height int) {
	e.width, e.height = width, height
	depth := float32(width+height) / 2
	e.scale = 1
	if depth > clipBudget {
		e.scale = clipBudget / depth
	}
	e.camera = rl.Camera3D{
		Position:   rl.NewVector3(0, 0, depth*e.scale),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(height) * e.scale,
		Projection: rl.CameraOrthographic,
	}
	// light from the top-left corner on the camera side
	dir := mgl32.Vec3{-float32(width) / 2, float32(height) / 2, depth}.Normalize()
	e.lightDir = [3]float32{dir[0], dir[1], dir[2]}
	e.logf("render: viewport %dx%d, view scale %.3f", width, height, e.scale)
}

func toColor(c palette.RGB) rl.Color {
	r, g, b := c.Bytes()
	return rl.NewColor(r, g, b, 255)
}

func (e *Engine) logf(format string, args ...any) {
	if e.log != nil {
		e.log.Logf(format, args...)
	}
}
