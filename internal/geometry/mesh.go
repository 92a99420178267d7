// Package geometry generates the triangle meshes for every shape kind.
//
// Meshes are built for a shape of size 1 and centered on the origin; the renderer
// scales them by the shape's size. Each triangle carries its own flat normal, so
// vertices are not shared and Mesh can be handed to a GPU upload as-is.
package geometry

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Params is everything needed to build one mesh. P and Q are the winding numbers
// of a RandomKnot and are ignored by the other kinds.
type Params struct {
	Kind Kind
	P, Q int
}

const (
	knotP        = 2
	knotQ        = 3
	minKnotTurns = 1
	maxKnotTurns = 8
)

// Normalized fills in fixed winding numbers for Knot, clamps RandomKnot's into
// [1, 8] and clears them for every other kind.
func (p Params) Normalized() Params {
	switch p.Kind {
	case Knot:
		p.P, p.Q = knotP, knotQ
	case RandomKnot:
		p.P = clampTurns(p.P)
		p.Q = clampTurns(p.Q)
	default:
		p.P, p.Q = 0, 0
	}
	return p
}

func clampTurns(n int) int {
	if n < minKnotTurns {
		return minKnotTurns
	}
	if n > maxKnotTurns {
		return maxKnotTurns
	}
	return n
}

// Key identifies the mesh Params produce; equal keys mean identical meshes.
func (p Params) Key() string {
	p = p.Normalized()
	if p.Kind == Knot || p.Kind == RandomKnot {
		return fmt.Sprintf("%s/%d/%d", p.Kind, p.P, p.Q)
	}
	return p.Kind.String()
}

// Mesh is a non-indexed triangle list: three vertices per triangle.
type Mesh struct {
	Vertices  []float32 // x, y, z
	Normals   []float32 // x, y, z, unit length
	Texcoords []float32 // u, v
}

func (m Mesh) VertexCount() int   { return len(m.Vertices) / 3 }
func (m Mesh) TriangleCount() int { return len(m.Vertices) / 9 }

// Radius returns the distance from the origin to the farthest vertex.
func (m Mesh) Radius() float32 {
	var r float32
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		d := mgl32.Vec3{m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]}.Len()
		if d > r {
			r = d
		}
	}
	return r
}

type buildFunc func(p Params) Mesh

// builders is indexed by Kind; the assertion below fails to compile when a kind
// is added without a builder slot.
var builders = [...]buildFunc{
	Invalid:      nil,
	Sphere:       buildSphere,
	Box:          buildBox,
	Tetrahedron:  buildTetrahedron,
	Octahedron:   buildOctahedron,
	Dodecahedron: buildDodecahedron,
	Icosahedron:  buildIcosahedron,
	Torus:        buildTorus,
	Knot:         buildKnot,
	RandomKnot:   buildRandomKnot,
	Lathe:        buildLathe,
}

var _ = [1]struct{}{}[len(builders)-int(kindCount)]

// Build returns the unit-size mesh for p.
func Build(p Params) (Mesh, error) {
	if !p.Kind.Valid() || builders[p.Kind] == nil {
		return Mesh{}, fmt.Errorf("build mesh: %s has no geometry", p.Kind)
	}
	return builders[p.Kind](p.Normalized()), nil
}

// meshBuilder accumulates flat-shaded triangles.
type meshBuilder struct {
	m Mesh
}

func newMeshBuilder(triangles int) *meshBuilder {
	return &meshBuilder{m: Mesh{
		Vertices:  make([]float32, 0, triangles*9),
		Normals:   make([]float32, 0, triangles*9),
		Texcoords: make([]float32, 0, triangles*6),
	}}
}

// tri appends triangle abc. outward is any vector pointing away from the solid at
// this triangle; the winding is flipped when the face normal disagrees with it.
// Degenerate triangles (grid poles) are dropped.
func (b *meshBuilder) tri(a, bb, c, outward mgl32.Vec3, ua, ub, uc mgl32.Vec2) {
	n := bb.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-6 {
		return
	}
	n = n.Normalize()
	if n.Dot(outward) < 0 {
		bb, c = c, bb
		ub, uc = uc, ub
		n = n.Mul(-1)
	}
	for _, v := range [3]mgl32.Vec3{a, bb, c} {
		b.m.Vertices = append(b.m.Vertices, v[0], v[1], v[2])
		b.m.Normals = append(b.m.Normals, n[0], n[1], n[2])
	}
	b.m.Texcoords = append(b.m.Texcoords, ua[0], ua[1], ub[0], ub[1], uc[0], uc[1])
}

// gridPoint is a surface sample plus the outward reference used for winding.
type gridPoint struct {
	pos, outward mgl32.Vec3
}

// grid stitches a (rows+1) x (cols+1) lattice of samples into two triangles per cell.
func (b *meshBuilder) grid(rows, cols int, at func(i, j int) gridPoint) {
	pts := make([]gridPoint, (rows+1)*(cols+1))
	for i := 0; i <= rows; i++ {
		for j := 0; j <= cols; j++ {
			pts[i*(cols+1)+j] = at(i, j)
		}
	}
	uv := func(i, j int) mgl32.Vec2 {
		return mgl32.Vec2{float32(j) / float32(cols), float32(i) / float32(rows)}
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			p00 := pts[i*(cols+1)+j]
			p01 := pts[i*(cols+1)+j+1]
			p10 := pts[(i+1)*(cols+1)+j]
			p11 := pts[(i+1)*(cols+1)+j+1]
			out := p00.outward.Add(p01.outward).Add(p10.outward).Add(p11.outward)
			b.tri(p00.pos, p10.pos, p11.pos, out, uv(i, j), uv(i+1, j), uv(i+1, j+1))
			b.tri(p00.pos, p11.pos, p01.pos, out, uv(i, j), uv(i+1, j+1), uv(i, j+1))
		}
	}
}

func (b *meshBuilder) mesh() Mesh { return b.m }

func angle(i, n int, turns float32) float32 {
	return float32(i) / float32(n) * turns * 2 * math32.Pi
}
