package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Circumradii relative to the shape size.
const (
	tetrahedronRadius  = 1.5
	octahedronRadius   = 1.3
	dodecahedronRadius = 1.2
	icosahedronRadius  = 1.2
)

var phi = (1 + math32.Sqrt(5)) / 2

var tetrahedronVertices = []mgl32.Vec3{
	{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1},
}

var tetrahedronFaces = [][3]int{
	{2, 1, 0}, {0, 3, 2}, {1, 3, 0}, {2, 3, 1},
}

var octahedronVertices = []mgl32.Vec3{
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
}

var octahedronFaces = [][3]int{
	{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
	{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
}

var icosahedronVertices = []mgl32.Vec3{
	{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
	{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
	{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
}

var icosahedronFaces = [][3]int{
	{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
	{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
	{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
	{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
}

var dodecahedronVertices = func() []mgl32.Vec3 {
	r := 1 / phi
	return []mgl32.Vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -r, -phi}, {0, -r, phi}, {0, r, -phi}, {0, r, phi},
		{-r, -phi, 0}, {-r, phi, 0}, {r, -phi, 0}, {r, phi, 0},
		{-phi, 0, -r}, {phi, 0, -r}, {-phi, 0, r}, {phi, 0, r},
	}
}()

// Twelve pentagons, three triangles each.
var dodecahedronFaces = [][3]int{
	{3, 11, 7}, {3, 7, 15}, {3, 15, 13},
	{7, 19, 17}, {7, 17, 6}, {7, 6, 15},
	{17, 4, 8}, {17, 8, 10}, {17, 10, 6},
	{8, 0, 16}, {8, 16, 2}, {8, 2, 10},
	{0, 12, 1}, {0, 1, 18}, {0, 18, 16},
	{6, 10, 2}, {6, 2, 13}, {6, 13, 15},
	{2, 16, 18}, {2, 18, 3}, {2, 3, 13},
	{18, 1, 9}, {18, 9, 11}, {18, 11, 3},
	{4, 14, 12}, {4, 12, 0}, {4, 0, 8},
	{11, 9, 5}, {11, 5, 19}, {11, 19, 7},
	{19, 5, 14}, {19, 14, 4}, {19, 4, 17},
	{1, 12, 14}, {1, 14, 5}, {1, 5, 9},
}

// polyhedron projects the vertices onto a sphere of the given radius and emits
// the faces. All these solids are convex and centered, so the face centroid is
// a valid outward reference.
func polyhedron(vertices []mgl32.Vec3, faces [][3]int, radius float32) Mesh {
	scaled := make([]mgl32.Vec3, len(vertices))
	for i, v := range vertices {
		scaled[i] = v.Normalize().Mul(radius)
	}
	b := newMeshBuilder(len(faces))
	for _, f := range faces {
		a, bb, c := scaled[f[0]], scaled[f[1]], scaled[f[2]]
		centroid := a.Add(bb).Add(c).Mul(1.0 / 3)
		b.tri(a, bb, c, centroid, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0.5, 1})
	}
	return b.mesh()
}

func buildTetrahedron(Params) Mesh {
	return polyhedron(tetrahedronVertices, tetrahedronFaces, tetrahedronRadius)
}

func buildOctahedron(Params) Mesh {
	return polyhedron(octahedronVertices, octahedronFaces, octahedronRadius)
}

func buildDodecahedron(Params) Mesh {
	return polyhedron(dodecahedronVertices, dodecahedronFaces, dodecahedronRadius)
}

func buildIcosahedron(Params) Mesh {
	return polyhedron(icosahedronVertices, icosahedronFaces, icosahedronRadius)
}

// buildBox makes a cube whose edge equals the shape height, size * sqrt(2).
func buildBox(Params) Mesh {
	h := math32.Sqrt2 / 2
	corners := [8]mgl32.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
	quads := [6][4]int{
		{0, 1, 2, 3}, {5, 4, 7, 6}, {4, 0, 3, 7},
		{1, 5, 6, 2}, {3, 2, 6, 7}, {4, 5, 1, 0},
	}
	b := newMeshBuilder(12)
	for _, q := range quads {
		a, bb, c, d := corners[q[0]], corners[q[1]], corners[q[2]], corners[q[3]]
		center := a.Add(bb).Add(c).Add(d).Mul(0.25)
		b.tri(a, bb, c, center, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{1, 1})
		b.tri(a, c, d, center, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1})
	}
	return b.mesh()
}
