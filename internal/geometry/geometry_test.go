package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestEveryKindBuilds(t *testing.T) {
	for _, k := range Kinds() {
		m, err := Build(Params{Kind: k, P: 3, Q: 5})
		if err != nil {
			t.Fatalf("Build(%s): %v", k, err)
		}
		if m.TriangleCount() == 0 {
			t.Fatalf("Build(%s) produced no triangles", k)
		}
		if len(m.Normals) != len(m.Vertices) {
			t.Errorf("%s: %d normals for %d vertex floats", k, len(m.Normals), len(m.Vertices))
		}
		if len(m.Texcoords)/2 != m.VertexCount() {
			t.Errorf("%s: %d texcoords for %d vertices", k, len(m.Texcoords)/2, m.VertexCount())
		}
		for i := 0; i < len(m.Normals); i += 3 {
			n := mgl32.Vec3{m.Normals[i], m.Normals[i+1], m.Normals[i+2]}
			if !mgl32.FloatEqualThreshold(n.Len(), 1, 1e-4) {
				t.Fatalf("%s: normal %d has length %v", k, i/3, n.Len())
			}
		}
	}
}

func TestBuildInvalid(t *testing.T) {
	if _, err := Build(Params{}); err == nil {
		t.Fatal("Build(Invalid) succeeded")
	}
	if _, err := Build(Params{Kind: kindCount}); err == nil {
		t.Fatal("Build(out of range) succeeded")
	}
}

func TestPolyhedronTriangleCounts(t *testing.T) {
	tests := []struct {
		kind      Kind
		triangles int
		radius    float32
	}{
		{Tetrahedron, 4, tetrahedronRadius},
		{Octahedron, 8, octahedronRadius},
		{Icosahedron, 20, icosahedronRadius},
		{Dodecahedron, 36, dodecahedronRadius},
		{Box, 12, 1.2247449}, // half-diagonal of a sqrt(2) cube
	}
	for _, tt := range tests {
		m, err := Build(Params{Kind: tt.kind})
		if err != nil {
			t.Fatal(err)
		}
		if got := m.TriangleCount(); got != tt.triangles {
			t.Errorf("%s: %d triangles, want %d", tt.kind, got, tt.triangles)
		}
		if got := m.Radius(); !mgl32.FloatEqualThreshold(got, tt.radius, 1e-4) {
			t.Errorf("%s: radius %v, want %v", tt.kind, got, tt.radius)
		}
	}
}

// Convex solids centered on the origin must have every face normal pointing
// away from the centre.
func TestConvexNormalsPointOutward(t *testing.T) {
	for _, k := range []Kind{Box, Tetrahedron, Octahedron, Dodecahedron, Icosahedron, Sphere} {
		m, _ := Build(Params{Kind: k})
		for i := 0; i < len(m.Vertices); i += 9 {
			var c mgl32.Vec3
			for v := 0; v < 3; v++ {
				c = c.Add(mgl32.Vec3{m.Vertices[i+3*v], m.Vertices[i+3*v+1], m.Vertices[i+3*v+2]})
			}
			n := mgl32.Vec3{m.Normals[i], m.Normals[i+1], m.Normals[i+2]}
			if n.Dot(c) <= 0 {
				t.Fatalf("%s: triangle %d faces inward", k, i/9)
			}
		}
	}
}

func TestKnotParams(t *testing.T) {
	if got := (Params{Kind: Knot, P: 7, Q: 7}).Normalized(); got.P != 2 || got.Q != 3 {
		t.Errorf("Knot normalized to p=%d q=%d, want 2,3", got.P, got.Q)
	}
	if got := (Params{Kind: RandomKnot, P: 0, Q: 12}).Normalized(); got.P != 1 || got.Q != 8 {
		t.Errorf("RandomKnot clamp = p=%d q=%d, want 1,8", got.P, got.Q)
	}
	if got := (Params{Kind: Torus, P: 4, Q: 4}).Key(); got != "torus" {
		t.Errorf("Torus key = %q", got)
	}
	if got := (Params{Kind: RandomKnot, P: 3, Q: 5}).Key(); got != "random_knot/3/5" {
		t.Errorf("RandomKnot key = %q", got)
	}

	a, _ := Build(Params{Kind: RandomKnot, P: 2, Q: 3})
	b, _ := Build(Params{Kind: RandomKnot, P: 3, Q: 7})
	if a.TriangleCount() != b.TriangleCount() {
		t.Fatal("knot tessellation should not depend on winding numbers")
	}
	same := true
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different winding numbers produced identical knots")
	}
}

func TestLatheProfile(t *testing.T) {
	pts := latheProfile()
	if len(pts) != latheProfilePoints {
		t.Fatalf("%d profile points", len(pts))
	}
	for i, p := range pts {
		if p[0] < 0.5 || p[0] > 1 {
			t.Errorf("profile point %d radius %v outside [0.5, 1]", i, p[0])
		}
	}
	if pts[0][1] >= pts[len(pts)-1][1] {
		t.Error("profile should rise monotonically")
	}
	if math32.Abs(pts[latheProfilePoints/2][1]) > 1e-6 {
		t.Errorf("middle profile point at y=%v, want 0", pts[latheProfilePoints/2][1])
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"sphere":         Sphere,
		"Ball":           Sphere,
		" cube ":         Box,
		"d6":             Box,
		"pyramid":        Tetrahedron,
		"d8":             Octahedron,
		"d12":            Dodecahedron,
		"d20":            Icosahedron,
		"donut":          Torus,
		"pretzel":        Knot,
		"random knot":    RandomKnot,
		"random_knot":    RandomKnot,
		"random pretzel": RandomKnot,
		"vase":           Lathe,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		if err != nil {
			t.Errorf("ParseKind(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKind(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseKind("plane"); err == nil {
		t.Error("ParseKind(plane) succeeded")
	}
	if _, err := ParseKind("invalid"); err == nil {
		t.Error("ParseKind(invalid) succeeded")
	}
}

func TestKindText(t *testing.T) {
	var k Kind
	if err := k.UnmarshalText([]byte("d20")); err != nil {
		t.Fatal(err)
	}
	text, err := k.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "icosahedron" {
		t.Errorf("MarshalText = %q, want canonical name", text)
	}
	if _, err := Invalid.MarshalText(); err == nil {
		t.Error("Invalid.MarshalText succeeded")
	}
	if len(Kinds()) != int(kindCount)-1 {
		t.Errorf("Kinds() has %d entries", len(Kinds()))
	}
}
