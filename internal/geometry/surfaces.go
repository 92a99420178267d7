package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereWidthSegments  = 20
	sphereHeightSegments = 16

	torusRadius          = 0.75
	torusTube            = 0.25
	torusRadialSegments  = 12
	torusTubularSegments = 24

	knotRadius               = 2.0 / 3
	knotTube                 = 1.0 / 6
	knotTubularSegments      = 64
	randomKnotTube           = 1.0 / 8
	randomKnotTubularSegment = 128
	knotRadialSegments       = 12

	latheProfilePoints = 64
	latheSegments      = 24
	latheStep          = 0.035
)

func buildSphere(Params) Mesh {
	b := newMeshBuilder(sphereWidthSegments * sphereHeightSegments * 2)
	b.grid(sphereHeightSegments, sphereWidthSegments, func(i, j int) gridPoint {
		theta := angle(i, sphereHeightSegments, 0.5)
		ph := angle(j, sphereWidthSegments, 1)
		p := mgl32.Vec3{
			-math32.Cos(ph) * math32.Sin(theta),
			math32.Cos(theta),
			math32.Sin(ph) * math32.Sin(theta),
		}
		return gridPoint{pos: p, outward: p}
	})
	return b.mesh()
}

func buildTorus(Params) Mesh {
	b := newMeshBuilder(torusRadialSegments * torusTubularSegments * 2)
	b.grid(torusTubularSegments, torusRadialSegments, func(i, j int) gridPoint {
		u := angle(i, torusTubularSegments, 1)
		v := angle(j, torusRadialSegments, 1)
		ring := mgl32.Vec3{torusRadius * math32.Cos(u), torusRadius * math32.Sin(u), 0}
		p := mgl32.Vec3{
			(torusRadius + torusTube*math32.Cos(v)) * math32.Cos(u),
			(torusRadius + torusTube*math32.Cos(v)) * math32.Sin(u),
			torusTube * math32.Sin(v),
		}
		return gridPoint{pos: p, outward: p.Sub(ring)}
	})
	return b.mesh()
}

func buildKnot(p Params) Mesh {
	return torusKnot(p.P, p.Q, knotTube, knotTubularSegments)
}

func buildRandomKnot(p Params) Mesh {
	return torusKnot(p.P, p.Q, randomKnotTube, randomKnotTubularSegment)
}

// knotCurve is the (p, q) torus knot centre line.
func knotCurve(u float32, p, q int) mgl32.Vec3 {
	quOverP := float32(q) / float32(p) * u
	cs := math32.Cos(quOverP)
	return mgl32.Vec3{
		knotRadius * (2 + cs) * 0.5 * math32.Cos(u),
		knotRadius * (2 + cs) * 0.5 * math32.Sin(u),
		knotRadius * math32.Sin(quOverP) * 0.5,
	}
}

// torusKnot sweeps a tube along the knot curve using a frame built from the
// curve tangent and the sum of neighbouring points.
func torusKnot(p, q int, tube float32, tubular int) Mesh {
	b := newMeshBuilder(tubular * knotRadialSegments * 2)
	b.grid(tubular, knotRadialSegments, func(i, j int) gridPoint {
		u := angle(i, tubular, float32(p))
		p1 := knotCurve(u, p, q)
		p2 := knotCurve(u+0.01, p, q)
		t := p2.Sub(p1)
		n := p2.Add(p1)
		bn := t.Cross(n).Normalize()
		n = bn.Cross(t).Normalize()
		v := angle(j, knotRadialSegments, 1)
		cx := -tube * math32.Cos(v)
		cy := tube * math32.Sin(v)
		pos := p1.Add(n.Mul(cx)).Add(bn.Mul(cy))
		return gridPoint{pos: pos, outward: pos.Sub(p1)}
	})
	return b.mesh()
}

// latheProfile is the wavy vase outline revolved by buildLathe.
func latheProfile() []mgl32.Vec2 {
	pts := make([]mgl32.Vec2, latheProfilePoints)
	for i := range pts {
		fi := float32(i)
		x := 0.75 + 0.25*math32.Sin(fi*0.18)*math32.Sin(fi*0.1)
		y := (fi - latheProfilePoints/2) * latheStep
		pts[i] = mgl32.Vec2{x, y}
	}
	return pts
}

func buildLathe(Params) Mesh {
	profile := latheProfile()
	b := newMeshBuilder((len(profile) - 1) * latheSegments * 2)
	b.grid(len(profile)-1, latheSegments, func(i, j int) gridPoint {
		a := angle(j, latheSegments, 1)
		pt := profile[i]
		pos := mgl32.Vec3{pt[0] * math32.Sin(a), pt[1], pt[0] * math32.Cos(a)}
		return gridPoint{pos: pos, outward: mgl32.Vec3{pos[0], 0, pos[2]}}
	})
	return b.mesh()
}
