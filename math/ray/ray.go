// SPDX-License-Identifier: GPL-2.0-or-later

// Package ray holds the occlusion tests used by the visibility generator.
// They are not exact: every test carries some slack so that sample points
// lying on shared quadblock edges still register as hits.
package ray

import (
	"github.com/chewxy/math32"

	qmath "ctrvis/math"
	"ctrvis/math/bbox"
	"ctrvis/math/vec"
)

const (
	// InsideBox is returned as tMin by IntersectBox when the origin is
	// already inside the box.
	InsideBox float32 = -1

	// Origins within this distance of a box count as inside it.
	boxInsideEpsilon = 0.01

	// Direction components are kept at least this far from zero before
	// taking their reciprocal.
	minDirComponent = 1e-8

	// Barycentric slack for triangle hits.
	TriangleTolerance = 0.05

	// Triangle hits slightly behind the origin are still accepted.
	TriangleFailsafe = 0.01

	parallelEpsilon = 1e-8
)

type Ray struct {
	Origin vec.Vec3
	Dir    vec.Vec3
}

// New returns a ray starting at from with a normalized direction towards to.
// The second return value is the distance between both points.
func New(from, to vec.Vec3) (Ray, float32) {
	d := vec.Sub(to, from)
	l := d.Length()
	if l == 0 {
		return Ray{Origin: from}, 0
	}
	return Ray{Origin: from, Dir: d.Scale(1 / l)}, l
}

func (r Ray) At(t float32) vec.Vec3 {
	return vec.Add(r.Origin, r.Dir.Scale(t))
}

func safeInverse(d float32) float32 {
	if math32.Abs(d) < minDirComponent {
		if math32.Signbit(d) {
			d = -minDirComponent
		} else {
			d = minDirComponent
		}
	}
	return 1 / d
}

// IntersectBox runs the slab test of r against b.
// tMin is InsideBox when the origin lies inside b (grown by a small epsilon).
func IntersectBox(r Ray, b bbox.BoundingBox) (hit bool, tMin, tMax float32) {
	if b.ContainsPoint(r.Origin, boxInsideEpsilon) {
		tMax = math32.MaxFloat32
		for _, a := range []vec.Axis{vec.X, vec.Y, vec.Z} {
			inv := safeInverse(r.Dir.Idx(a))
			t1 := (b.Min.Idx(a) - r.Origin.Idx(a)) * inv
			t2 := (b.Max.Idx(a) - r.Origin.Idx(a)) * inv
			tMax = math32.Min(tMax, math32.Max(t1, t2))
		}
		return true, InsideBox, math32.Max(tMax, 0)
	}

	tMin = -math32.MaxFloat32
	tMax = math32.MaxFloat32
	for _, a := range []vec.Axis{vec.X, vec.Y, vec.Z} {
		inv := safeInverse(r.Dir.Idx(a))
		t1 := (b.Min.Idx(a) - r.Origin.Idx(a)) * inv
		t2 := (b.Max.Idx(a) - r.Origin.Idx(a)) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math32.Max(tMin, t1)
		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return false, 0, 0
		}
	}
	if tMax < 0 {
		return false, 0, 0
	}
	return true, tMin, tMax
}

// IntersectTriangle is the Möller–Trumbore test of r against the triangle
// (v0, v1, v2). Both faces are hit.
func IntersectTriangle(r Ray, v0, v1, v2 vec.Vec3) (bool, float32) {
	e1 := vec.Sub(v1, v0)
	e2 := vec.Sub(v2, v0)
	p := vec.Cross(r.Dir, e2)
	det := vec.Dot(e1, p)
	if math32.Abs(det) < parallelEpsilon {
		return false, 0
	}
	inv := 1 / det
	s := vec.Sub(r.Origin, v0)
	u := vec.Dot(s, p) * inv
	if !qmath.InRange(u, 0, 1, TriangleTolerance) {
		return false, 0
	}
	q := vec.Cross(s, e1)
	v := vec.Dot(r.Dir, q) * inv
	if !qmath.InRange(v, 0, 1, TriangleTolerance) || u+v > 1+TriangleTolerance {
		return false, 0
	}
	t := vec.Dot(e2, q) * inv
	if t < -TriangleFailsafe {
		return false, 0
	}
	return true, t
}
