// SPDX-License-Identifier: GPL-2.0-or-later

// Package quadblock describes the renderable surface primitives of a level.
//
// A quadblock stores a 3x3 grid of vertices, indexed row major:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The high detail mesh uses all nine vertices (eight triangles), the low
// detail mesh only the corners (two triangles). A triblock is the upper left
// half of the grid: corners 0, 2 and 6, four high detail triangles and one
// low detail triangle. Vertices 5, 7 and 8 of a triblock are unused.
package quadblock

import (
	"ctrvis/math/bbox"
	"ctrvis/math/vec"
)

type Flag uint16

const (
	// Ground quadblocks are driven on. Their visibility samples are taken
	// from camera height.
	Ground Flag = 1 << iota
	// Transparent quadblocks never occlude (the vistree flag of the editor).
	Transparent
	DoubleSided
	Water
	NoCollision
)

var flagNames = []struct {
	f    Flag
	name string
}{
	{Ground, "ground"},
	{Transparent, "transparent"},
	{DoubleSided, "doublesided"},
	{Water, "water"},
	{NoCollision, "nocollision"},
}

func (f Flag) Has(o Flag) bool {
	return f&o == o
}

// Split returns the single flags set in f in declaration order.
func (f Flag) Split() []Flag {
	var r []Flag
	for _, n := range flagNames {
		if f.Has(n.f) {
			r = append(r, n.f)
		}
	}
	return r
}

func (f Flag) String() string {
	s := ""
	for _, n := range flagNames {
		if f.Has(n.f) {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// ParseFlag maps a flag name as printed by Flag.String back to the flag.
func ParseFlag(name string) (Flag, bool) {
	for _, n := range flagNames {
		if n.name == name {
			return n.f, true
		}
	}
	return 0, false
}

type Triangle [3]vec.Vec3

// Normal returns the unnormalized face normal (v2-v0) x (v1-v0).
func (t Triangle) Normal() vec.Vec3 {
	return vec.Cross(vec.Sub(t[2], t[0]), vec.Sub(t[1], t[0]))
}

var (
	quadHighLOD = [][3]int{
		{0, 1, 3}, {1, 4, 3},
		{1, 2, 4}, {2, 5, 4},
		{3, 4, 6}, {4, 7, 6},
		{4, 5, 7}, {5, 8, 7},
	}
	quadLowLOD  = [][3]int{{0, 2, 6}, {2, 8, 6}}
	triHighLOD  = [][3]int{{0, 1, 3}, {1, 4, 3}, {1, 2, 4}, {3, 4, 6}}
	triLowLOD   = [][3]int{{0, 2, 6}}
	quadCorners = []int{0, 2, 6, 8}
	triCorners  = []int{0, 2, 6}
)

type Quadblock struct {
	Name     string
	Vertices [9]vec.Vec3
	Triblock bool
	Flags    Flag

	box    bbox.BoundingBox
	center vec.Vec3
	normal vec.Vec3
	high   []Triangle
	low    []Triangle
	halves []vec.Vec3

	bspID int
}

// New builds a quadblock from a full vertex grid and caches its derived
// geometry. Vertices must not be changed afterwards.
func New(name string, v [9]vec.Vec3, triblock bool, flags Flag) *Quadblock {
	q := &Quadblock{
		Name:     name,
		Vertices: v,
		Triblock: triblock,
		Flags:    flags,
		bspID:    -1,
	}
	hi, lo := quadHighLOD, quadLowLOD
	if triblock {
		hi, lo = triHighLOD, triLowLOD
	}
	q.high = q.triangles(hi)
	q.low = q.triangles(lo)

	q.box = bbox.Empty()
	for _, t := range q.high {
		for _, p := range t {
			q.box = q.box.AddPoint(p)
		}
	}

	var n vec.Vec3
	for _, t := range q.low {
		tn := t.Normal()
		q.halves = append(q.halves, tn)
		n = vec.Add(n, tn)
	}
	q.normal = n.Normalize()

	if triblock {
		c := q.Corners()
		q.center = vec.Add(vec.Add(c[0], c[1]), c[2]).Scale(1.0 / 3)
	} else {
		q.center = v[4]
	}
	return q
}

// NewQuad builds a flat quadblock from its four corners, given in grid
// order (0, 2, 6, 8). The inner vertices are interpolated.
func NewQuad(name string, c0, c2, c6, c8 vec.Vec3, flags Flag) *Quadblock {
	var v [9]vec.Vec3
	for r := 0; r < 3; r++ {
		fr := float32(r) / 2
		left := vec.Lerp(c0, c6, fr)
		right := vec.Lerp(c2, c8, fr)
		for c := 0; c < 3; c++ {
			v[r*3+c] = vec.Lerp(left, right, float32(c)/2)
		}
	}
	return New(name, v, false, flags)
}

// NewTri builds a triblock from its three corners (0, 2, 6).
func NewTri(name string, c0, c2, c6 vec.Vec3, flags Flag) *Quadblock {
	var v [9]vec.Vec3
	v[0], v[2], v[6] = c0, c2, c6
	v[1] = vec.Lerp(c0, c2, 0.5)
	v[3] = vec.Lerp(c0, c6, 0.5)
	v[4] = vec.Lerp(c2, c6, 0.5)
	// unused slots get a corner so the grid never contains the origin by accident.
	v[5], v[7], v[8] = c2, c6, c6
	return New(name, v, true, flags)
}

func (q *Quadblock) triangles(idx [][3]int) []Triangle {
	r := make([]Triangle, len(idx))
	for i, t := range idx {
		r[i] = Triangle{q.Vertices[t[0]], q.Vertices[t[1]], q.Vertices[t[2]]}
	}
	return r
}

func (q *Quadblock) BoundingBox() bbox.BoundingBox {
	return q.box
}

func (q *Quadblock) Center() vec.Vec3 {
	return q.center
}

// Normal is the normalized sum of the low detail face normals.
func (q *Quadblock) Normal() vec.Vec3 {
	return q.normal
}

// HalfNormals returns the unnormalized normal of every low detail triangle.
func (q *Quadblock) HalfNormals() []vec.Vec3 {
	return q.halves
}

// Corners returns 4 vertices for quads and 3 for triblocks.
func (q *Quadblock) Corners() []vec.Vec3 {
	idx := quadCorners
	if q.Triblock {
		idx = triCorners
	}
	r := make([]vec.Vec3, len(idx))
	for i, c := range idx {
		r[i] = q.Vertices[c]
	}
	return r
}

func (q *Quadblock) HighLOD() []Triangle {
	return q.high
}

func (q *Quadblock) LowLOD() []Triangle {
	return q.low
}

// FacesAway reports whether d points along the normals of all halves, so the
// ray only sees the backside.
func (q *Quadblock) FacesAway(d vec.Vec3) bool {
	for _, n := range q.halves {
		if vec.Dot(n, d) < 0 {
			return false
		}
	}
	return true
}

func (q *Quadblock) IsGround() bool {
	return q.Flags.Has(Ground)
}

func (q *Quadblock) IsTransparent() bool {
	return q.Flags.Has(Transparent)
}

func (q *Quadblock) IsDoubleSided() bool {
	return q.Flags.Has(DoubleSided)
}

// BSPID returns the id of the leaf the quadblock was assigned to, -1 before
// any tree was generated.
func (q *Quadblock) BSPID() int {
	return q.bspID
}

func (q *Quadblock) SetBSPID(id int) {
	q.bspID = id
}
