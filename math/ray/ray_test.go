// SPDX-License-Identifier: GPL-2.0-or-later

package ray

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ctrvis/math/bbox"
	"ctrvis/math/vec"
)

var unitBox = bbox.BoundingBox{Min: vec.Vec3{X: 0, Y: 0, Z: 0}, Max: vec.Vec3{X: 1, Y: 1, Z: 1}}

func TestNew(t *testing.T) {
	r, d := New(vec.Vec3{X: 0, Y: 0, Z: 0}, vec.Vec3{X: 0, Y: 0, Z: 5})
	require.Equal(t, float32(5), d)
	require.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 1}, r.Dir)
	require.Equal(t, vec.Vec3{X: 0, Y: 0, Z: 2}, r.At(2))

	r, d = New(vec.Vec3{X: 1, Y: 1, Z: 1}, vec.Vec3{X: 1, Y: 1, Z: 1})
	require.Equal(t, float32(0), d)
	require.Equal(t, vec.Vec3{}, r.Dir)
}

func TestIntersectBox(t *testing.T) {
	for _, tc := range []struct {
		name    string
		r       Ray
		hit     bool
		tMin    float32
		tMax    float32
		compare bool
	}{
		{
			name: "axis aligned hit",
			r:    Ray{Origin: vec.Vec3{X: -2, Y: 0.5, Z: 0.5}, Dir: vec.Vec3{X: 1, Y: 0, Z: 0}},
			hit:  true, tMin: 2, tMax: 3, compare: true,
		},
		{
			name: "miss above",
			r:    Ray{Origin: vec.Vec3{X: -2, Y: 2, Z: 0.5}, Dir: vec.Vec3{X: 1, Y: 0, Z: 0}},
			hit:  false,
		},
		{
			name: "box behind origin",
			r:    Ray{Origin: vec.Vec3{X: 3, Y: 0.5, Z: 0.5}, Dir: vec.Vec3{X: 1, Y: 0, Z: 0}},
			hit:  false,
		},
		{
			name: "origin inside",
			r:    Ray{Origin: vec.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, Dir: vec.Vec3{X: 0, Y: 1, Z: 0}},
			hit:  true, tMin: InsideBox, tMax: 0.5, compare: true,
		},
		{
			name: "origin on the surface",
			r:    Ray{Origin: vec.Vec3{X: 1.005, Y: 0.5, Z: 0.5}, Dir: vec.Vec3{X: 1, Y: 0, Z: 0}},
			hit:  true, tMin: InsideBox, tMax: 0, compare: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hit, tMin, tMax := IntersectBox(tc.r, unitBox)
			require.Equal(t, tc.hit, hit)
			if tc.compare {
				require.InDelta(t, tc.tMin, tMin, 1e-5)
				require.InDelta(t, tc.tMax, tMax, 1e-5)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	v0 := vec.Vec3{X: 0, Y: 0, Z: 0}
	v1 := vec.Vec3{X: 1, Y: 0, Z: 0}
	v2 := vec.Vec3{X: 0, Y: 0, Z: 1}
	down := vec.Vec3{X: 0, Y: -1, Z: 0}

	for _, tc := range []struct {
		name   string
		origin vec.Vec3
		dir    vec.Vec3
		hit    bool
		t      float32
	}{
		{"center", vec.Vec3{X: 0.25, Y: 2, Z: 0.25}, down, true, 2},
		{"from below", vec.Vec3{X: 0.25, Y: -3, Z: 0.25}, vec.Vec3{X: 0, Y: 1, Z: 0}, true, 3},
		{"outside", vec.Vec3{X: 0.9, Y: 2, Z: 0.9}, down, false, 0},
		{"shared edge", vec.Vec3{X: 0.5, Y: 1, Z: 0.5}, down, true, 1},
		{"vertex slack", vec.Vec3{X: -0.02, Y: 1, Z: 0}, down, true, 1},
		{"beyond slack", vec.Vec3{X: -0.2, Y: 1, Z: 0}, down, false, 0},
		{"origin on surface", vec.Vec3{X: 0.25, Y: 0.005, Z: 0.25}, vec.Vec3{X: 0, Y: 1, Z: 0}, true, -0.005},
		{"behind origin", vec.Vec3{X: 0.25, Y: -1, Z: 0.25}, down, false, 0},
		{"parallel", vec.Vec3{X: -1, Y: 0, Z: 0.25}, vec.Vec3{X: 1, Y: 0, Z: 0}, false, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hit, got := IntersectTriangle(Ray{Origin: tc.origin, Dir: tc.dir}, v0, v1, v2)
			require.Equal(t, tc.hit, hit)
			if tc.hit {
				require.InDelta(t, tc.t, got, 1e-5)
			}
		})
	}
}
