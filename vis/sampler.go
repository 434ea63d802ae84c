// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"ctrvis/bsp"
	"ctrvis/math/vec"
	"ctrvis/quadblock"
)

const (
	// CameraHeight lifts the center samples of ground quadblocks to where a
	// driver's camera would be.
	CameraHeight float32 = 1

	// Samples closer than this are merged.
	sampleMergeDistance float32 = 0.01
)

// SamplePoints returns the ray endpoints representing leaf. Every quadblock
// contributes its center, raised by CameraHeight for ground quadblocks when
// raiseForGround is set, and unless centerOnly its corners. Points are
// returned in quadblock order, near duplicates dropped, first one wins.
func SamplePoints(leaf *bsp.Node, quads []*quadblock.Quadblock, raiseForGround, centerOnly bool) []vec.Vec3 {
	const mergeSq = sampleMergeDistance * sampleMergeDistance
	var points []vec.Vec3
	add := func(p vec.Vec3) {
		for _, o := range points {
			if vec.DistanceSq(o, p) < mergeSq {
				return
			}
		}
		points = append(points, p)
	}
	for _, i := range leaf.Quadblocks() {
		q := quads[i]
		c := q.Center()
		if raiseForGround && q.IsGround() {
			c.Y += CameraHeight
		}
		add(c)
		if centerOnly {
			continue
		}
		for _, p := range q.Corners() {
			add(p)
		}
	}
	return points
}
