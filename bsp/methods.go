// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"sort"

	"ctrvis/math/ray"
	"ctrvis/math/vec"
)

// PointLeaf returns the first leaf, in leaf order, whose box contains p.
// Leaf boxes may overlap, so p can lie in more than one leaf.
func (t *Tree) PointLeaf(p vec.Vec3) (*Node, bool) {
	if !t.Valid() {
		return nil, false
	}
	stack := []*Node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !n.box.ContainsPoint(p, 0) {
			continue
		}
		if n.IsLeaf() {
			return n, true
		}
		stack = append(stack, n.right, n.left)
	}
	return nil, false
}

// Leaf boxes are grown by this much for ray queries, flat leafs would
// otherwise be missed by rays running along their plane or through an edge.
const rayBoxSlack = 0.01

// LeafHit is a leaf whose box is crossed by a ray.
type LeafHit struct {
	Leaf *Node
	// position of Leaf in Tree.Leaves
	Index int
	TMin  float32
	TMax  float32
}

// RayQuery keeps the scratch buffers of RayLeaves. It must not be shared
// between goroutines.
type RayQuery struct {
	stack []*Node
	hits  []LeafHit
}

// RayLeaves returns all leafs whose box r enters at a distance of at most
// maxT, ordered by their far intersection distance. Equal distances keep the
// leaf order. The result is only valid until the next call with the same q.
func (t *Tree) RayLeaves(r ray.Ray, maxT float32, q *RayQuery) []LeafHit {
	if q == nil {
		q = &RayQuery{}
	}
	q.hits = q.hits[:0]
	if !t.Valid() {
		return q.hits
	}
	q.stack = append(q.stack[:0], t.root)
	for len(q.stack) > 0 {
		n := q.stack[len(q.stack)-1]
		q.stack = q.stack[:len(q.stack)-1]
		hit, tMin, tMax := ray.IntersectBox(r, n.box.Expand(rayBoxSlack))
		if !hit || tMin > maxT {
			continue
		}
		if n.IsLeaf() {
			q.hits = append(q.hits, LeafHit{
				Leaf:  n,
				Index: t.leafIndex[n.id],
				TMin:  tMin,
				TMax:  tMax,
			})
			continue
		}
		q.stack = append(q.stack, n.right, n.left)
	}
	sort.Slice(q.hits, func(i, j int) bool {
		a, b := q.hits[i], q.hits[j]
		if a.TMax != b.TMax {
			return a.TMax < b.TMax
		}
		return a.Index < b.Index
	})
	return q.hits
}
