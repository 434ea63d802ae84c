// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"ctrvis/conlog"
	"ctrvis/math/bbox"
	"ctrvis/math/vec"
	"ctrvis/quadblock"
)

// Axes are tried in this order. On equal scores the earlier axis wins, which
// prefers splitting the horizontal plane before the vertical axis.
var splitOrder = [3]vec.Axis{vec.X, vec.Z, vec.Y}

type Settings struct {
	// A node with fewer quadblocks starts out as a leaf.
	MaxQuadsPerLeaf int
	// A leaf whose longest side is at least this long is split further.
	MaxLeafAxisLength float32
}

func (s Settings) Validate() error {
	if s.MaxQuadsPerLeaf <= 0 {
		return errors.Errorf("max quadblocks per leaf must be positive, got %d", s.MaxQuadsPerLeaf)
	}
	if s.MaxLeafAxisLength <= 0 {
		return errors.Errorf("max leaf axis length must be positive, got %v", s.MaxLeafAxisLength)
	}
	return nil
}

// Builder holds the state of one tree generation, most importantly the id
// counter. Use a new Builder (or Build, which resets it) per generation.
type Builder struct {
	settings Settings
	nextID   int
	logger   conlog.Logger
}

func NewBuilder(s Settings) *Builder {
	return &Builder{
		settings: s,
		logger:   conlog.New("bsp"),
	}
}

// Build partitions all quadblocks into a new tree and assigns every
// quadblock the id of its leaf. Without quadblocks the returned tree is not
// Valid.
func (b *Builder) Build(quads []*quadblock.Quadblock) *Tree {
	b.nextID = 0
	if len(quads) == 0 {
		return &Tree{}
	}

	start := time.Now()
	indexes := make([]int, len(quads))
	for i := range indexes {
		indexes[i] = i
	}
	root := b.newNode(len(indexes))
	b.Generate(root, quads, indexes)
	t := newTree(root, len(quads))

	d := time.Since(start)
	instrumentBuild(t, d)
	st := t.Stats()
	b.logger.Debugf(
		"BSP tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d, largest leaf: %d",
		d.Milliseconds(), st.MaxDepth, st.Nodes, st.Leaves, st.MaxLeafQuads,
	)
	return t
}

func (b *Builder) newNode(count int) *Node {
	n := &Node{
		id:   b.nextID,
		typ:  Branch,
		axis: vec.NoAxis,
	}
	b.nextID++
	if count < b.settings.MaxQuadsPerLeaf {
		n.typ = Leaf
	}
	return n
}

// Generate partitions indexes below n. n must have been created by b.
func (b *Builder) Generate(n *Node, quads []*quadblock.Quadblock, indexes []int) {
	n.box = bbox.Empty()
	for _, i := range indexes {
		n.box = n.box.Union(quads[i].BoundingBox())
	}
	n.quadblocks = indexes

	if n.typ == Leaf && n.box.MaxAxisLength() < b.settings.MaxLeafAxisLength {
		b.finishLeaf(n, quads)
		return
	}

	n.typ = Branch
	best := split{score: math32.Inf(1)}
	for _, a := range splitOrder {
		s := trySplit(quads, indexes, n.box, a)
		if s.score < best.score {
			best = s
		}
	}
	// Every split leaves one side empty, e.g. all centers coincide.
	if math32.IsInf(best.score, 1) {
		n.typ = Leaf
		b.finishLeaf(n, quads)
		return
	}

	n.axis = best.axis
	n.quadblocks = nil
	n.left = b.newNode(len(best.left))
	b.Generate(n.left, quads, best.left)
	n.right = b.newNode(len(best.right))
	b.Generate(n.right, quads, best.right)
}

func (b *Builder) finishLeaf(n *Node, quads []*quadblock.Quadblock) {
	n.axis = vec.NoAxis
	n.flags = FlagLeaf
	noCollision := len(n.quadblocks) > 0
	for _, i := range n.quadblocks {
		q := quads[i]
		q.SetBSPID(n.id)
		if q.Flags.Has(quadblock.Water) {
			n.flags |= FlagWater
		}
		if !q.Flags.Has(quadblock.NoCollision) {
			noCollision = false
		}
	}
	if noCollision {
		n.flags |= FlagNoCollision
	}
}

type split struct {
	axis        vec.Axis
	left, right []int
	score       float32
}

// trySplit divides indexes at the box midpoint along axis. The score is the
// sum of the semi-perimeters of both halves, lower is better. A split with
// an empty half scores +Inf.
func trySplit(quads []*quadblock.Quadblock, indexes []int, box bbox.BoundingBox, axis vec.Axis) split {
	mid := box.Midpoint().Idx(axis)
	s := split{axis: axis}
	lbox, rbox := bbox.Empty(), bbox.Empty()
	for _, i := range indexes {
		q := quads[i]
		if q.Center().Idx(axis) <= mid {
			s.left = append(s.left, i)
			lbox = lbox.Union(q.BoundingBox())
		} else {
			s.right = append(s.right, i)
			rbox = rbox.Union(q.BoundingBox())
		}
	}
	if len(s.left) == 0 || len(s.right) == 0 {
		s.score = math32.Inf(1)
		return s
	}
	s.score = lbox.SemiPerimeter() + rbox.SemiPerimeter()
	return s
}
