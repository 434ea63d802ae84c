// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"ctrvis/math/bbox"
	"ctrvis/math/vec"
)

type NodeType uint8

const (
	Branch NodeType = iota
	Leaf
)

func (t NodeType) String() string {
	if t == Leaf {
		return "leaf"
	}
	return "branch"
}

type Flag uint16

const (
	FlagLeaf Flag = 1 << iota
	// At least one quadblock of the leaf is water.
	FlagWater
	// None of the quadblocks of the leaf collide.
	FlagNoCollision
)

func (f Flag) Has(o Flag) bool {
	return f&o == o
}

// A Node owns its children. Ids are handed out by the Builder that created
// the node and never change afterwards.
type Node struct {
	id    int
	typ   NodeType
	axis  vec.Axis
	flags Flag
	box   bbox.BoundingBox
	// indexes into the quadblock list the tree was built from, leafs only
	quadblocks []int
	left       *Node
	right      *Node
}

func (n *Node) ID() int {
	return n.id
}

func (n *Node) Type() NodeType {
	return n.typ
}

func (n *Node) IsLeaf() bool {
	return n.typ == Leaf
}

// Axis is the split axis of a branch and vec.NoAxis for leafs.
func (n *Node) Axis() vec.Axis {
	return n.axis
}

func (n *Node) Flags() Flag {
	return n.flags
}

func (n *Node) BoundingBox() bbox.BoundingBox {
	return n.box
}

func (n *Node) Quadblocks() []int {
	return n.quadblocks
}

func (n *Node) Left() *Node {
	return n.left
}

func (n *Node) Right() *Node {
	return n.right
}
