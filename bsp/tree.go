// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

// Tree is the result of one Build. Nodes and leafs are cached in id order
// which equals the pre-order of the tree.
type Tree struct {
	root      *Node
	nodes     []*Node
	leaves    []*Node
	leafIndex []int // by node id, -1 for branches
	quadCount int
}

type Stats struct {
	Quadblocks   int
	Nodes        int
	Leaves       int
	MaxDepth     int
	MaxLeafQuads int
}

func newTree(root *Node, quadCount int) *Tree {
	t := &Tree{
		root:      root,
		quadCount: quadCount,
	}
	t.nodes = walk(root)
	t.leafIndex = make([]int, len(t.nodes))
	for _, n := range t.nodes {
		t.leafIndex[n.id] = -1
		if n.IsLeaf() {
			t.leafIndex[n.id] = len(t.leaves)
			t.leaves = append(t.leaves, n)
		}
	}
	return t
}

// walk lists the subtree of n in pre-order without recursion.
func walk(n *Node) []*Node {
	var r []*Node
	if n == nil {
		return r
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r = append(r, n)
		if n.right != nil {
			stack = append(stack, n.right)
		}
		if n.left != nil {
			stack = append(stack, n.left)
		}
	}
	return r
}

// Valid reports whether the tree has been generated from at least one
// quadblock. Every other query expects a valid tree.
func (t *Tree) Valid() bool {
	return t != nil && t.root != nil
}

func (t *Tree) Root() *Node {
	return t.root
}

// Nodes returns all nodes ordered by id.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// Leaves returns the leafs in pre-order. Visibility matrices are indexed by
// this order.
func (t *Tree) Leaves() []*Node {
	return t.leaves
}

func (t *Tree) NodeByID(id int) (*Node, bool) {
	if id < 0 || id >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[id], true
}

// LeafIndex maps a leaf id to its position in Leaves.
func (t *Tree) LeafIndex(id int) (int, bool) {
	if id < 0 || id >= len(t.leafIndex) || t.leafIndex[id] < 0 {
		return 0, false
	}
	return t.leafIndex[id], true
}

func (t *Tree) LeafByID(id int) (*Node, bool) {
	i, ok := t.LeafIndex(id)
	if !ok {
		return nil, false
	}
	return t.leaves[i], true
}

// Clear drops the whole tree. Quadblocks keep their last leaf id until the
// next Build.
func (t *Tree) Clear() {
	*t = Tree{}
}

func (t *Tree) Stats() Stats {
	s := Stats{
		Quadblocks: t.quadCount,
		Nodes:      len(t.nodes),
		Leaves:     len(t.leaves),
	}
	if t.root == nil {
		return s
	}
	type entry struct {
		n     *Node
		depth int
	}
	stack := []entry{{t.root, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.depth > s.MaxDepth {
			s.MaxDepth = e.depth
		}
		if e.n.IsLeaf() {
			if len(e.n.quadblocks) > s.MaxLeafQuads {
				s.MaxLeafQuads = len(e.n.quadblocks)
			}
			continue
		}
		for _, c := range []*Node{e.n.left, e.n.right} {
			if c != nil {
				stack = append(stack, entry{c, e.depth + 1})
			}
		}
	}
	return s
}

// Depth is the number of edges on the longest root to leaf path.
func (t *Tree) Depth() int {
	return t.Stats().MaxDepth
}
