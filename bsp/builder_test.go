// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"ctrvis/math/bbox"
	"ctrvis/math/vec"
	"ctrvis/quadblock"
)

// grid returns w*h flat unit quadblocks on the y=0 plane.
func grid(w, h int) []*quadblock.Quadblock {
	var qs []*quadblock.Quadblock
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			fx, fz := float32(x), float32(z)
			qs = append(qs, quadblock.NewQuad(fmt.Sprintf("q%d_%d", x, z),
				vec.Vec3{X: fx, Y: 0, Z: fz}, vec.Vec3{X: fx + 1, Y: 0, Z: fz},
				vec.Vec3{X: fx, Y: 0, Z: fz + 1}, vec.Vec3{X: fx + 1, Y: 0, Z: fz + 1},
				quadblock.Ground))
		}
	}
	return qs
}

func build(qs []*quadblock.Quadblock, maxQuads int, maxAxis float32) *Tree {
	return NewBuilder(Settings{MaxQuadsPerLeaf: maxQuads, MaxLeafAxisLength: maxAxis}).Build(qs)
}

func requireWellFormed(t *testing.T, tree *Tree, qs []*quadblock.Quadblock) {
	t.Helper()
	require.True(t, tree.Valid())

	seen := make(map[int]int)
	for _, l := range tree.Leaves() {
		members := bbox.Empty()
		require.True(t, l.IsLeaf())
		require.True(t, l.Flags().Has(FlagLeaf))
		require.NotEmpty(t, l.Quadblocks())
		require.Nil(t, l.Left())
		require.Nil(t, l.Right())
		for _, i := range l.Quadblocks() {
			seen[i]++
			require.Equal(t, l.ID(), qs[i].BSPID(), "quadblock %d", i)
			require.True(t, l.BoundingBox().Contains(qs[i].BoundingBox()))
			members = members.Union(qs[i].BoundingBox())
		}
		require.Equal(t, members, l.BoundingBox(), "leaf %d box is not tight", l.ID())
	}
	require.Len(t, seen, len(qs))
	for i, c := range seen {
		require.Equal(t, 1, c, "quadblock %d in more than one leaf", i)
	}

	for i, n := range tree.Nodes() {
		require.Equal(t, i, n.ID())
		if n.IsLeaf() {
			continue
		}
		require.NotNil(t, n.Left(), "branch %d without left child", n.ID())
		require.NotNil(t, n.Right(), "branch %d without right child", n.ID())
		require.NotEqual(t, vec.NoAxis, n.Axis())
		require.True(t, n.BoundingBox().Contains(n.Left().BoundingBox()))
		require.True(t, n.BoundingBox().Contains(n.Right().BoundingBox()))
		require.Equal(t, n.Left().BoundingBox().Union(n.Right().BoundingBox()), n.BoundingBox(),
			"branch %d box is not tight", n.ID())
	}
}

func TestFlatGrid(t *testing.T) {
	qs := grid(10, 10)
	tree := build(qs, 10, 1000)
	requireWellFormed(t, tree, qs)

	require.GreaterOrEqual(t, len(tree.Leaves()), 10)
	for _, l := range tree.Leaves() {
		require.LessOrEqual(t, len(l.Quadblocks()), 10)
	}
	st := tree.Stats()
	require.Equal(t, 100, st.Quadblocks)
	require.Equal(t, len(tree.Nodes()), st.Nodes)
	require.Equal(t, len(tree.Leaves()), st.Leaves)
	require.Equal(t, 2*st.Leaves-1, st.Nodes)
	require.LessOrEqual(t, st.MaxLeafQuads, 10)
	require.Equal(t, st.MaxDepth, tree.Depth())
	require.Greater(t, tree.Depth(), 0)
}

func TestMaxAxisLength(t *testing.T) {
	qs := grid(3, 1)
	tree := build(qs, 10, 1.5)
	requireWellFormed(t, tree, qs)
	require.Len(t, tree.Leaves(), 3)
	for _, l := range tree.Leaves() {
		require.Less(t, l.BoundingBox().MaxAxisLength(), float32(1.5))
	}

	tree = build(grid(3, 1), 10, 100)
	require.Len(t, tree.Leaves(), 1)
}

func TestSplitTieBreak(t *testing.T) {
	// a 2x2 grid scores the same on x and z
	tree := build(grid(2, 2), 2, 100)
	require.Equal(t, vec.X, tree.Root().Axis())
	require.Equal(t, vec.Z, tree.Root().Left().Axis())
}

func TestCollapsedPoint(t *testing.T) {
	p := vec.Vec3{X: 3, Y: 3, Z: 3}
	var qs []*quadblock.Quadblock
	for i := 0; i < 50; i++ {
		qs = append(qs, quadblock.NewQuad("point", p, p, p, p, 0))
	}
	for _, maxAxis := range []float32{0, 1} {
		tree := build(qs, 4, maxAxis)
		requireWellFormed(t, tree, qs)
		require.Len(t, tree.Nodes(), 1)
		require.Len(t, tree.Leaves(), 1)
		require.Len(t, tree.Leaves()[0].Quadblocks(), 50)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := build(nil, 4, 10)
	require.False(t, tree.Valid())
	require.Empty(t, tree.Leaves())
	require.Empty(t, tree.Nodes())
	require.Equal(t, Stats{}, tree.Stats())
	_, ok := tree.LeafByID(0)
	require.False(t, ok)

	var nilTree *Tree
	require.False(t, nilTree.Valid())
}

func TestDeterministic(t *testing.T) {
	qs := append(grid(7, 5), quadblock.NewQuad("wall",
		vec.Vec3{X: 3, Y: 0, Z: 2}, vec.Vec3{X: 3, Y: 0, Z: 4}, vec.Vec3{X: 3, Y: 3, Z: 2}, vec.Vec3{X: 3, Y: 3, Z: 4}, 0))
	a := build(qs, 3, 4)
	idsA := make([]int, len(qs))
	for i, q := range qs {
		idsA[i] = q.BSPID()
	}
	b := build(qs, 3, 4)

	require.Equal(t, len(a.Nodes()), len(b.Nodes()))
	for i := range a.Nodes() {
		na, nb := a.Nodes()[i], b.Nodes()[i]
		require.Equal(t, na.ID(), nb.ID())
		require.Equal(t, na.Type(), nb.Type())
		require.Equal(t, na.Axis(), nb.Axis())
		require.Equal(t, na.BoundingBox(), nb.BoundingBox())
		require.Equal(t, na.Quadblocks(), nb.Quadblocks())
	}
	for i, q := range qs {
		require.Equal(t, idsA[i], q.BSPID())
	}
}

func TestLeafFlags(t *testing.T) {
	qs := grid(2, 1)
	qs[0].Flags |= quadblock.Water | quadblock.NoCollision
	qs[1].Flags |= quadblock.NoCollision
	tree := build(qs, 10, 100)
	require.Len(t, tree.Leaves(), 1)
	f := tree.Leaves()[0].Flags()
	require.True(t, f.Has(FlagLeaf|FlagWater|FlagNoCollision))

	qs = grid(2, 1)
	qs[0].Flags |= quadblock.NoCollision
	tree = build(qs, 10, 100)
	require.False(t, tree.Leaves()[0].Flags().Has(FlagNoCollision))
	require.False(t, tree.Leaves()[0].Flags().Has(FlagWater))
}

func TestClear(t *testing.T) {
	tree := build(grid(4, 4), 4, 100)
	require.True(t, tree.Valid())
	tree.Clear()
	require.False(t, tree.Valid())
	require.Empty(t, tree.Leaves())
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, Settings{MaxQuadsPerLeaf: 1, MaxLeafAxisLength: 1}.Validate())
	require.Error(t, Settings{MaxQuadsPerLeaf: 0, MaxLeafAxisLength: 1}.Validate())
	require.Error(t, Settings{MaxQuadsPerLeaf: 1, MaxLeafAxisLength: 0}.Validate())
}
