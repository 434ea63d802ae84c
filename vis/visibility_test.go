// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ctrvis/bsp"
	"ctrvis/math/vec"
	"ctrvis/quadblock"
)

// wall returns a quadblock in the plane x=at, facing -x, covering
// -1 <= y <= 10 and -5 <= z <= 7.
func wall(at float32, flags quadblock.Flag) *quadblock.Quadblock {
	return quadblock.NewQuad("wall",
		vec.Vec3{X: at, Y: -1, Z: -5}, vec.Vec3{X: at, Y: 10, Z: -5},
		vec.Vec3{X: at, Y: -1, Z: 7}, vec.Vec3{X: at, Y: 10, Z: 7},
		flags)
}

// corridor places floor a at x 0..2, a wall and floor b at x bx..bx+2,
// every quadblock in its own leaf. Returns the leaf indexes of a and b.
func corridor(t *testing.T, wallAt, bx float32, wallFlags quadblock.Flag) ([]*quadblock.Quadblock, *bsp.Tree, int, int) {
	t.Helper()
	qs := []*quadblock.Quadblock{
		floor("a", 0, 0, 2, 0),
		wall(wallAt, wallFlags),
		floor("b", bx, 0, 2, 0),
	}
	tree := bsp.NewBuilder(bsp.Settings{MaxQuadsPerLeaf: 1, MaxLeafAxisLength: 1000}).Build(qs)
	require.Len(t, tree.Leaves(), 3)
	a, ok := tree.LeafIndex(qs[0].BSPID())
	require.True(t, ok)
	b, ok := tree.LeafIndex(qs[2].BSPID())
	require.True(t, ok)
	return qs, tree, a, b
}

func settings(commutative bool) Settings {
	s := DefaultSettings()
	s.CommutativeRays = commutative
	return s
}

func generate(t *testing.T, qs []*quadblock.Quadblock, tree *bsp.Tree, s Settings) *Result {
	t.Helper()
	res, err := Generate(qs, tree, s)
	require.NoError(t, err)
	n := len(tree.Leaves())
	require.Equal(t, n, res.Leaves)
	require.Equal(t, n, res.Matrix.Width())
	require.Equal(t, n, res.Matrix.Height())
	require.NotEqual(t, uuid.Nil, res.RunID)
	for i := 0; i < n; i++ {
		require.True(t, res.Visible(i, i), "leaf %d must see itself", i)
	}
	return res
}

func TestOpaqueWall(t *testing.T) {
	qs, tree, a, b := corridor(t, 5, 10, 0)

	res := generate(t, qs, tree, settings(false))
	require.False(t, res.Visible(a, b))
	// seen from b the wall shows its back
	require.True(t, res.Visible(b, a))
	require.NotZero(t, res.Rays)

	res = generate(t, qs, tree, settings(true))
	require.False(t, res.Visible(a, b))
	require.False(t, res.Visible(b, a))
}

func TestDoubleSidedWall(t *testing.T) {
	qs, tree, a, b := corridor(t, 5, 10, quadblock.DoubleSided)
	res := generate(t, qs, tree, settings(false))
	require.False(t, res.Visible(a, b))
	require.False(t, res.Visible(b, a))
}

func TestTransparentWall(t *testing.T) {
	qs, tree, a, b := corridor(t, 5, 10, quadblock.Transparent)
	for _, commutative := range []bool{false, true} {
		res := generate(t, qs, tree, settings(commutative))
		require.True(t, res.Visible(a, b))
		require.True(t, res.Visible(b, a))
	}
}

func TestNearClip(t *testing.T) {
	qs, tree, a, b := corridor(t, 2.5, 3, 0)

	s := settings(false)
	res := generate(t, qs, tree, s)
	require.False(t, res.Visible(a, b))

	s.NearClip = 0.5
	res = generate(t, qs, tree, s)
	require.False(t, res.Visible(a, b))

	// the boxes are one unit apart
	s.NearClip = 2
	res = generate(t, qs, tree, s)
	require.True(t, res.Visible(a, b))
}

func TestFarClip(t *testing.T) {
	qs := []*quadblock.Quadblock{
		floor("a", 0, 0, 2, 0),
		floor("b", 10, 0, 2, 0),
	}
	tree := bsp.NewBuilder(bsp.Settings{MaxQuadsPerLeaf: 1, MaxLeafAxisLength: 1000}).Build(qs)
	require.Len(t, tree.Leaves(), 2)

	s := settings(false)
	res := generate(t, qs, tree, s)
	require.True(t, res.Visible(0, 1))
	require.True(t, res.Visible(1, 0))
	require.Equal(t, []int{0, 1}, res.VisibleLeaves(0))

	s.FarClip = 5
	res = generate(t, qs, tree, s)
	require.False(t, res.Visible(0, 1))
	require.False(t, res.Visible(1, 0))
	require.Zero(t, res.Rays)
	require.Equal(t, []int{0}, res.VisibleLeaves(0))
}

// arena is a 6x6 floor with two walls, split into many leafs.
func arena() ([]*quadblock.Quadblock, *bsp.Tree) {
	var qs []*quadblock.Quadblock
	for z := 0; z < 6; z++ {
		for x := 0; x < 6; x++ {
			qs = append(qs, floor(fmt.Sprintf("f%d_%d", x, z), float32(x), float32(z), 1, 0))
		}
	}
	qs = append(qs,
		quadblock.NewQuad("w1", vec.Vec3{X: 2, Y: 0, Z: 0}, vec.Vec3{X: 2, Y: 3, Z: 0}, vec.Vec3{X: 2, Y: 0, Z: 4}, vec.Vec3{X: 2, Y: 3, Z: 4}, 0),
		quadblock.NewQuad("w2", vec.Vec3{X: 4, Y: 0, Z: 2}, vec.Vec3{X: 4, Y: 3, Z: 2}, vec.Vec3{X: 4, Y: 0, Z: 6}, vec.Vec3{X: 4, Y: 3, Z: 6}, quadblock.DoubleSided),
	)
	tree := bsp.NewBuilder(bsp.Settings{MaxQuadsPerLeaf: 2, MaxLeafAxisLength: 1000}).Build(qs)
	return qs, tree
}

func TestSharedCorner(t *testing.T) {
	for _, tc := range []struct {
		name    string
		bx      float32
		visible bool
		pairs   int64
	}{
		{"touching", 1, true, 1},
		{"apart", 1.5, false, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			qs := []*quadblock.Quadblock{
				floor("a", 0, 0, 1, 0),
				floor("b", tc.bx, tc.bx, 1, 0),
			}
			tree := bsp.NewBuilder(bsp.Settings{MaxQuadsPerLeaf: 1, MaxLeafAxisLength: 1000}).Build(qs)
			require.Len(t, tree.Leaves(), 2)

			// only coinciding samples are within reach
			s := settings(true)
			s.FarClip = 0
			s.NearClip = -1
			res := generate(t, qs, tree, s)
			require.Equal(t, tc.visible, res.Visible(0, 1))
			require.Equal(t, tc.visible, res.Visible(1, 0))
			require.Equal(t, tc.pairs, res.SamplePairs)
			require.Zero(t, res.Rays)
		})
	}
}

func TestCommutativeSymmetry(t *testing.T) {
	qs, tree := arena()
	res := generate(t, qs, tree, settings(true))
	n := res.Leaves
	require.Greater(t, n, 4)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			require.Equal(t, res.Visible(a, b), res.Visible(b, a), "leafs %d and %d", a, b)
		}
	}
}

func TestWorkersDeterministic(t *testing.T) {
	qs, tree := arena()
	for _, commutative := range []bool{false, true} {
		s := settings(commutative)
		s.Workers = 1
		want := generate(t, qs, tree, s)
		for _, workers := range []int{0, 3, 64} {
			s.Workers = workers
			got := generate(t, qs, tree, s)
			require.True(t, want.Matrix.Equal(got.Matrix), "workers %d, commutative %v", workers, commutative)
			require.Equal(t, want.Rays, got.Rays)
			require.NotEqual(t, want.RunID, got.RunID)
		}
	}
}

func TestCenterOnly(t *testing.T) {
	qs, tree := arena()
	s := settings(false)
	full := generate(t, qs, tree, s)
	s.CenterOnlySamples = true
	centers := generate(t, qs, tree, s)
	// fewer samples can only lose visibility
	for a := 0; a < full.Leaves; a++ {
		for b := 0; b < full.Leaves; b++ {
			if centers.Visible(a, b) {
				require.True(t, full.Visible(a, b), "leafs %d and %d", a, b)
			}
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(nil, &bsp.Tree{}, DefaultSettings())
	require.ErrorIs(t, err, ErrInvalidTree)
	_, err = Generate(nil, nil, DefaultSettings())
	require.ErrorIs(t, err, ErrInvalidTree)

	qs, tree, _, _ := corridor(t, 5, 10, 0)
	_, err = Generate(qs[:1], tree, DefaultSettings())
	require.Error(t, err)

	s := DefaultSettings()
	s.FarClip = -1
	_, err = Generate(qs, tree, s)
	require.Error(t, err)
}
