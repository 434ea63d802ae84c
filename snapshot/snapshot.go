// SPDX-License-Identifier: GPL-2.0-or-later

// Package snapshot stores a generated tree and its visibility matrix so they
// can be inspected without regenerating them.
//
// A snapshot file is the magic "CTRV", one version byte and a protobuf
// encoded Snapshot message:
//
//	message Snapshot {
//	  bytes run_id = 1;
//	  Settings settings = 2;
//	  repeated Node nodes = 3;
//	  Matrix matrix = 4;
//	  uint32 quadblocks = 5;
//	  int64 duration_ns = 6;
//	}
//	message Settings {
//	  uint32 max_quads_per_leaf = 1;
//	  fixed32 max_leaf_axis_length = 2;
//	  fixed32 far_clip = 3;
//	  fixed32 near_clip = 4;
//	  bool commutative_rays = 5;
//	  bool center_only_samples = 6;
//	}
//	message Node {
//	  uint32 id = 1;
//	  bool leaf = 2;
//	  uint32 axis = 3;
//	  uint32 flags = 4;
//	  repeated fixed32 min = 5;
//	  repeated fixed32 max = 6;
//	  repeated uint32 quadblocks = 7;
//	  sint32 left = 8;
//	  sint32 right = 9;
//	}
//	message Matrix {
//	  uint32 width = 1;
//	  uint32 height = 2;
//	  bytes bits = 3; // row major, least significant bit first
//	}
package snapshot

import (
	"time"

	"github.com/google/uuid"

	"ctrvis/bsp"
	"ctrvis/math/bbox"
	"ctrvis/math/vec"
	"ctrvis/vis"
)

const (
	magic   = "CTRV"
	version = 1
)

// Node is the stored form of a bsp.Node. Left and Right are -1 for leafs.
type Node struct {
	ID         int
	Leaf       bool
	Axis       vec.Axis
	Flags      bsp.Flag
	Box        bbox.BoundingBox
	Quadblocks []int
	Left       int
	Right      int
}

type Snapshot struct {
	RunID      uuid.UUID
	BSP        bsp.Settings
	Vis        vis.Settings
	Nodes      []Node
	Matrix     *vis.BitMatrix
	Quadblocks int
	Duration   time.Duration
}

// New captures tree and res. res may be nil if only the tree was built.
func New(tree *bsp.Tree, bs bsp.Settings, res *vis.Result) *Snapshot {
	s := &Snapshot{
		BSP: bs,
	}
	for _, n := range tree.Nodes() {
		r := Node{
			ID:         n.ID(),
			Leaf:       n.IsLeaf(),
			Axis:       n.Axis(),
			Flags:      n.Flags(),
			Box:        n.BoundingBox(),
			Quadblocks: n.Quadblocks(),
			Left:       -1,
			Right:      -1,
		}
		if n.Left() != nil {
			r.Left = n.Left().ID()
		}
		if n.Right() != nil {
			r.Right = n.Right().ID()
		}
		s.Quadblocks += len(r.Quadblocks)
		s.Nodes = append(s.Nodes, r)
	}
	if res != nil {
		s.RunID = res.RunID
		s.Vis = res.Settings
		s.Matrix = res.Matrix
		s.Duration = res.Duration
	}
	return s
}

// Leaves returns the leaf nodes in tree order, matching the matrix rows.
func (s *Snapshot) Leaves() []Node {
	var r []Node
	for _, n := range s.Nodes {
		if n.Leaf {
			r = append(r, n)
		}
	}
	return r
}

// Stats recomputes the tree statistics from the stored nodes.
func (s *Snapshot) Stats() bsp.Stats {
	st := bsp.Stats{
		Quadblocks: s.Quadblocks,
		Nodes:      len(s.Nodes),
	}
	// children always have larger ids than their parent
	depth := make([]int, len(s.Nodes))
	for i, n := range s.Nodes {
		if depth[i] > st.MaxDepth {
			st.MaxDepth = depth[i]
		}
		if n.Leaf {
			st.Leaves++
			if len(n.Quadblocks) > st.MaxLeafQuads {
				st.MaxLeafQuads = len(n.Quadblocks)
			}
			continue
		}
		for _, c := range []int{n.Left, n.Right} {
			if c > i && c < len(depth) {
				depth[c] = depth[i] + 1
			}
		}
	}
	return st
}
