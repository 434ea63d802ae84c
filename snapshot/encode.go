// SPDX-License-Identifier: GPL-2.0-or-later

package snapshot

import (
	"io"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"ctrvis/math/vec"
	"ctrvis/vis"
)

// Snapshot fields
const (
	fieldRunID      protowire.Number = 1
	fieldSettings   protowire.Number = 2
	fieldNode       protowire.Number = 3
	fieldMatrix     protowire.Number = 4
	fieldQuadblocks protowire.Number = 5
	fieldDuration   protowire.Number = 6
)

// Settings fields
const (
	fieldMaxQuads    protowire.Number = 1
	fieldMaxAxis     protowire.Number = 2
	fieldFarClip     protowire.Number = 3
	fieldNearClip    protowire.Number = 4
	fieldCommutative protowire.Number = 5
	fieldCenterOnly  protowire.Number = 6
)

// Node fields
const (
	fieldNodeID    protowire.Number = 1
	fieldNodeLeaf  protowire.Number = 2
	fieldNodeAxis  protowire.Number = 3
	fieldNodeFlags protowire.Number = 4
	fieldNodeMin   protowire.Number = 5
	fieldNodeMax   protowire.Number = 6
	fieldNodeQuads protowire.Number = 7
	fieldNodeLeft  protowire.Number = 8
	fieldNodeRight protowire.Number = 9
)

// Matrix fields
const (
	fieldWidth  protowire.Number = 1
	fieldHeight protowire.Number = 2
	fieldBits   protowire.Number = 3
)

// Encode writes s to w.
func Encode(w io.Writer, s *Snapshot) error {
	b := append([]byte(magic), version)
	b = s.appendTo(b)
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(err, "write snapshot")
	}
	return nil
}

func (s *Snapshot) appendTo(b []byte) []byte {
	b = protowire.AppendTag(b, fieldRunID, protowire.BytesType)
	b = protowire.AppendBytes(b, s.RunID[:])

	b = protowire.AppendTag(b, fieldSettings, protowire.BytesType)
	b = protowire.AppendBytes(b, s.appendSettings(nil))

	for i := range s.Nodes {
		b = protowire.AppendTag(b, fieldNode, protowire.BytesType)
		b = protowire.AppendBytes(b, appendNode(nil, &s.Nodes[i]))
	}

	if s.Matrix != nil {
		b = protowire.AppendTag(b, fieldMatrix, protowire.BytesType)
		b = protowire.AppendBytes(b, appendMatrix(nil, s.Matrix))
	}

	b = protowire.AppendTag(b, fieldQuadblocks, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Quadblocks))
	b = protowire.AppendTag(b, fieldDuration, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Duration.Nanoseconds()))
	return b
}

func appendFloat(b []byte, num protowire.Number, f float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math32.Float32bits(f))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func (s *Snapshot) appendSettings(b []byte) []byte {
	b = protowire.AppendTag(b, fieldMaxQuads, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.BSP.MaxQuadsPerLeaf))
	b = appendFloat(b, fieldMaxAxis, s.BSP.MaxLeafAxisLength)
	b = appendFloat(b, fieldFarClip, s.Vis.FarClip)
	b = appendFloat(b, fieldNearClip, s.Vis.NearClip)
	b = appendBool(b, fieldCommutative, s.Vis.CommutativeRays)
	b = appendBool(b, fieldCenterOnly, s.Vis.CenterOnlySamples)
	return b
}

func appendVec(b []byte, num protowire.Number, v vec.Vec3) []byte {
	var packed []byte
	for _, f := range v.Array() {
		packed = protowire.AppendFixed32(packed, math32.Float32bits(f))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendNode(b []byte, n *Node) []byte {
	b = protowire.AppendTag(b, fieldNodeID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(n.ID))
	b = appendBool(b, fieldNodeLeaf, n.Leaf)
	b = protowire.AppendTag(b, fieldNodeAxis, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(n.Axis))
	b = protowire.AppendTag(b, fieldNodeFlags, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(n.Flags))
	b = appendVec(b, fieldNodeMin, n.Box.Min)
	b = appendVec(b, fieldNodeMax, n.Box.Max)
	if len(n.Quadblocks) > 0 {
		var packed []byte
		for _, q := range n.Quadblocks {
			packed = protowire.AppendVarint(packed, uint64(q))
		}
		b = protowire.AppendTag(b, fieldNodeQuads, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	b = protowire.AppendTag(b, fieldNodeLeft, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(n.Left)))
	b = protowire.AppendTag(b, fieldNodeRight, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(n.Right)))
	return b
}

func appendMatrix(b []byte, m *vis.BitMatrix) []byte {
	w, h := m.Width(), m.Height()
	bits := make([]byte, (w*h+7)/8)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				i := y*w + x
				bits[i/8] |= 1 << (i % 8)
			}
		}
	}
	b = protowire.AppendTag(b, fieldWidth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(w))
	b = protowire.AppendTag(b, fieldHeight, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h))
	b = protowire.AppendTag(b, fieldBits, protowire.BytesType)
	return protowire.AppendBytes(b, bits)
}
