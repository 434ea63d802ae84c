// SPDX-License-Identifier: GPL-2.0-or-later

package snapshot

import (
	"io"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"ctrvis/bsp"
	"ctrvis/math/vec"
	"ctrvis/vis"
)

var ErrCorrupt = errors.New("corrupt snapshot")

// Decode reads a snapshot written by Encode.
func Decode(r io.Reader) (*Snapshot, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot")
	}
	if len(b) < len(magic)+1 || string(b[:len(magic)]) != magic {
		return nil, errors.Wrap(ErrCorrupt, "missing magic")
	}
	if v := b[len(magic)]; v != version {
		return nil, errors.Errorf("unsupported snapshot version %d", v)
	}
	s := &Snapshot{}
	if err := s.unmarshal(b[len(magic)+1:]); err != nil {
		return nil, err
	}
	return s, nil
}

func corrupt(n int) error {
	return errors.Wrap(ErrCorrupt, protowire.ParseError(n).Error())
}

// fields calls f for every field in b. f returns the number of bytes it
// consumed from the value, negative on error.
func fields(b []byte, f func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return corrupt(n)
		}
		b = b[n:]
		n = f(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return corrupt(n)
		}
		b = b[n:]
	}
	return nil
}

func (s *Snapshot) unmarshal(b []byte) error {
	var nested error
	keep := func(err error) {
		if nested == nil {
			nested = err
		}
	}
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == fieldRunID && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				id, err := uuid.FromBytes(v)
				if err != nil {
					keep(errors.Wrap(ErrCorrupt, err.Error()))
				}
				s.RunID = id
			}
			return n
		case num == fieldSettings && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				keep(s.unmarshalSettings(v))
			}
			return n
		case num == fieldNode && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				node := Node{Left: -1, Right: -1}
				err := unmarshalNode(v, &node)
				keep(err)
				s.Nodes = append(s.Nodes, node)
			}
			return n
		case num == fieldMatrix && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				m, err := unmarshalMatrix(v)
				keep(err)
				s.Matrix = m
			}
			return n
		case num == fieldQuadblocks && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.Quadblocks = int(v)
			return n
		case num == fieldDuration && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.Duration = time.Duration(v)
			return n
		}
		return 0
	})
	if err != nil {
		return err
	}
	if nested != nil {
		return nested
	}
	return s.check()
}

// check verifies the references between nodes and the matrix size.
func (s *Snapshot) check() error {
	leaves := 0
	for i, n := range s.Nodes {
		if n.ID != i {
			return errors.Wrapf(ErrCorrupt, "node %d has id %d", i, n.ID)
		}
		if n.Leaf {
			leaves++
			continue
		}
		for _, c := range []int{n.Left, n.Right} {
			if c <= n.ID || c >= len(s.Nodes) {
				return errors.Wrapf(ErrCorrupt, "node %d has child %d", n.ID, c)
			}
		}
	}
	if s.Matrix != nil && (s.Matrix.Width() != leaves || s.Matrix.Height() != leaves) {
		return errors.Wrapf(ErrCorrupt, "matrix is %dx%d for %d leafs",
			s.Matrix.Width(), s.Matrix.Height(), leaves)
	}
	return nil
}

func consumeFloat(b []byte, dst *float32) int {
	v, n := protowire.ConsumeFixed32(b)
	*dst = math32.Float32frombits(v)
	return n
}

func consumeBool(b []byte, dst *bool) int {
	v, n := protowire.ConsumeVarint(b)
	*dst = protowire.DecodeBool(v)
	return n
}

func (s *Snapshot) unmarshalSettings(b []byte) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == fieldMaxQuads && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			s.BSP.MaxQuadsPerLeaf = int(v)
			return n
		case num == fieldMaxAxis && typ == protowire.Fixed32Type:
			return consumeFloat(b, &s.BSP.MaxLeafAxisLength)
		case num == fieldFarClip && typ == protowire.Fixed32Type:
			return consumeFloat(b, &s.Vis.FarClip)
		case num == fieldNearClip && typ == protowire.Fixed32Type:
			return consumeFloat(b, &s.Vis.NearClip)
		case num == fieldCommutative && typ == protowire.VarintType:
			return consumeBool(b, &s.Vis.CommutativeRays)
		case num == fieldCenterOnly && typ == protowire.VarintType:
			return consumeBool(b, &s.Vis.CenterOnlySamples)
		}
		return 0
	})
}

func consumeVec(b []byte, dst *vec.Vec3) int {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	if len(v) != 12 {
		return -1
	}
	var a [3]float32
	for i := range a {
		bits, _ := protowire.ConsumeFixed32(v[4*i:])
		a[i] = math32.Float32frombits(bits)
	}
	*dst = vec.VFromA(a)
	return n
}

func unmarshalNode(b []byte, node *Node) error {
	return fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == fieldNodeID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			node.ID = int(v)
			return n
		case num == fieldNodeLeaf && typ == protowire.VarintType:
			return consumeBool(b, &node.Leaf)
		case num == fieldNodeAxis && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			node.Axis = vec.Axis(v)
			return n
		case num == fieldNodeFlags && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			node.Flags = bsp.Flag(v)
			return n
		case num == fieldNodeMin && typ == protowire.BytesType:
			return consumeVec(b, &node.Box.Min)
		case num == fieldNodeMax && typ == protowire.BytesType:
			return consumeVec(b, &node.Box.Max)
		case num == fieldNodeQuads && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			for len(v) > 0 && n >= 0 {
				q, m := protowire.ConsumeVarint(v)
				if m < 0 {
					return m
				}
				node.Quadblocks = append(node.Quadblocks, int(q))
				v = v[m:]
			}
			return n
		case num == fieldNodeLeft && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			node.Left = int(protowire.DecodeZigZag(v))
			return n
		case num == fieldNodeRight && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			node.Right = int(protowire.DecodeZigZag(v))
			return n
		}
		return 0
	})
}

func unmarshalMatrix(b []byte) (*vis.BitMatrix, error) {
	var w, h uint64
	var bits []byte
	err := fields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		var n int
		switch {
		case num == fieldWidth && typ == protowire.VarintType:
			w, n = protowire.ConsumeVarint(b)
		case num == fieldHeight && typ == protowire.VarintType:
			h, n = protowire.ConsumeVarint(b)
		case num == fieldBits && typ == protowire.BytesType:
			bits, n = protowire.ConsumeBytes(b)
		}
		return n
	})
	if err != nil {
		return nil, err
	}
	const maxSide = 1 << 16
	if w > maxSide || h > maxSide || uint64(len(bits)) != (w*h+7)/8 {
		return nil, errors.Wrapf(ErrCorrupt, "matrix of %dx%d with %d bytes", w, h, len(bits))
	}
	m := vis.NewBitMatrix(int(w), int(h))
	for y := 0; y < int(h); y++ {
		for x := 0; x < int(w); x++ {
			i := y*int(w) + x
			m.Set(x, y, bits[i/8]&(1<<(i%8)) != 0)
		}
	}
	return m, nil
}
