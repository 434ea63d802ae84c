// SPDX-License-Identifier: GPL-2.0-or-later

// Package level reads and writes quadblock dumps as JSON.
//
// Every quadblock gives either its full 3x3 vertex grid or only its corners
// (four for a quad, three for a triblock):
//
//	{
//	  "name": "crash cove",
//	  "quadblocks": [
//	    {"name": "q0", "corners": [[0,0,0],[1,0,0],[0,0,1],[1,0,1]], "flags": ["ground"]},
//	    {"name": "q1", "vertices": [[0,0,0], ... 9 points], "triblock": true}
//	  ]
//	}
package level

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"ctrvis/math/vec"
	"ctrvis/quadblock"
)

var ErrNoQuadblocks = errors.New("level has no quadblocks")

type Level struct {
	Name       string
	Quadblocks []*quadblock.Quadblock
}

type levelJSON struct {
	Name       string          `json:"name"`
	Quadblocks []quadblockJSON `json:"quadblocks"`
}

type quadblockJSON struct {
	Name     string       `json:"name"`
	Vertices [][3]float32 `json:"vertices,omitempty"`
	Corners  [][3]float32 `json:"corners,omitempty"`
	Triblock bool         `json:"triblock,omitempty"`
	Flags    []string     `json:"flags,omitempty"`
}

func Read(r io.Reader) (*Level, error) {
	var lj levelJSON
	d := json.NewDecoder(r)
	d.DisallowUnknownFields()
	if err := d.Decode(&lj); err != nil {
		return nil, errors.Wrap(err, "decode level")
	}
	if len(lj.Quadblocks) == 0 {
		return nil, ErrNoQuadblocks
	}
	l := &Level{Name: lj.Name}
	for i, qj := range lj.Quadblocks {
		q, err := qj.quadblock()
		if err != nil {
			return nil, errors.Wrapf(err, "quadblock %d (%s)", i, qj.Name)
		}
		l.Quadblocks = append(l.Quadblocks, q)
	}
	return l, nil
}

func ReadFile(name string) (*Level, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open level")
	}
	defer f.Close()
	l, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return l, nil
}

func (qj *quadblockJSON) quadblock() (*quadblock.Quadblock, error) {
	var flags quadblock.Flag
	for _, n := range qj.Flags {
		f, ok := quadblock.ParseFlag(n)
		if !ok {
			return nil, errors.Errorf("unknown flag %q", n)
		}
		flags |= f
	}

	switch {
	case len(qj.Vertices) > 0 && len(qj.Corners) > 0:
		return nil, errors.New("both vertices and corners given")
	case len(qj.Vertices) == 9:
		var v [9]vec.Vec3
		for i, p := range qj.Vertices {
			v[i] = vec.VFromA(p)
		}
		return quadblock.New(qj.Name, v, qj.Triblock, flags), nil
	case len(qj.Vertices) > 0:
		return nil, errors.Errorf("%d vertices, want 9", len(qj.Vertices))
	case len(qj.Corners) == 4 && !qj.Triblock:
		c := qj.Corners
		return quadblock.NewQuad(qj.Name, vec.VFromA(c[0]), vec.VFromA(c[1]), vec.VFromA(c[2]), vec.VFromA(c[3]), flags), nil
	case len(qj.Corners) == 3:
		c := qj.Corners
		return quadblock.NewTri(qj.Name, vec.VFromA(c[0]), vec.VFromA(c[1]), vec.VFromA(c[2]), flags), nil
	default:
		return nil, errors.Errorf("%d corners, want 4 for quads or 3 for triblocks", len(qj.Corners))
	}
}

// Write stores l with full vertex grids.
func Write(w io.Writer, l *Level) error {
	lj := levelJSON{Name: l.Name}
	for _, q := range l.Quadblocks {
		qj := quadblockJSON{
			Name:     q.Name,
			Triblock: q.Triblock,
		}
		for _, v := range q.Vertices {
			qj.Vertices = append(qj.Vertices, v.Array())
		}
		for _, f := range q.Flags.Split() {
			qj.Flags = append(qj.Flags, f.String())
		}
		lj.Quadblocks = append(lj.Quadblocks, qj)
	}
	b, err := json.MarshalIndent(lj, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode level")
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return errors.Wrap(err, "write level")
	}
	return nil
}
