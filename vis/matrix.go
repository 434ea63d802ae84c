// SPDX-License-Identifier: GPL-2.0-or-later

package vis

import (
	"fmt"
)

// BitMatrix is a dense row major grid of booleans. Its size is fixed at
// construction.
//
// Writes to distinct rows never share memory, so goroutines that each own a
// set of rows may call SetRow concurrently without locking. No other method
// is safe for concurrent use with writers.
type BitMatrix struct {
	width  int
	height int
	data   []bool
}

func NewBitMatrix(width, height int) *BitMatrix {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("NewBitMatrix: negative size %dx%d", width, height))
	}
	return &BitMatrix{
		width:  width,
		height: height,
		data:   make([]bool, width*height),
	}
}

func (m *BitMatrix) Width() int {
	return m.width
}

func (m *BitMatrix) Height() int {
	return m.height
}

func (m *BitMatrix) index(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		panic(fmt.Sprintf("BitMatrix: cell (%d,%d) out of range %dx%d", x, y, m.width, m.height))
	}
	return y*m.width + x
}

func (m *BitMatrix) Get(x, y int) bool {
	return m.data[m.index(x, y)]
}

func (m *BitMatrix) Set(x, y int, v bool) {
	m.data[m.index(x, y)] = v
}

// SetRow replaces row y with row, which must hold Width values.
func (m *BitMatrix) SetRow(row []bool, y int) {
	if len(row) != m.width {
		panic(fmt.Sprintf("BitMatrix.SetRow: row has %d values, want %d", len(row), m.width))
	}
	start := m.index(0, y)
	copy(m.data[start:start+m.width], row)
}

// Row returns a copy of row y.
func (m *BitMatrix) Row(y int) []bool {
	start := m.index(0, y)
	r := make([]bool, m.width)
	copy(r, m.data[start:start+m.width])
	return r
}

// IsEmpty reports whether the matrix has no cells.
func (m *BitMatrix) IsEmpty() bool {
	return len(m.data) == 0
}

// Clear sets every cell to false.
func (m *BitMatrix) Clear() {
	for i := range m.data {
		m.data[i] = false
	}
}

// Count returns the number of true cells.
func (m *BitMatrix) Count() int {
	c := 0
	for _, v := range m.data {
		if v {
			c++
		}
	}
	return c
}

func (m *BitMatrix) Equal(o *BitMatrix) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
