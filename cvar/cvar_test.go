// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := NewRegistry()
	cv := r.MustRegister("vis_farclip", "1000", ARCHIVE)
	require.Equal(t, float32(1000), cv.Value())
	require.Equal(t, "1000", cv.Default())
	require.True(t, cv.Archive())
	require.Equal(t, 0, cv.ID())

	_, err := r.Register("vis_farclip", "1", NONE)
	require.Error(t, err)
	require.Panics(t, func() { r.MustRegister("vis_farclip", "1", NONE) })

	got, ok := r.Get("vis_farclip")
	require.True(t, ok)
	require.Same(t, cv, got)
	byID, err := r.GetByID(0)
	require.NoError(t, err)
	require.Same(t, cv, byID)
	_, err = r.GetByID(1)
	require.Error(t, err)
}

func TestValues(t *testing.T) {
	r := NewRegistry()
	cv := r.MustRegister("x", "0", NONE)
	var calls int
	cv.SetCallback(func(*Cvar) { calls++ })

	cv.SetValue(2.5)
	require.Equal(t, "2.5", cv.String())
	cv.SetValue(3)
	require.Equal(t, "3", cv.String())
	require.Equal(t, 3, cv.Int())
	cv.Toggle()
	require.Equal(t, "1", cv.String())
	require.True(t, cv.Bool())
	cv.Toggle()
	require.False(t, cv.Bool())
	cv.SetByString("garbage")
	require.Equal(t, float32(0), cv.Value())
	cv.Reset()
	require.Equal(t, "0", cv.String())
	require.Equal(t, 6, calls)

	rom := r.MustRegister("version", "1", ROM)
	rom.SetByString("2")
	require.Equal(t, "1", rom.String())
}

func TestExecScript(t *testing.T) {
	r := NewRegistry()
	far := r.MustRegister("vis_farclip", "1000", ARCHIVE)
	near := r.MustRegister("vis_nearclip", "-1", NONE)
	comm := r.MustRegister("vis_commutative", "1", ARCHIVE)
	workers := r.MustRegister("vis_workers", "0", NONE)
	mode := r.MustRegister("mode", "a", NONE)

	err := r.ExecScript(`
// tuning
set vis_farclip 250
vis_nearclip 4
toggle vis_commutative
inc vis_workers 3
inc vis_workers
cycle mode a b c
set my_var 7
`)
	require.NoError(t, err)
	require.Equal(t, float32(250), far.Value())
	require.Equal(t, float32(4), near.Value())
	require.False(t, comm.Bool())
	require.Equal(t, 4, workers.Int())
	require.Equal(t, "b", mode.String())
	mv, ok := r.Get("my_var")
	require.True(t, ok)
	require.True(t, mv.UserDefined())

	require.NoError(t, r.ExecScript("reset vis_farclip\nresetall"))
	require.Equal(t, "1000", far.String())
	require.Equal(t, "-1", near.String())

	require.Error(t, r.ExecScript("no_such_var 1"))
	require.Error(t, r.ExecScript("toggle no_such_var"))
	require.Error(t, r.ExecScript("inc vis_workers many"))
	require.Error(t, r.ExecScript(`set vis_farclip "5`))

	r.MustRegister("version", "1", ROM)
	require.Error(t, r.ExecScript("version 2"))
	require.Error(t, r.ExecScript("set version 2"))
}

func TestWriteArchived(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("vis_farclip", "1000", ARCHIVE)
	r.MustRegister("vis_workers", "0", NONE)
	r.MustRegister("vis_commutative", "1", ARCHIVE)

	var buf bytes.Buffer
	require.NoError(t, r.WriteArchived(&buf))
	require.Equal(t, "set vis_farclip \"1000\"\nset vis_commutative \"1\"\n", buf.String())

	other := NewRegistry()
	far := other.MustRegister("vis_farclip", "1", ARCHIVE)
	require.NoError(t, other.ExecScript(buf.String()))
	require.Equal(t, float32(1000), far.Value())
}
