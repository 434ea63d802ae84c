// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ctrvis/bsp"
	"ctrvis/cvar"
	"ctrvis/vis"
)

func TestDefaults(t *testing.T) {
	cvar.Default().ResetAll()
	require.Equal(t, bsp.Settings{MaxQuadsPerLeaf: 32, MaxLeafAxisLength: 64}, BSPSettings())
	require.NoError(t, BSPSettings().Validate())

	want := vis.DefaultSettings()
	require.Equal(t, want, VisSettings())
}

func TestScriptOverrides(t *testing.T) {
	defer cvar.Default().ResetAll()
	require.NoError(t, cvar.Default().ExecScript(`
bsp_maxleafquads 8
set vis_nearclip 2.5
vis_commutative 0
vis_centeronly 1
vis_workers 3
`))
	require.Equal(t, 8, BSPSettings().MaxQuadsPerLeaf)
	s := VisSettings()
	require.Equal(t, float32(2.5), s.NearClip)
	require.False(t, s.CommutativeRays)
	require.True(t, s.CenterOnlySamples)
	require.Equal(t, 3, s.Workers)
}
