// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvars registers the tunables of tree and visibility generation.
package cvars

import (
	"ctrvis/bsp"
	"ctrvis/cvar"
	"ctrvis/vis"
)

var (
	BSPMaxLeafQuads *cvar.Cvar
	BSPMaxLeafAxis  *cvar.Cvar
	VisCenterOnly   *cvar.Cvar
	VisCommutative  *cvar.Cvar
	VisFarClip      *cvar.Cvar
	VisNearClip     *cvar.Cvar
	VisWorkers      *cvar.Cvar
	Developer       *cvar.Cvar
)

func init() {
	BSPMaxLeafQuads = cvar.MustRegister("bsp_maxleafquads", "32", cvar.ARCHIVE)
	BSPMaxLeafAxis = cvar.MustRegister("bsp_maxleafaxis", "64", cvar.ARCHIVE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	VisCenterOnly = cvar.MustRegister("vis_centeronly", "0", cvar.ARCHIVE)
	VisCommutative = cvar.MustRegister("vis_commutative", "1", cvar.ARCHIVE)
	VisFarClip = cvar.MustRegister("vis_farclip", "1000", cvar.ARCHIVE)
	VisNearClip = cvar.MustRegister("vis_nearclip", "-1", cvar.ARCHIVE)
	VisWorkers = cvar.MustRegister("vis_workers", "0", cvar.NONE)
}

func BSPSettings() bsp.Settings {
	return bsp.Settings{
		MaxQuadsPerLeaf:   BSPMaxLeafQuads.Int(),
		MaxLeafAxisLength: BSPMaxLeafAxis.Value(),
	}
}

func VisSettings() vis.Settings {
	return vis.Settings{
		FarClip:           VisFarClip.Value(),
		NearClip:          VisNearClip.Value(),
		CommutativeRays:   VisCommutative.Bool(),
		CenterOnlySamples: VisCenterOnly.Bool(),
		Workers:           VisWorkers.Int(),
	}
}
