// SPDX-License-Identifier: GPL-2.0-or-later

// Package commandline implements the actions of the ctrvis command.
package commandline

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ctrvis/cvar"
	"ctrvis/cvars"
)

// cvarFlag binds a command line flag to the cvar it overrides.
type cvarFlag struct {
	flag  cli.Flag
	cvar  func() *cvar.Cvar
	value func(ctx *cli.Context, name string) string
}

func intValue(ctx *cli.Context, name string) string {
	return fmt.Sprint(ctx.Int(name))
}

func floatValue(ctx *cli.Context, name string) string {
	return fmt.Sprint(ctx.Float64(name))
}

func boolValue(ctx *cli.Context, name string) string {
	if ctx.Bool(name) {
		return "1"
	}
	return "0"
}

var overrides = []cvarFlag{
	{
		flag:  cli.IntFlag{Name: "maxleafquads", Usage: "nodes with fewer quadblocks become leafs (bsp_maxleafquads)"},
		cvar:  func() *cvar.Cvar { return cvars.BSPMaxLeafQuads },
		value: intValue,
	},
	{
		flag:  cli.Float64Flag{Name: "maxleafaxis", Usage: "leafs with a longer side are split further (bsp_maxleafaxis)"},
		cvar:  func() *cvar.Cvar { return cvars.BSPMaxLeafAxis },
		value: floatValue,
	},
	{
		flag:  cli.Float64Flag{Name: "farclip", Usage: "maximum distance between sample points (vis_farclip)"},
		cvar:  func() *cvar.Cvar { return cvars.VisFarClip },
		value: floatValue,
	},
	{
		flag:  cli.Float64Flag{Name: "nearclip", Usage: "leafs closer than this always see each other, negative disables (vis_nearclip)"},
		cvar:  func() *cvar.Cvar { return cvars.VisNearClip },
		value: floatValue,
	},
	{
		flag:  cli.BoolFlag{Name: "commutative", Usage: "trace every leaf pair once and mirror the result (vis_commutative)"},
		cvar:  func() *cvar.Cvar { return cvars.VisCommutative },
		value: boolValue,
	},
	{
		flag:  cli.BoolFlag{Name: "centeronly", Usage: "sample quadblock centers only (vis_centeronly)"},
		cvar:  func() *cvar.Cvar { return cvars.VisCenterOnly },
		value: boolValue,
	},
	{
		flag:  cli.IntFlag{Name: "workers", Usage: "number of tracing goroutines, 0 uses all cpus (vis_workers)"},
		cvar:  func() *cvar.Cvar { return cvars.VisWorkers },
		value: intValue,
	},
}

// OverrideFlags returns the flags that take precedence over cvars.
func OverrideFlags() []cli.Flag {
	var r []cli.Flag
	for _, o := range overrides {
		r = append(r, o.flag)
	}
	return r
}

// configure runs the config script and applies the flags given to the
// current command on top of it.
func configure(ctx *cli.Context) error {
	if name := ctx.GlobalString("config"); name != "" {
		b, err := os.ReadFile(name)
		if err != nil {
			return errors.Wrap(err, "read config")
		}
		if err := cvar.Default().ExecScript(string(b)); err != nil {
			return errors.Wrap(err, name)
		}
	}
	for _, o := range overrides {
		name := o.flag.GetName()
		if ctx.IsSet(name) {
			o.cvar().SetByString(o.value(ctx, name))
		}
	}
	return nil
}
