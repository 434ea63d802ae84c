// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"github.com/urfave/cli"
)

// NewApp wires all commands.
func NewApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "ctrvis"
	app.Usage = "partition racing levels and precompute leaf visibility"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "config script with cvar assignments, run before any command",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "build the bsp tree and visibility matrix of a level",
			Description: `
Read a JSON quadblock dump, partition it into a BSP tree and trace rays between
the leafs to find which leafs can see each other.

Tree and matrix are written to a snapshot file which can be supplied as an
argument to the inspect command.`,
			ArgsUsage: "level.json",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Usage: "snapshot file, defaults to the level name with a .ctrv extension",
				},
				cli.BoolFlag{
					Name:  "novis",
					Usage: "only build the tree",
				},
				cli.BoolFlag{
					Name:  "metrics",
					Usage: "print the collected metrics when done",
				},
			}, OverrideFlags()...),
			Action: Build,
		},
		{
			Name:      "inspect",
			Usage:     "print the contents of a snapshot",
			ArgsUsage: "level.ctrv",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "leaf",
					Usage: "list the leafs visible from the leaf with this id",
				},
			},
			Action: Inspect,
		},
		{
			Name:  "cvarlist",
			Usage: "list all cvars",
			Flags: append([]cli.Flag{
				cli.BoolFlag{
					Name:  "archive",
					Usage: "print the archived cvars as config script",
				},
			}, OverrideFlags()...),
			Action: CvarList,
		},
		{
			Name:  "grid",
			Usage: "generate a flat test level",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 16,
					Usage: "quads along x",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 16,
					Usage: "quads along z",
				},
				cli.Float64Flag{
					Name:  "size",
					Value: 4,
					Usage: "side length of a quad",
				},
				cli.IntFlag{
					Name:  "walls",
					Value: 4,
					Usage: "put a wall after every n columns, 0 for none",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "level file, defaults to stdout",
				},
			},
			Action: Grid,
		},
	}
	return app
}
