// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ctrvis/bsp"
	"ctrvis/conlog"
	"ctrvis/cvars"
	"ctrvis/level"
	"ctrvis/snapshot"
	"ctrvis/vis"
)

// snapshotName derives the output file name from the level file.
func snapshotName(levelFile string) string {
	return strings.TrimSuffix(levelFile, filepath.Ext(levelFile)) + ".ctrv"
}

// Build generates the tree and visibility of a level and stores both in a
// snapshot.
func Build(ctx *cli.Context) error {
	if err := configure(ctx); err != nil {
		logger.Error(err)
		return err
	}
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return cli.NewExitError("build expects exactly one level file", 1)
	}
	file := ctx.Args().First()
	lvl, err := level.ReadFile(file)
	if err != nil {
		logger.Error(err)
		return err
	}

	bs := cvars.BSPSettings()
	if err := bs.Validate(); err != nil {
		return errors.Wrap(err, "invalid bsp settings")
	}
	tree := bsp.NewBuilder(bs).Build(lvl.Quadblocks)
	logger.Infof("built tree for %d quadblocks", len(lvl.Quadblocks))
	conlog.Printf("%s", treeTable(lvl.Name, tree.Stats(), bs))

	var res *vis.Result
	if !ctx.Bool("novis") {
		res, err = vis.Generate(lvl.Quadblocks, tree, cvars.VisSettings())
		if err != nil {
			logger.Error(err)
			return err
		}
		conlog.Printf("%s", visTable(res.Matrix, res.Settings, resultRows(res)))
	}

	out := ctx.String("out")
	if out == "" {
		out = snapshotName(file)
	}
	if err := writeSnapshot(out, snapshot.New(tree, bs, res)); err != nil {
		logger.Error(err)
		return err
	}
	logger.Noticef("wrote %s", out)

	if ctx.Bool("metrics") {
		return dumpMetrics()
	}
	return nil
}

func writeSnapshot(name string, s *snapshot.Snapshot) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create snapshot")
	}
	if err := snapshot.Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close snapshot")
}
