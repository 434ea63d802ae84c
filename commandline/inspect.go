// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ctrvis/conlog"
	"ctrvis/snapshot"
)

func readSnapshot(name string) (*snapshot.Snapshot, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer f.Close()
	s, err := snapshot.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return s, nil
}

// Inspect prints what a snapshot holds. With --leaf it lists the leafs
// visible from the leaf with that id.
func Inspect(ctx *cli.Context) error {
	setupLogging(ctx)
	if ctx.NArg() != 1 {
		return cli.NewExitError("inspect expects exactly one snapshot file", 1)
	}
	s, err := readSnapshot(ctx.Args().First())
	if err != nil {
		logger.Error(err)
		return err
	}

	conlog.Printf("%s", treeTable(ctx.Args().First(), s.Stats(), s.BSP))
	if s.Matrix == nil {
		conlog.Printf("no visibility data\n")
		return nil
	}
	conlog.Printf("%s", visTable(s.Matrix, s.Vis, [][]string{
		{"Run", s.RunID.String()},
		{"Time", s.Duration.String()},
	}))

	if !ctx.IsSet("leaf") {
		return nil
	}
	return printLeaf(s, ctx.Int("leaf"))
}

func printLeaf(s *snapshot.Snapshot, id int) error {
	leaves := s.Leaves()
	row := -1
	for i, l := range leaves {
		if l.ID == id {
			row = i
			break
		}
	}
	if row < 0 {
		return cli.NewExitError(fmt.Sprintf("node %d is not a leaf", id), 1)
	}

	var buf bytes.Buffer
	table := newTable(&buf, "Visible leaf", "Quadblocks", "Min", "Max")
	for i, v := range s.Matrix.Row(row) {
		if !v {
			continue
		}
		l := leaves[i]
		table.Append([]string{
			fmt.Sprint(l.ID),
			fmt.Sprint(len(l.Quadblocks)),
			fmt.Sprint(l.Box.Min),
			fmt.Sprint(l.Box.Max),
		})
	}
	table.Render()
	conlog.Printf("leaf %d (flags %d)\n%s", id, leaves[row].Flags, buf.String())
	return nil
}
