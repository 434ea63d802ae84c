// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ctrvis/conlog"
	"ctrvis/level"
	"ctrvis/math/vec"
	"ctrvis/quadblock"
)

// gridLevel is a w*h field of ground quads. Every wallEvery-th column gets
// a wall across most of the field, leaving a gap at the far end.
func gridLevel(w, h int, size float32, wallEvery int) *level.Level {
	l := &level.Level{Name: fmt.Sprintf("grid %dx%d", w, h)}
	for z := 0; z < h; z++ {
		for x := 0; x < w; x++ {
			fx, fz := float32(x)*size, float32(z)*size
			l.Quadblocks = append(l.Quadblocks, quadblock.NewQuad(
				fmt.Sprintf("floor_%d_%d", x, z),
				vec.Vec3{X: fx, Z: fz}, vec.Vec3{X: fx + size, Z: fz},
				vec.Vec3{X: fx, Z: fz + size}, vec.Vec3{X: fx + size, Z: fz + size},
				quadblock.Ground))
		}
	}
	if wallEvery <= 0 {
		return l
	}
	height := 2 * size
	depth := float32(h-1) * size
	for x := wallEvery; x < w; x += wallEvery {
		fx := float32(x) * size
		l.Quadblocks = append(l.Quadblocks, quadblock.NewQuad(
			fmt.Sprintf("wall_%d", x),
			vec.Vec3{X: fx}, vec.Vec3{X: fx, Y: height},
			vec.Vec3{X: fx, Z: depth}, vec.Vec3{X: fx, Y: height, Z: depth},
			quadblock.DoubleSided))
	}
	return l
}

// Grid writes a generated test level.
func Grid(ctx *cli.Context) error {
	w, h := ctx.Int("width"), ctx.Int("height")
	if w <= 0 || h <= 0 {
		return cli.NewExitError("width and height must be positive", 1)
	}
	l := gridLevel(w, h, float32(ctx.Float64("size")), ctx.Int("walls"))

	var buf bytes.Buffer
	if err := level.Write(&buf, l); err != nil {
		return err
	}
	out := ctx.String("out")
	if out == "" {
		conlog.Printf("%s", buf.String())
		return nil
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(err, "write level")
	}
	logger.Noticef("wrote %d quadblocks to %s", len(l.Quadblocks), out)
	return nil
}
