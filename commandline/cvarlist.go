// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"bytes"

	"github.com/urfave/cli"

	"ctrvis/conlog"
	"ctrvis/cvar"
)

// CvarList prints all cvars after the config script and flags are applied.
// With --archive it prints a config script of the archived cvars instead.
func CvarList(ctx *cli.Context) error {
	if err := configure(ctx); err != nil {
		logger.Error(err)
		return err
	}
	var buf bytes.Buffer
	if ctx.Bool("archive") {
		if err := cvar.Default().WriteArchived(&buf); err != nil {
			return err
		}
		conlog.Printf("%s", buf.String())
		return nil
	}

	table := newTable(&buf, "Cvar", "Value", "Default", "Archive")
	for _, cv := range cvar.All() {
		archive := ""
		if cv.Archive() {
			archive = "*"
		}
		table.Append([]string{cv.Name(), cv.String(), cv.Default(), archive})
	}
	table.Render()
	conlog.Printf("%s", buf.String())
	return nil
}
