// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"github.com/urfave/cli"

	"ctrvis/conlog"
	"ctrvis/cvars"
)

var logger = conlog.New("ctrvis")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		conlog.SetLevel(conlog.Info)
	}

	if ctx.GlobalBool("vv") || cvars.Developer.Bool() {
		conlog.SetLevel(conlog.Debug)
	}
}
