// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"os"

	"ctrvis/commandline"
)

func main() {
	if err := commandline.NewApp().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
