// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"ctrvis/conlog"
)

type QFunc func(args Arguments) error

// Commands maps lower case names to their functions.
type Commands map[string]QFunc

func New() *Commands {
	c := make(Commands)
	return &c
}

func (c *Commands) Add(name string, f QFunc) error {
	ln := strings.ToLower(name)
	if _, ok := (*c)[ln]; ok {
		return errors.Errorf("command %s already defined", ln)
	}
	(*c)[ln] = f
	return nil
}

func (c *Commands) Exists(cmdName string) bool {
	name := strings.ToLower(cmdName)
	_, ok := (*c)[name]
	return ok
}

func (c *Commands) List() []string {
	cmds := make([]string, 0, len(*c))
	for cmd := range *c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute runs the command named by the first argument. It reports false if
// there is no such command.
func (c *Commands) Execute(a Arguments) (bool, error) {
	if len(a.Args()) == 0 {
		return false, nil
	}
	if cmd, ok := (*c)[a.Name()]; ok {
		if err := cmd(a); err != nil {
			return true, errors.Wrap(err, a.Name())
		}
		return true, nil
	}
	return false, nil
}

// PrintList prints all command names starting with prefix.
func (c *Commands) PrintList(prefix string) {
	count := 0
	for _, n := range c.List() {
		if strings.HasPrefix(n, prefix) {
			conlog.SafePrintf("  %s\n", n)
			count++
		}
	}
	if prefix == "" {
		conlog.SafePrintf("%v commands\n", count)
		return
	}
	conlog.SafePrintf("%v commands beginning with \"%v\"\n", count, prefix)
}

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}
