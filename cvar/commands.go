// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"ctrvis/cmd"
	"ctrvis/conlog"
)

// Commands returns the console commands bound to r.
func (r *Registry) Commands() *cmd.Commands {
	c := cmd.New()
	cmd.Must(c.Add("cvarlist", r.list))
	cmd.Must(c.Add("cycle", r.cycle))
	cmd.Must(c.Add("inc", r.inc))
	cmd.Must(c.Add("reset", r.reset))
	cmd.Must(c.Add("resetall", r.resetAll))
	cmd.Must(c.Add("set", r.set))
	cmd.Must(c.Add("toggle", r.toggle))
	return c
}

// Execute handles a bare "<cvar> [value]" line: it shows the cvar or sets
// it. It reports false if the line does not name a cvar.
func (r *Registry) Execute(a cmd.Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := r.Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	if cv.ReadOnly() {
		return true, errors.Errorf("%s is read only", cv.Name())
	}
	cv.SetByString(args[1].String())
	return true, nil
}

// ExecScript runs a config script, one command or cvar assignment per line.
// It stops at the first failing line.
func (r *Registry) ExecScript(script string) error {
	lines, err := cmd.ParseScript(script)
	if err != nil {
		return err
	}
	commands := r.Commands()
	for _, a := range lines {
		ok, err := commands.Execute(a)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		ok, err = r.Execute(a)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Errorf("unknown command or cvar %q", a.Argv(0).String())
		}
	}
	return nil
}

// WriteArchived writes a script restoring all archived cvars.
func (r *Registry) WriteArchived(w io.Writer) error {
	for _, cv := range r.cvarArray {
		if !cv.Archive() {
			continue
		}
		if _, err := fmt.Fprintf(w, "set %s %q\n", cv.Name(), cv.String()); err != nil {
			return errors.Wrap(err, "write cvars")
		}
	}
	return nil
}

func (r *Registry) set(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		return errors.New("usage: set <cvar> <value>")
	}
	name := args[0].String()
	if cv, ok := r.cvarByName[name]; ok {
		if cv.ReadOnly() {
			return errors.Errorf("%s is read only", name)
		}
		cv.SetByString(args[1].String())
		return nil
	}
	cv := r.create(name, args[1].String())
	cv.user = true
	return nil
}

func (r *Registry) lookup(name string) (*Cvar, error) {
	cv, ok := r.Get(name)
	if !ok {
		return nil, errors.Errorf("variable %v not found", name)
	}
	return cv, nil
}

func (r *Registry) toggle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		return errors.New("usage: toggle <cvar>")
	}
	cv, err := r.lookup(args[0].String())
	if err != nil {
		return err
	}
	cv.Toggle()
	return nil
}

func (r *Registry) inc(a cmd.Arguments) error {
	args := a.Args()[1:]
	amount := float32(1)
	switch len(args) {
	case 1:
	case 2:
		v, err := args[1].Float32()
		if err != nil {
			return err
		}
		amount = v
	default:
		return errors.New("usage: inc <cvar> [amount]")
	}
	cv, err := r.lookup(args[0].String())
	if err != nil {
		return err
	}
	cv.SetValue(cv.Value() + amount)
	return nil
}

func (r *Registry) reset(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		return errors.New("usage: reset <cvar>")
	}
	cv, err := r.lookup(args[0].String())
	if err != nil {
		return err
	}
	cv.Reset()
	return nil
}

func (r *Registry) resetAll(_ cmd.Arguments) error {
	r.ResetAll()
	return nil
}

func (r *Registry) cycle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		return errors.New("usage: cycle <cvar> <value list>")
	}
	cv, err := r.lookup(args[0].String())
	if err != nil {
		return err
	}
	oldValue := cv.String()
	i := 0
	for i < len(args)-1 {
		i++
		if oldValue == args[i].String() {
			break
		}
	}
	i %= len(args) - 1
	i++
	cv.SetByString(args[i].String())
	return nil
}

func (r *Registry) list(a cmd.Arguments) error {
	prefix := a.Argv(1).String()
	count := 0
	for _, v := range r.cvarArray {
		if !strings.HasPrefix(v.Name(), prefix) {
			continue
		}
		count++
		archive := " "
		if v.Archive() {
			archive = "*"
		}
		conlog.SafePrintf("%s %s \"%s\"\n", archive, v.Name(), v.String())
	}
	if prefix == "" {
		conlog.SafePrintf("%v cvars\n", count)
		return nil
	}
	conlog.SafePrintf("%v cvars beginning with \"%v\"\n", count, prefix)
	return nil
}
