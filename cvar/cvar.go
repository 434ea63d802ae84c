// SPDX-License-Identifier: GPL-2.0-or-later

// Package cvar holds named console variables. Values are stored as strings
// and parsed to float32 on every change.
package cvar

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1
	ROM     flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) ReadOnly() bool {
	return cv.rom
}

// UserDefined reports whether the cvar was created by a set command instead
// of being registered.
func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom {
		return
	}
	cv.set(s)
}

func (cv *Cvar) set(s string) {
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

// Int truncates the value.
func (cv *Cvar) Int() int {
	return int(cv.value)
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		v := strconv.FormatInt(int64(value), 10)
		cv.SetByString(v)
	} else {
		v := strconv.FormatFloat(float64(value), 'f', -1, 32)
		cv.SetByString(v)
	}
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0"
}

// Registry is a set of cvars together with the console commands operating
// on them.
type Registry struct {
	cvarArray  []*Cvar
	cvarByName map[string]*Cvar
}

func NewRegistry() *Registry {
	return &Registry{cvarByName: make(map[string]*Cvar)}
}

// All returns the cvars in registration order.
func (r *Registry) All() []*Cvar {
	return r.cvarArray
}

func (r *Registry) Get(name string) (*Cvar, bool) {
	cv, ok := r.cvarByName[name]
	return cv, ok
}

func (r *Registry) GetByID(id int) (*Cvar, error) {
	if id < 0 || id >= len(r.cvarArray) {
		return nil, errors.Errorf("cvar id %d out of bounds", id)
	}
	return r.cvarArray[id], nil
}

func (r *Registry) create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.set(value)
	cv.id = len(r.cvarArray)
	r.cvarArray = append(r.cvarArray, cv)
	r.cvarByName[name] = cv
	return cv
}

func (r *Registry) Register(name, value string, flags flag) (*Cvar, error) {
	if _, ok := r.cvarByName[name]; ok {
		return nil, errors.Errorf("can't register variable %s, already defined", name)
	}

	cv := r.create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

func (r *Registry) MustRegister(n, v string, flag flag) *Cvar {
	cv, err := r.Register(n, v, flag)
	if err != nil {
		panic(fmt.Sprintf("cvar %s: %v", n, err))
	}
	return cv
}

// ResetAll restores the default of every cvar.
func (r *Registry) ResetAll() {
	for _, cv := range r.cvarArray {
		cv.Reset()
	}
}

var std = NewRegistry()

// Default returns the process wide registry used by the package functions.
func Default() *Registry {
	return std
}

func All() []*Cvar {
	return std.All()
}

func Get(name string) (*Cvar, bool) {
	return std.Get(name)
}

func Register(name, value string, flags flag) (*Cvar, error) {
	return std.Register(name, value, flags)
}

func MustRegister(n, v string, flag flag) *Cvar {
	return std.MustRegister(n, v, flag)
}
