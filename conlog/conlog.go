// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog routes console output and module loggers to one sink.
package conlog

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu             sync.Mutex
	leveledBackend logging.LeveledBackend
	sink           io.Writer = os.Stdout

	p  func(string, ...interface{})
	sp func(string, ...interface{})
)

// Logger is the leveled logger handed out to the packages.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a named logger.
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink replaces the output of all loggers and of Printf.
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	sink = w
	backend := logging.NewLogBackend(w, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	leveledBackend.SetLevel(logging.NOTICE, "")
	logging.SetBackend(leveledBackend)
}

func SetLevel(level Level) {
	var l logging.Level
	switch level {
	case Debug:
		l = logging.DEBUG
	case Info:
		l = logging.INFO
	case Notice:
		l = logging.NOTICE
	case Warning:
		l = logging.WARNING
	default:
		l = logging.ERROR
	}
	mu.Lock()
	leveledBackend.SetLevel(l, "")
	mu.Unlock()
}

func SetPrintf(f func(string, ...interface{})) {
	p = f
}

func SetSafePrintf(f func(string, ...interface{})) {
	sp = f
}

// Printf writes user facing output, unformatted by the log backend.
func Printf(format string, v ...interface{}) {
	if p != nil {
		p(format, v...)
		return
	}
	mu.Lock()
	w := sink
	mu.Unlock()
	fmt.Fprintf(w, format, v...)
}

// SafePrintf is Printf for callers that may run concurrently to others.
func SafePrintf(format string, v ...interface{}) {
	if sp != nil {
		sp(format, v...)
		return
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(sink, format, v...)
}

func init() {
	SetSink(os.Stdout)
}
