// SPDX-License-Identifier: GPL-2.0-or-later

// Package cmd splits console lines and config scripts into arguments and
// dispatches them to named commands.
package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

type QArg struct {
	a string
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() (int, error) {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0, errors.Wrapf(err, "argument %q is not an integer", a.a)
	}
	return int(r), nil
}

func (a QArg) Float32() (float32, error) {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "argument %q is not a number", a.a)
	}
	return float32(r), nil
}

func (a QArg) Bool() bool {
	switch a.a {
	case "1", "t", "T", "true", "TRUE", "True", "On", "ON", "on":
		return true
	default:
		return false
	}
}

type Arguments struct {
	// each arg on its own
	args []QArg
	// the trimmed input line
	full string
}

// Argv returns argument i or an empty argument if there is none.
func (c *Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		return QArg{""}
	}
	return c.args[i]
}

func (c *Arguments) Full() string {
	return c.full
}

func (c *Arguments) Args() []QArg {
	return c.args
}

// Name is the first argument, the command or cvar name.
func (c *Arguments) Name() string {
	return strings.ToLower(c.Argv(0).String())
}

func (c *Arguments) ArgumentString() string {
	// args[0] is the cmd
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	// we want to remove " around the text.
	// the end is not that important but the result should not start with " or
	// space.
	if len(r) > 1 {
		if r[0] == '"' {
			r = strings.Trim(r, "\"\t\n\v\f\r ")
		}
	}
	return r
}

// Parse splits a single line. Everything after // is ignored.
func Parse(s string) (Arguments, error) {
	args := Arguments{
		full: strings.TrimFunc(s, unicode.IsSpace),
		args: []QArg{},
	}

	l := lex(args.full)
	for {
		i := l.nextItem()

		switch i.typ {
		case itemChar, itemWord:
			args.args = append(args.args, QArg{i.val})
		case itemString:
			s := i.val
			s = strings.TrimPrefix(s, `"`)
			s = strings.TrimSuffix(s, `"`)
			args.args = append(args.args, QArg{s})
		case itemSpace, itemComment1:
			continue
		case itemEOF:
			return args, nil
		default:
			return args, errors.Errorf("parse %q: %s", args.full, i.val)
		}
	}
}

// ParseScript parses every statement of script. Statements end at a newline
// or at a ';' outside of quotes. Empty statements are dropped, the error
// names the 1-based line number.
func ParseScript(script string) ([]Arguments, error) {
	var r []Arguments
	line := 1
	for len(script) != 0 {
		quote := false
		i := 0
	StatementLoop:
		for ; i < len(script); i++ {
			switch script[i] {
			case '"':
				quote = !quote
			case ';':
				if !quote {
					break StatementLoop
				}
			case '\n':
				break StatementLoop
			}
		}
		a, err := Parse(script[:i])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(a.args) != 0 {
			r = append(r, a)
		}
		if i < len(script) {
			if script[i] == '\n' {
				line++
			}
			i++
		}
		script = script[i:]
	}
	return r, nil
}

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemString   // quoted string includes quotes
	itemChar     // '{','}','(',')','\'',':'
	itemSpace    // <=32
	itemComment1 //
	itemComment2 /* */
	itemWord     //
)
const eof = -1

type item struct {
	typ itemType
	val string
}

func (i item) String() string {
	switch i.typ {
	case itemEOF:
		return "EOF"
	case itemError:
		return i.val
	}
	if len(i.val) > 10 {
		return fmt.Sprintf("%.10q...", i.val)
	}
	return fmt.Sprintf("%q", i.val)
}

type stateFn func(*lexer) stateFn

type lexer struct {
	input string
	start int
	pos   int
	width int
	items chan item
	state stateFn
}

func lex(input string) *lexer {
	l := &lexer{
		input: input,
		items: make(chan item, 2),
		state: lexAction,
	}
	return l
}

func (l *lexer) nextItem() item {
	for {
		select {
		case item := <-l.items:
			return item
		default:
			l.state = l.state(l)
		}
	}
}

func (l *lexer) emit(t itemType) {
	l.items <- item{t, l.input[l.start:l.pos]}
	l.start = l.pos
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += l.width
	return r
}

func (l *lexer) ignore() {
	l.start = l.pos
}

func (l *lexer) backup() {
	l.pos -= l.width
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) accept(valid string) bool {
	if strings.IndexRune(valid, l.next()) >= 0 {
		return true
	}
	l.backup()
	return false
}

func (l *lexer) acceptRun(valid string) {
	for strings.IndexRune(valid, l.next()) >= 0 {
	}
	l.backup()
}

func (l *lexer) errorf(format string, args ...interface{}) stateFn {
	l.items <- item{
		itemError,
		fmt.Sprintf(format, args...),
	}
	return nil
}

func belowSpace(c rune) bool {
	return c <= ' '
}

func lexWord(l *lexer) stateFn {
Loop:
	for {
		switch r := l.next(); {
		case isQuakeRune(r):
			// absorb
		default:
			l.backup()
			l.emit(itemWord)
			break Loop
		}
	}
	return lexAction
}

func lexAction(l *lexer) stateFn {
	switch r := l.next(); {
	case r == eof || isEndOfLine(r):
		l.emit(itemEOF)
		return nil
	case isSpace(r):
		return lexSpace
	case r == '"':
		return lexQuote
	case r == '/':
		// special look-ahead so we don't break l.backup().
		if l.pos < len(l.input) {
			r := l.input[l.pos]
			if r == '/' {
				// just drop the rest of this line
				l.emit(itemEOF)
				return nil
			}
		}
		fallthrough
	case isQuakeRune(r):
		l.backup()
		return lexWord
	default:
		return l.errorf("unhandled char: %#U", r)
	}
}

func lexSpace(l *lexer) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	l.emit(itemSpace)
	return lexAction
}

func lexQuote(l *lexer) stateFn {
Loop:
	for {
		switch l.next() {
		case '"':
			break Loop
		case eof, '\n':
			return l.errorf("unterminated string")
		}
	}
	l.emit(itemString)
	return lexAction
}

func isQuakeRune(r rune) bool {
	// this is an ugly ascii workaround
	return r > ' '
}

func isEndOfLine(r rune) bool {
	return r == '\r' || r == '\n'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
