// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex provides a small state function based lexer.
//
// A lexer runs state functions that read runes with Next and Backup and emit
// items with Emit. When a state function returns nil, the lexer restarts at its
// initial state for the next item.
//
package lex

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"
)

// Type is the type of a lexical item. Values >= 0 are free for use by clients.
//
type Type int

// EOF is both the item type emitted at end of input and the rune returned by
// Next at end of input.
//
const EOF = -1

// Error is the item type emitted on read errors.
//
const Error Type = -2

// Pos is a rune offset in the input.
//
type Pos int

// An Item is a lexical item.
//
type Item struct {
	Type  Type
	Pos   Pos
	Line  int
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case EOF:
		return "end of input"
	case Error:
		return fmt.Sprintf("error: %v", i.Value)
	}
	switch v := i.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case rune:
		return fmt.Sprintf("%q", v)
	}
	return fmt.Sprint(i.Value)
}

// A StateFn is a lexer state function.
//
type StateFn func(l *Lexer) StateFn

// Interface is the interface of a lexer.
//
type Interface interface {
	// Lex returns the next item in the input stream.
	Lex() Item
}

// Lexer is the state machine running the state functions.
//
type Lexer struct {
	r     *bufio.Reader
	init  StateFn
	state StateFn
	items []Item

	cur    rune
	pos    Pos // position of cur
	line   int // line of cur
	start  Pos
	sline  int
	backed bool
	err    error
}

// New returns a lexer reading from r, starting in state init.
//
func New(r io.Reader, init StateFn) *Lexer {
	return &Lexer{
		r:    bufio.NewReader(r),
		init: init,
		pos:  -1,
		line: 1,
		cur:  utf8.RuneError,
	}
}

// Lex implements Interface.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			l.start, l.sline = l.pos+1, l.line
			if l.backed {
				l.start = l.pos
			} else if l.cur == '\n' {
				l.sline++
			}
			l.state = l.init
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

// Next reads the next rune. It returns EOF at end of input or on error.
//
func (l *Lexer) Next() rune {
	if l.backed {
		l.backed = false
		return l.cur
	}
	if l.cur == EOF {
		return EOF
	}
	if l.cur == '\n' {
		l.line++
	}
	r, _, err := l.r.ReadRune()
	l.pos++
	if err != nil {
		if err != io.EOF {
			l.err = err
		}
		l.cur = EOF
		return EOF
	}
	l.cur = r
	return r
}

// Backup steps back one rune. Only one rune of backup is supported.
//
func (l *Lexer) Backup() {
	l.backed = true
}

// Current returns the last rune read by Next.
//
func (l *Lexer) Current() rune {
	return l.cur
}

// Peek returns the next rune without consuming it.
//
func (l *Lexer) Peek() rune {
	r := l.Next()
	l.Backup()
	return r
}

// AcceptWhile reads runes while f returns true. The first rune for which f
// returns false is left in the input.
//
func (l *Lexer) AcceptWhile(f func(rune) bool) {
	r := l.Next()
	for r != EOF && f(r) {
		r = l.Next()
	}
	l.Backup()
}

// Emit emits an item of type t with value v at the start position of the
// current item. If a read error occurred, an Error item is emitted instead.
//
func (l *Lexer) Emit(t Type, v interface{}) {
	if l.err != nil {
		t, v = Error, l.err
		l.err = nil
	}
	l.items = append(l.items, Item{Type: t, Pos: l.start, Line: l.sline, Value: v})
}

// Errorf emits an Error item.
//
func (l *Lexer) Errorf(format string, args ...interface{}) {
	l.items = append(l.items, Item{Type: Error, Pos: l.start, Line: l.sline, Value: fmt.Errorf(format, args...)})
}
