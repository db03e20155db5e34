// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package wave

import (
	"io"
	"strings"
	"unicode"

	"github.com/db47h/hwwave/internal/lex"
)

// Tokens
const (
	EOF     lex.Type = lex.EOF
	Word    lex.Type = iota // bare word
	String                  // quoted string
	Newline                 // end of statement
)

// Lexer returns a new lexer for .wave tables.
//
func Lexer(r io.Reader) lex.Interface {
	return lex.New(r, lexInit)
}

func isBlank(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEOF
	case r == '\n':
		l.Emit(Newline, "newline")
	case isBlank(r):
		l.AcceptWhile(isBlank)
	case r == '"':
		return lexString
	case r == '#':
		// comment only if followed by a blank, a newline, EOF or another '#'
		// so that colors like #fff2cc are plain words.
		if n := l.Peek(); n == lex.EOF || n == '#' || unicode.IsSpace(n) {
			l.AcceptWhile(func(r rune) bool { return r != '\n' })
			return nil
		}
		lexWord(l, r)
	default:
		lexWord(l, r)
	}
	return nil
}

// lexWord emits a bare word starting with r.
//
func lexWord(l *lex.Lexer, r rune) {
	var buf strings.Builder
	buf.WriteRune(r)
	r = l.Next()
	for r != lex.EOF && r != '"' && !unicode.IsSpace(r) {
		buf.WriteRune(r)
		r = l.Next()
	}
	l.Backup()
	l.Emit(Word, buf.String())
}

func lexString(l *lex.Lexer) lex.StateFn {
	var buf strings.Builder
	for {
		r := l.Next()
		switch r {
		case '"':
			l.Emit(String, buf.String())
			return nil
		case lex.EOF, '\n':
			l.Errorf("unterminated string")
			l.Backup()
			return nil
		case '\\':
			switch e := l.Next(); e {
			case 'n':
				buf.WriteRune('\n')
			case 't':
				buf.WriteRune('\t')
			case '"', '\\':
				buf.WriteRune(e)
			default:
				l.Errorf("invalid escape sequence \\%c", e)
				return lexSkipLine
			}
		default:
			buf.WriteRune(r)
		}
	}
}

// lexSkipLine drops the rest of the current line after an error.
//
func lexSkipLine(l *lex.Lexer) lex.StateFn {
	l.AcceptWhile(func(r rune) bool { return r != '\n' })
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return lexEOF
}
