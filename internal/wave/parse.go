// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wave parses the line oriented .wave table format.
//
// Each line holds one statement made of bare words and double quoted strings.
// Lines starting with '#' followed by a blank are comments. Statements are:
//
//	title TEXT
//	cycles N
//	spacing X
//	order top-down|bottom-up
//	labels FORMAT [FIRST]
//	period NS
//	note SIGNAL CYCLE TEXT
//	color SIGNAL #RRGGBB
//	NAME KIND [VALUE...]
//
// Keywords are only recognized as bare words: a signal named "title" must be
// quoted.
//
// Parse returns the table as a generic document with the same layout as the
// YAML format so that both go through the same decoder. Signals and notes
// also get a "line" entry holding the line of their statement.
//
package wave

import (
	"io"
	"strconv"

	"github.com/db47h/hwwave"
	"github.com/db47h/hwwave/internal/lex"
	"github.com/pkg/errors"
)

type token struct {
	lex.Item
	quoted bool
}

func (t token) text() string { return t.Value.(string) }

// keywords maps statement keywords to their min and max argument counts.
//
var keywords = map[string][2]int{
	"title":   {1, 1},
	"cycles":  {1, 1},
	"spacing": {1, 1},
	"order":   {1, 1},
	"labels":  {1, 2},
	"period":  {1, 1},
	"note":    {3, 3},
	"color":   {2, 2},
}

// scalar keys of the document for single argument keywords.
//
var keys = map[string]string{
	"title":   "title",
	"cycles":  "cycles",
	"spacing": "spacing",
	"order":   "order",
	"period":  "period",
}

// Parse parses a .wave table.
//
func Parse(r io.Reader) (map[string]interface{}, error) {
	p := parser{
		l:      Lexer(r),
		doc:    make(map[string]interface{}),
		colors: make(map[string]token),
	}
	return p.parse()
}

type parser struct {
	l       lex.Interface
	doc     map[string]interface{}
	signals []interface{}
	notes   []interface{}
	colors  map[string]token
	order   []string
}

func parseError(line int, format string, args ...interface{}) error {
	return errors.Wrapf(errors.Errorf(format, args...), "line %d", line)
}

// line returns the tokens of the next non-empty statement. It returns nil at
// end of input.
//
func (p *parser) line() ([]token, error) {
	var toks []token
	for {
		i := p.l.Lex()
		switch i.Type {
		case EOF:
			return toks, nil
		case lex.Error:
			return nil, parseError(i.Line, "%v", i.Value)
		case Newline:
			if len(toks) > 0 {
				return toks, nil
			}
		case Word, String:
			toks = append(toks, token{i, i.Type == String})
		default:
			return nil, parseError(i.Line, "unexpected %s", i)
		}
	}
}

func (p *parser) parse() (map[string]interface{}, error) {
	for {
		toks, err := p.line()
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			break
		}
		if err := p.statement(toks); err != nil {
			return nil, err
		}
	}

	for _, name := range p.order {
		c := p.colors[name]
		s := p.find(name)
		if s == nil {
			return nil, parseError(c.Line, "color: no such signal %q", name)
		}
		s["color"] = c.text()
	}
	if p.signals != nil {
		p.doc["signals"] = p.signals
	}
	if p.notes != nil {
		p.doc["notes"] = p.notes
	}
	return p.doc, nil
}

func (p *parser) find(name string) map[string]interface{} {
	for _, s := range p.signals {
		if m := s.(map[string]interface{}); m["name"] == name {
			return m
		}
	}
	return nil
}

func (p *parser) statement(toks []token) error {
	kw := toks[0]
	args := toks[1:]
	n, ok := keywords[kw.text()]
	if !ok || kw.quoted {
		return p.signal(toks)
	}
	if len(args) < n[0] || len(args) > n[1] {
		if n[0] == n[1] {
			return parseError(kw.Line, "%s: expected %d argument(s), got %d", kw.text(), n[0], len(args))
		}
		return parseError(kw.Line, "%s: expected %d to %d arguments, got %d", kw.text(), n[0], n[1], len(args))
	}

	switch kw.text() {
	case "labels":
		p.doc["label_format"] = args[0].text()
		if len(args) > 1 {
			p.doc["first_cycle"] = args[1].text()
		}
	case "note":
		if _, err := strconv.Atoi(args[1].text()); err != nil {
			return parseError(args[1].Line, "note: invalid cycle %q", args[1].text())
		}
		p.notes = append(p.notes, map[string]interface{}{
			"signal": args[0].text(),
			"cycle":  args[1].text(),
			"text":   args[2].text(),
			"line":   kw.Line,
		})
	case "color":
		if _, err := hwwave.ParseColor(args[1].text()); err != nil {
			return parseError(args[1].Line, "color: %v", err)
		}
		name := args[0].text()
		if _, ok := p.colors[name]; !ok {
			p.order = append(p.order, name)
		}
		p.colors[name] = args[1]
	default:
		p.doc[keys[kw.text()]] = args[0].text()
	}
	return nil
}

func (p *parser) signal(toks []token) error {
	if len(toks) < 2 {
		return parseError(toks[0].Line, "signal %q: missing kind", toks[0].text())
	}
	values := make([]interface{}, 0, len(toks)-2)
	for _, t := range toks[2:] {
		values = append(values, t.text())
	}
	p.signals = append(p.signals, map[string]interface{}{
		"name":   toks[0].text(),
		"kind":   toks[1].text(),
		"values": values,
		"line":   toks[0].Line,
	})
	return nil
}
