// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wavefile loads timing diagrams from YAML, JSON or .wave tables.
//
// All three formats describe the same document:
//
//	title: Execute stage
//	cycles: 11          # optional, defaults to the longest signal
//	spacing: 1.5
//	order: bottom-up
//	label_format: C%d
//	first_cycle: 0
//	period: 10          # ns
//	signals:
//	  - {name: CLK, kind: clock}
//	  - {name: RE, kind: bit, values: [0, 1, 0, 1]}
//	  - {name: PC, kind: bus, values: [0x00, 0x04, "???"], color: "#fff2cc"}
//	notes:
//	  - {signal: PC, cycle: 1, text: "(A)"}
//
// Scalar values are decoded from their literal text, so that a YAML bus value
// written as 0x20 stays "0x20".
//
package wavefile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/db47h/hwwave"
	"github.com/db47h/hwwave/internal/wave"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Table formats.
//
const (
	YAML = "yaml"
	JSON = "json"
	Wave = "wave"
)

// FormatOf returns the table format for the given file name: JSON for .json
// files, Wave for .wave files and YAML for anything else.
//
func FormatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON
	case ".wave":
		return Wave
	}
	return YAML
}

// Load reads and decodes the table in the named file.
//
func Load(name string) (*hwwave.Diagram, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "load table")
	}
	d, err := Decode(data, FormatOf(name))
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return d, nil
}

// Decode decodes a table in the given format.
//
func Decode(data []byte, format string) (*hwwave.Diagram, error) {
	doc, err := Document(data, format)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// Document decodes a table into its generic form: nested maps and slices of
// strings.
//
func Document(data []byte, format string) (map[string]interface{}, error) {
	var v interface{}
	switch format {
	case YAML:
		var n yaml.Node
		if err := yaml.Unmarshal(data, &n); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
		v = nodeValue(&n)
		if m, ok := v.(map[string]interface{}); ok {
			itemLines(&n, m, "signals")
			itemLines(&n, m, "notes")
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, errors.Wrap(err, "parse json")
		}
	case Wave:
		doc, err := wave.Parse(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrap(err, "parse wave")
		}
		return doc, nil
	default:
		return nil, errors.Errorf("unknown table format %q", format)
	}
	switch doc := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return doc, nil
	}
	return nil, errors.Errorf("%s table: expected a mapping at top level, got %T", format, v)
}

// nodeValue converts a YAML node tree to nested maps and slices, keeping the
// literal text of scalars.
//
func nodeValue(n *yaml.Node) interface{} {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		s := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			s = append(s, nodeValue(c))
		}
		return s
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = nodeValue(n.Content[i+1])
		}
		return m
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		return n.Value
	}
	return nil
}

// itemLines sets the "line" entry of the mappings in the top level sequence
// key of doc to their line in the YAML source.
//
func itemLines(n *yaml.Node, doc map[string]interface{}, key string) {
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return
	}
	items, ok := doc[key].([]interface{})
	if !ok {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value != key || n.Content[i+1].Kind != yaml.SequenceNode {
			continue
		}
		for j, c := range n.Content[i+1].Content {
			if m, ok := items[j].(map[string]interface{}); ok && c.Kind == yaml.MappingNode {
				if _, set := m["line"]; !set {
					m["line"] = c.Line
				}
			}
		}
	}
}

// at prefixes err with the source line of the statement that caused it, if
// known.
//
func at(line int, err error) error {
	if line <= 0 {
		return err
	}
	return errors.Wrapf(err, "line %d", line)
}

type table struct {
	Title       string
	Cycles      int
	Spacing     float64
	Order       string
	LabelFormat string `mapstructure:"label_format"`
	FirstCycle  int    `mapstructure:"first_cycle"`
	Period      float64
	Signals     []signal
	Notes       []note
}

type signal struct {
	Name   string
	Kind   string
	Values []string
	Color  string
	Line   int
}

type note struct {
	Signal string
	Cycle  int
	Text   string
	Line   int
}

// FromDocument builds a diagram from a generic table document as returned
// by Document.
//
func FromDocument(doc map[string]interface{}) (*hwwave.Diagram, error) {
	var t table
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &t,
	})
	if err != nil {
		return nil, err
	}
	if err = dec.Decode(doc); err != nil {
		return nil, errors.Wrap(err, "decode table")
	}
	return t.diagram()
}

func (t *table) diagram() (*hwwave.Diagram, error) {
	sigs := make([]hwwave.Signal, 0, len(t.Signals))
	longest := 0
	for i := range t.Signals {
		s, err := t.Signals[i].signal()
		if err != nil {
			return nil, at(t.Signals[i].Line, err)
		}
		if n := s.Len(); n > longest {
			longest = n
		}
		sigs = append(sigs, s)
	}

	order, err := hwwave.ParseOrder(t.Order)
	if err != nil {
		return nil, err
	}
	cycles := t.Cycles
	if cycles == 0 {
		cycles = longest
	}
	notes := make([]hwwave.Note, 0, len(t.Notes))
	for _, n := range t.Notes {
		if err := n.check(sigs, cycles); err != nil {
			return nil, at(n.Line, err)
		}
		notes = append(notes, hwwave.Note{Signal: n.Signal, Cycle: n.Cycle, Text: n.Text})
	}
	return hwwave.New(cycles, sigs,
		hwwave.WithTitle(t.Title),
		hwwave.WithSpacing(t.Spacing),
		hwwave.WithOrder(order),
		hwwave.WithCycleLabels(t.LabelFormat, t.FirstCycle),
		hwwave.WithPeriod(t.Period),
		hwwave.WithNotes(notes...))
}

// check reports notes on unknown signals or cycles. cycles < 1 is left to
// hwwave.New.
//
func (n *note) check(sigs []hwwave.Signal, cycles int) error {
	found := false
	for i := range sigs {
		if sigs[i].Name == n.Signal {
			found = true
			break
		}
	}
	if !found {
		return errors.Errorf("note %q: no such signal %q", n.Text, n.Signal)
	}
	if cycles > 0 && (n.Cycle < 0 || n.Cycle >= cycles) {
		return errors.Errorf("note %q: cycle %d out of range [0, %d)", n.Text, n.Cycle, cycles)
	}
	return nil
}

func (s *signal) signal() (hwwave.Signal, error) {
	if s.Name == "" {
		return hwwave.Signal{}, errors.New("signal with no name")
	}
	k, err := hwwave.ParseKind(s.Kind)
	if err != nil {
		return hwwave.Signal{}, errors.Wrapf(err, "signal %q", s.Name)
	}
	if s.Color != "" {
		if _, err := hwwave.ParseColor(s.Color); err != nil {
			return hwwave.Signal{}, errors.Wrapf(err, "signal %q", s.Name)
		}
	}
	sig := hwwave.Signal{Name: s.Name, Kind: k, Color: s.Color}
	switch k {
	case hwwave.Clock:
		if len(s.Values) > 0 {
			return sig, errors.Errorf("signal %q: clock signals take no values", s.Name)
		}
	case hwwave.Bit:
		sig.Bits = make([]bool, len(s.Values))
		for i, v := range s.Values {
			b, err := parseBit(v)
			if err != nil {
				return sig, errors.Wrapf(err, "signal %q, cycle %d", s.Name, i)
			}
			sig.Bits[i] = b
		}
	default:
		sig.Data = s.Values
	}
	return sig, nil
}

func parseBit(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "h", "high":
		return true, nil
	case "l", "low":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Errorf("invalid bit value %q", v)
	}
	return b, nil
}
