// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hwwave

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Order is the display order of the signals in a diagram.
//
type Order int

// Display orders.
//
const (
	TopDown  Order = iota // first signal at the top
	BottomUp              // first signal at the bottom
)

// ParseOrder parses "top-down" or "bottom-up". An empty string is TopDown.
//
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "top-down", "topdown":
		return TopDown, nil
	case "bottom-up", "bottomup":
		return BottomUp, nil
	}
	return 0, errors.Errorf("unknown signal order %q", s)
}

func (o Order) String() string {
	if o == BottomUp {
		return "bottom-up"
	}
	return "top-down"
}

// DefaultSpacing is the default vertical distance between two signal rows.
//
const DefaultSpacing = 1.5

// A Note is a text annotation drawn under a given cycle of a signal.
//
type Note struct {
	Signal string
	Cycle  int
	Text   string
}

// An Adjustment records a signal whose value sequence did not match the
// diagram's cycle count and has been padded or truncated.
//
type Adjustment struct {
	Signal string
	Have   int // original number of values
	Want   int // cycle count
}

func (a Adjustment) String() string {
	if a.Have < a.Want {
		return fmt.Sprintf("%s: padded from %d to %d values", a.Signal, a.Have, a.Want)
	}
	return fmt.Sprintf("%s: truncated from %d to %d values", a.Signal, a.Have, a.Want)
}

// Diagram is an immutable timing diagram: an ordered list of signals sharing
// the same number of cycles.
//
type Diagram struct {
	title   string
	cycles  int
	signals []Signal
	spacing float64
	order   Order
	labels  string
	first   int
	period  float64
	notes   []Note
	adj     []Adjustment
}

// Option configures a Diagram in New.
//
type Option func(*Diagram)

// WithTitle sets the diagram title.
//
func WithTitle(title string) Option {
	return func(d *Diagram) { d.title = title }
}

// WithSpacing sets the vertical spacing between signal rows. Values <= 0 are
// ignored.
//
func WithSpacing(spacing float64) Option {
	return func(d *Diagram) {
		if spacing > 0 {
			d.spacing = spacing
		}
	}
}

// WithOrder sets the display order of the signals.
//
func WithOrder(o Order) Option {
	return func(d *Diagram) { d.order = o }
}

// WithCycleLabels sets the cycle label format and the number of the first
// cycle. The format must contain exactly one integer verb:
//
//	WithCycleLabels("Cycle %d", 1) // Cycle 1, Cycle 2, ...
//
func WithCycleLabels(format string, first int) Option {
	return func(d *Diagram) {
		if format != "" {
			d.labels = format
		}
		d.first = first
	}
}

// WithPeriod sets the clock period in nanoseconds. When set, backends print
// the start time of each cycle under its label.
//
func WithPeriod(ns float64) Option {
	return func(d *Diagram) { d.period = ns }
}

// WithNotes adds annotations to the diagram.
//
func WithNotes(notes ...Note) Option {
	return func(d *Diagram) { d.notes = append(d.notes, notes...) }
}

// New returns a new diagram with the given cycle count and signals.
//
// Signal value sequences are fitted to the cycle count: shorter ones are padded
// by repeating their last value and longer ones are truncated. Each fitted
// signal is reported by Adjustments.
//
// New returns an error if cycles < 1, if the cycle label format does not take
// exactly one integer, if a signal has an unknown kind or an invalid color or
// if a note refers to an unknown signal or cycle.
//
func New(cycles int, signals []Signal, opts ...Option) (*Diagram, error) {
	if cycles < 1 {
		return nil, errors.Errorf("invalid cycle count %d", cycles)
	}
	d := &Diagram{
		cycles:  cycles,
		spacing: DefaultSpacing,
		labels:  "C%d",
	}
	for _, o := range opts {
		o(d)
	}
	if l := fmt.Sprintf(d.labels, d.first); strings.Contains(l, "%!") {
		return nil, errors.Errorf("invalid cycle label format %q", d.labels)
	}

	d.signals = make([]Signal, 0, len(signals))
	for i, s := range signals {
		if !s.Kind.valid() {
			return nil, errors.Errorf("signal #%d %q: unknown kind %d", i, s.Name, int(s.Kind))
		}
		if s.Color != "" {
			if _, err := ParseColor(s.Color); err != nil {
				return nil, errors.Wrapf(err, "signal %q", s.Name)
			}
		}
		fs, n := s.fit(cycles)
		if s.Kind != Clock && n != cycles {
			d.adj = append(d.adj, Adjustment{Signal: s.Name, Have: n, Want: cycles})
		}
		d.signals = append(d.signals, fs)
	}

	for _, n := range d.notes {
		if d.Index(n.Signal) < 0 {
			return nil, errors.Errorf("note %q: no such signal %q", n.Text, n.Signal)
		}
		if n.Cycle < 0 || n.Cycle >= cycles {
			return nil, errors.Errorf("note %q: cycle %d out of range [0, %d)", n.Text, n.Cycle, cycles)
		}
	}
	return d, nil
}

// MustNew is like New but panics on error. It is intended for diagrams built
// from literal tables.
//
func MustNew(cycles int, signals []Signal, opts ...Option) *Diagram {
	d, err := New(cycles, signals, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Title returns the diagram title.
//
func (d *Diagram) Title() string { return d.title }

// Cycles returns the cycle count.
//
func (d *Diagram) Cycles() int { return d.cycles }

// Len returns the number of signals.
//
func (d *Diagram) Len() int { return len(d.signals) }

// Signal returns a copy of signal i.
//
func (d *Diagram) Signal(i int) Signal {
	s := d.signals[i]
	s.Bits = append([]bool(nil), s.Bits...)
	s.Data = append([]string(nil), s.Data...)
	return s
}

// Index returns the index of the first signal with the given name or -1.
//
func (d *Diagram) Index(name string) int {
	for i := range d.signals {
		if d.signals[i].Name == name {
			return i
		}
	}
	return -1
}

// Spacing returns the vertical distance between two rows.
//
func (d *Diagram) Spacing() float64 { return d.spacing }

// Order returns the display order.
//
func (d *Diagram) Order() Order { return d.order }

// Period returns the clock period in nanoseconds, 0 if unset.
//
func (d *Diagram) Period() float64 { return d.period }

// Notes returns the diagram annotations.
//
func (d *Diagram) Notes() []Note { return append([]Note(nil), d.notes...) }

// Adjustments returns the signals that were padded or truncated by New.
//
func (d *Diagram) Adjustments() []Adjustment { return append([]Adjustment(nil), d.adj...) }

// CycleLabel returns the label of cycle i.
//
func (d *Diagram) CycleLabel(i int) string {
	return fmt.Sprintf(d.labels, i+d.first)
}

// Row returns the vertical position of the base line of signal i.
//
func (d *Diagram) Row(i int) float64 {
	if d.order == TopDown {
		return float64(len(d.signals)-1-i) * d.spacing
	}
	return float64(i) * d.spacing
}
