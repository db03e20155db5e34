// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hwwave

import "github.com/pkg/errors"

type tap struct {
	name  string
	kind  Kind
	bit   func() bool
	value func() string
}

// A Recorder builds a Diagram by sampling taps once per cycle. This is the
// usual way to get a timing diagram out of a simulation loop:
//
//	var pc int
//	var stall bool
//	r := hwwave.NewRecorder()
//	r.Clock("clk")
//	r.Bit("stall", func() bool { return stall })
//	r.Bus("pc", func() string { return fmt.Sprintf("%03X", pc) })
//	for i := 0; i < 12; i++ {
//		step() // update pc and stall
//		r.Sample()
//	}
//	d, err := r.Diagram(hwwave.WithTitle("fetch"))
//
// Taps added after the first call to Sample are padded with their first
// sample.
//
type Recorder struct {
	taps []tap
	bits   [][]bool
	data   [][]string
	colors map[string]string
	cycles int
}

// NewRecorder returns an empty recorder.
//
func NewRecorder() *Recorder {
	return &Recorder{colors: make(map[string]string)}
}

func (r *Recorder) add(p tap) {
	r.taps = append(r.taps, p)
	r.bits = append(r.bits, nil)
	r.data = append(r.data, nil)
}

// Clock adds a clock signal.
//
func (r *Recorder) Clock(name string) {
	r.add(tap{name: name, kind: Clock})
}

// Bit adds a single bit tap.
//
func (r *Recorder) Bit(name string, f func() bool) {
	r.add(tap{name: name, kind: Bit, bit: f})
}

// Bus adds a bus tap. f should return one of the sentinel values for
// unknown or don't-care states.
//
func (r *Recorder) Bus(name string, f func() string) {
	r.add(tap{name: name, kind: Bus, value: f})
}

// Text adds a free text tap.
//
func (r *Recorder) Text(name string, f func() string) {
	r.add(tap{name: name, kind: Text, value: f})
}

// Color sets the display color of the named signal.
//
func (r *Recorder) Color(name, color string) {
	r.colors[name] = color
}

// Sample reads all taps and records their values for the current cycle.
//
func (r *Recorder) Sample() {
	for i, p := range r.taps {
		switch p.kind {
		case Bit:
			r.bits[i] = backfillBits(r.bits[i], r.cycles, p.bit())
		case Bus, Text:
			r.data[i] = backfillData(r.data[i], r.cycles, p.value())
		}
	}
	r.cycles++
}

// Cycles returns the number of recorded cycles.
//
func (r *Recorder) Cycles() int { return r.cycles }

// Diagram returns a diagram of the recorded cycles.
//
func (r *Recorder) Diagram(opts ...Option) (*Diagram, error) {
	if r.cycles == 0 {
		return nil, errors.New("no cycles recorded")
	}
	sigs := make([]Signal, len(r.taps))
	for i, p := range r.taps {
		sigs[i] = Signal{
			Name:  p.name,
			Kind:  p.kind,
			Bits:  r.bits[i],
			Data:  r.data[i],
			Color: r.colors[p.name],
		}
	}
	return New(r.cycles, sigs, opts...)
}

// backfillBits appends v to bits, first padding bits up to n values with v.
//
func backfillBits(bits []bool, n int, v bool) []bool {
	for len(bits) < n {
		bits = append(bits, v)
	}
	return append(bits, v)
}

func backfillData(data []string, n int, v string) []string {
	for len(data) < n {
		data = append(data, v)
	}
	return append(data, v)
}
