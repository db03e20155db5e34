// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hwwave

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind identifies how a signal is drawn.
//
type Kind int

// Signal kinds.
//
const (
	Clock Kind = iota // free running clock, no values
	Bit               // single bit signal
	Bus               // multi-bit value rendered as text in a cell
	Text              // free text per cycle, no waveform
)

var kindNames = [...]string{
	Clock: "clock",
	Bit:   "bit",
	Bus:   "bus",
	Text:  "text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// valid reports whether k is one of the known signal kinds.
//
func (k Kind) valid() bool {
	return k >= Clock && k <= Text
}

// ParseKind returns the Kind for the given name. Accepted names are clock
// (or clk), bit, bus and text (or event). Case is ignored.
//
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clock", "clk":
		return Clock, nil
	case "bit":
		return Bit, nil
	case "bus":
		return Bus, nil
	case "text", "event":
		return Text, nil
	}
	return 0, errors.Errorf("unknown signal kind %q", name)
}

// A Signal is a named row of a timing diagram.
//
// Clock signals carry no values. Bit signals use Bits, Bus and Text signals
// use Data. Color is an optional "#rrggbb" color used by backends to fill bus
// cells or stroke bit waves.
//
type Signal struct {
	Name  string
	Kind  Kind
	Bits  []bool
	Data  []string
	Color string
}

// ClockSignal returns a clock signal.
//
func ClockSignal(name string) Signal {
	return Signal{Name: name, Kind: Clock}
}

// BitSignal returns a single bit signal. Any non-zero level is high:
//
//	BitSignal("we", 0, 0, 1, 0)
//
func BitSignal(name string, levels ...int) Signal {
	bits := make([]bool, len(levels))
	for i, l := range levels {
		bits[i] = l != 0
	}
	return Signal{Name: name, Kind: Bit, Bits: bits}
}

// BusSignal returns a bus signal with the given cell values.
//
func BusSignal(name string, values ...string) Signal {
	return Signal{Name: name, Kind: Bus, Data: append([]string(nil), values...)}
}

// TextSignal returns a row of free text, one entry per cycle.
//
func TextSignal(name string, values ...string) Signal {
	return Signal{Name: name, Kind: Text, Data: append([]string(nil), values...)}
}

// Len returns the number of values held by s. Clock signals always return 0.
//
func (s *Signal) Len() int {
	switch s.Kind {
	case Bit:
		return len(s.Bits)
	case Bus, Text:
		return len(s.Data)
	}
	return 0
}

// fit returns a copy of s with exactly cycles values. Short value sequences
// are padded with their last value, long ones truncated. The second return
// value is the original length.
//
func (s Signal) fit(cycles int) (Signal, int) {
	n := s.Len()
	switch s.Kind {
	case Bit:
		s.Bits = fitBits(s.Bits, cycles)
	case Bus, Text:
		s.Data = fitData(s.Data, cycles)
	}
	return s, n
}

func fitBits(v []bool, cycles int) []bool {
	out := make([]bool, cycles)
	n := copy(out, v)
	if n > 0 {
		for i := n; i < cycles; i++ {
			out[i] = v[n-1]
		}
	}
	return out
}

func fitData(v []string, cycles int) []string {
	out := make([]string, cycles)
	n := copy(out, v)
	if n > 0 {
		for i := n; i < cycles; i++ {
			out[i] = v[n-1]
		}
	}
	return out
}

// ParseColor parses a "#rgb" or "#rrggbb" color.
//
func ParseColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if len(s) == 0 || s[0] != '#' {
		return c, errors.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return c, errors.Errorf("invalid color %q", s)
	}
	switch len(s) {
	case 4:
		c.R, c.G, c.B = uint8(v>>8&0xf*0x11), uint8(v>>4&0xf*0x11), uint8(v&0xf*0x11)
	case 7:
		c.R, c.G, c.B = uint8(v>>16), uint8(v>>8), uint8(v)
	default:
		return c, errors.Errorf("invalid color %q", s)
	}
	return c, nil
}
