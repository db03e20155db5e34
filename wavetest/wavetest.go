// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package wavetest provides utility functions for testing diagram renderers.
//
package wavetest

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/db47h/hwwave"
)

// BusPool is the set of values RandomDiagram picks bus values from. It
// includes the sentinel values.
//
var BusPool = []string{"???", "xxxx", "---", "-", "0x00", "0x20", "ADD", "NOP", "A|B", "114"}

func randBool(r *rand.Rand) bool {
	return r.Int63()&(1<<62) != 0
}

// RandomSignals returns n random signals of every kind. Value sequences have
// random lengths in [0, 2*cycles) so that diagrams built from them get padded
// and truncated signals.
//
func RandomSignals(r *rand.Rand, cycles, n int) []hwwave.Signal {
	sigs := make([]hwwave.Signal, n)
	for i := range sigs {
		name := "s" + strconv.Itoa(i)
		l := r.Intn(2 * cycles)
		switch hwwave.Kind(r.Intn(4)) {
		case hwwave.Clock:
			sigs[i] = hwwave.ClockSignal(name)
		case hwwave.Bit:
			s := hwwave.Signal{Name: name, Kind: hwwave.Bit}
			for j := 0; j < l; j++ {
				s.Bits = append(s.Bits, randBool(r))
			}
			sigs[i] = s
		case hwwave.Bus:
			s := hwwave.Signal{Name: name, Kind: hwwave.Bus}
			for j := 0; j < l; j++ {
				s.Data = append(s.Data, BusPool[r.Intn(len(BusPool))])
			}
			sigs[i] = s
		default:
			s := hwwave.Signal{Name: name, Kind: hwwave.Text}
			for j := 0; j < l; j++ {
				s.Data = append(s.Data, "["+strconv.Itoa(j)+"]")
			}
			sigs[i] = s
		}
	}
	return sigs
}

// RandomDiagram returns a diagram with random signals.
//
func RandomDiagram(r *rand.Rand, cycles, n int) *hwwave.Diagram {
	order := hwwave.TopDown
	if randBool(r) {
		order = hwwave.BottomUp
	}
	return hwwave.MustNew(cycles, RandomSignals(r, cycles, n), hwwave.WithOrder(order))
}

// Edges returns the x coordinates of the vertical segments of a wave element.
//
func Edges(e hwwave.Element) []float64 {
	var xs []float64
	for i := 1; i < len(e.Points); i++ {
		p, q := e.Points[i-1], e.Points[i]
		if p.X == q.X && p.Y != q.Y {
			xs = append(xs, p.X)
		}
	}
	return xs
}

// Periods returns the number of rising edges of a wave element.
//
func Periods(e hwwave.Element) int {
	n := 0
	for i := 1; i < len(e.Points); i++ {
		p, q := e.Points[i-1], e.Points[i]
		if p.X == q.X && q.Y > p.Y {
			n++
		}
	}
	return n
}

// Elements returns the elements of signal sig in d.
//
func Elements(d *hwwave.Drawing, sig int) []hwwave.Element {
	var out []hwwave.Element
	for _, e := range d.Elements {
		if e.Signal == sig {
			out = append(out, e)
		}
	}
	return out
}

func elemString(e hwwave.Element) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v signal=%d cycle=%d", e.Shape, e.Signal, e.Cycle)
	if e.Text != "" {
		fmt.Fprintf(&b, " text=%q", e.Text)
	}
	for _, p := range e.Points {
		fmt.Fprintf(&b, " (%g,%g)", p.X, p.Y)
	}
	return b.String()
}

// CompareDrawings fails t if want and got differ. Geometry is compared
// exactly.
//
func CompareDrawings(t testing.TB, want, got *hwwave.Drawing) {
	t.Helper()

	if want.Title != got.Title || want.Cycles != got.Cycles || want.Height != got.Height {
		t.Fatalf("header mismatch:\nExpected %q cycles=%d height=%g\nGot %q cycles=%d height=%g",
			want.Title, want.Cycles, want.Height, got.Title, got.Cycles, got.Height)
	}
	if len(want.Rows) != len(got.Rows) {
		t.Fatalf("len(want.Rows) = %d != len(got.Rows) = %d", len(want.Rows), len(got.Rows))
	}
	for i := range want.Rows {
		if want.Rows[i] != got.Rows[i] {
			t.Fatalf("row %d:\nExpected %+v\nGot %+v", i, want.Rows[i], got.Rows[i])
		}
	}
	if strings.Join(want.Labels, "\x00") != strings.Join(got.Labels, "\x00") ||
		strings.Join(want.Times, "\x00") != strings.Join(got.Times, "\x00") {
		t.Fatalf("cycle labels:\nExpected %q %q\nGot %q %q", want.Labels, want.Times, got.Labels, got.Times)
	}
	if len(want.Elements) != len(got.Elements) {
		t.Fatalf("len(want.Elements) = %d != len(got.Elements) = %d", len(want.Elements), len(got.Elements))
	}
	for i := range want.Elements {
		if ws, gs := elemString(want.Elements[i]), elemString(got.Elements[i]); ws != gs || want.Elements[i].At != got.Elements[i].At {
			t.Fatalf("element %d:\nExpected %s at %v\nGot %s at %v", i, ws, want.Elements[i].At, gs, got.Elements[i].At)
		}
	}
}
