// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package wavefile_test

import (
	"os"
	"path/filepath"
	"testing"

	hw "github.com/db47h/hwwave"
	"github.com/db47h/hwwave/wavefile"
	"github.com/db47h/hwwave/wavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlTable = `
title: Memory stage
cycles: 4
spacing: 2
order: bottom-up
label_format: "Cycle %d"
first_cycle: 1
period: 10
signals:
  - {name: CLK, kind: clock}
  - {name: RE, kind: bit, values: [0, 1, 0, 1]}
  - name: RDATA
    kind: bus
    values: ["???", 0x20, "---"]
    color: "#fff2cc"
  - {name: Event, kind: text, values: ["", fetch]}
notes:
  - {signal: RDATA, cycle: 1, text: "(A)"}
`

const jsonTable = `{
	"title": "Memory stage",
	"cycles": 4,
	"spacing": 2,
	"order": "bottom-up",
	"label_format": "Cycle %d",
	"first_cycle": 1,
	"period": 10,
	"signals": [
		{"name": "CLK", "kind": "clock"},
		{"name": "RE", "kind": "bit", "values": [false, true, 0, 1]},
		{"name": "RDATA", "kind": "bus", "values": ["???", "0x20", "---"], "color": "#fff2cc"},
		{"name": "Event", "kind": "text", "values": ["", "fetch"]}
	],
	"notes": [{"signal": "RDATA", "cycle": 1, "text": "(A)"}]
}`

const waveTable = `# memory stage
title "Memory stage"
cycles 4
spacing 2
order bottom-up
labels "Cycle %d" 1
period 10

CLK   clock
RE    bit 0 1 0 1
RDATA bus "???" 0x20 ---
Event text "" fetch
note  RDATA 1 "(A)"
color RDATA #fff2cc
`

func TestFormatsAgree(t *testing.T) {
	want, err := wavefile.Decode([]byte(yamlTable), wavefile.YAML)
	require.NoError(t, err)

	assert.Equal(t, "Memory stage", want.Title())
	assert.Equal(t, 4, want.Cycles())
	assert.Equal(t, 2.0, want.Spacing())
	assert.Equal(t, hw.BottomUp, want.Order())
	assert.Equal(t, 10.0, want.Period())
	assert.Equal(t, "Cycle 1", want.CycleLabel(0))
	assert.Equal(t, []hw.Note{{Signal: "RDATA", Cycle: 1, Text: "(A)"}}, want.Notes())
	rd := want.Signal(2)
	assert.Equal(t, []string{"???", "0x20", "---", "---"}, rd.Data)
	assert.Equal(t, "#fff2cc", rd.Color)
	assert.Equal(t, []bool{false, true, false, true}, want.Signal(1).Bits)

	for _, f := range []struct{ format, src string }{
		{wavefile.JSON, jsonTable},
		{wavefile.Wave, waveTable},
	} {
		t.Run(f.format, func(t *testing.T) {
			got, err := wavefile.Decode([]byte(f.src), f.format)
			require.NoError(t, err)
			assert.Equal(t, want.Title(), got.Title())
			assert.Equal(t, want.Notes(), got.Notes())
			assert.Equal(t, want.Adjustments(), got.Adjustments())
			wavetest.CompareDrawings(t, hw.Render(want), hw.Render(got))
		})
	}
}

func TestDefaultCycles(t *testing.T) {
	d, err := wavefile.Decode([]byte("A bit 0 1\nB bus a b c\nC clock\n"), wavefile.Wave)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Cycles())
	assert.Equal(t, []hw.Adjustment{{Signal: "A", Have: 2, Want: 3}}, d.Adjustments())
	assert.Equal(t, hw.TopDown, d.Order())
	assert.Equal(t, hw.DefaultSpacing, d.Spacing())
}

func TestDecodeErrors(t *testing.T) {
	data := []struct {
		name   string
		format string
		src    string
	}{
		{"unknown kind", wavefile.YAML, "signals: [{name: A, kind: wire}]"},
		{"bad bit", wavefile.YAML, "signals: [{name: A, kind: bit, values: [2]}]"},
		{"clock values", wavefile.YAML, "signals: [{name: A, kind: clock, values: [1]}]"},
		{"no name", wavefile.YAML, "signals: [{kind: bit, values: [1]}]"},
		{"unknown field", wavefile.YAML, "cycles: 2\ncolour: red\n"},
		{"bad order", wavefile.YAML, "order: sideways\nsignals: [{name: A, kind: bit, values: [1]}]"},
		{"no cycles", wavefile.YAML, "signals: [{name: A, kind: clock}]"},
		{"bad note", wavefile.YAML, "signals: [{name: A, kind: bit, values: [1]}]\nnotes: [{signal: B, cycle: 0, text: x}]"},
		{"bad color", wavefile.YAML, "signals: [{name: A, kind: bus, values: [x], color: red}]"},
		{"bad label format", wavefile.YAML, "label_format: Cycle\nsignals: [{name: A, kind: bit, values: [1]}]"},
		{"not a mapping", wavefile.YAML, "- a\n- b\n"},
		{"bad json", wavefile.JSON, "{"},
		{"bad wave", wavefile.Wave, "title \"x\n"},
		{"bad format", "toml", ""},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := wavefile.Decode([]byte(d.src), d.format)
			assert.Error(t, err)
		})
	}
}

func TestDecodeErrorLines(t *testing.T) {
	data := []struct {
		name   string
		format string
		src    string
		line   string
		msg    string
	}{
		{"wave bit", wavefile.Wave, "cycles 2\n\nA bit 0 q\n", "line 3", `invalid bit value "q"`},
		{"wave kind", wavefile.Wave, "A bit 0 1\nB wire\n", "line 2", `signal "B"`},
		{"wave note signal", wavefile.Wave, "cycles 2\nA bit 0 1\n\nnote B 0 \"x\"\n", "line 4", `no such signal "B"`},
		{"wave note cycle", wavefile.Wave, "cycles 2\nA bit 0 1\nnote A 5 \"x\"\n", "line 3", "out of range"},
		{"wave color", wavefile.Wave, "A bus x\ncolor A red\n", "line 2", `invalid color "red"`},
		{"yaml kind", wavefile.YAML, "signals:\n  - {name: A, kind: bit, values: [1]}\n  - {name: B, kind: wire}\n", "line 3", `signal "B"`},
		{"yaml color", wavefile.YAML, "signals:\n- {name: A, kind: bus, values: [x], color: red}\n", "line 2", `invalid color "red"`},
		{"yaml note", wavefile.YAML, "signals: [{name: A, kind: bit, values: [1]}]\nnotes:\n  - {signal: A, cycle: 3, text: x}\n", "line 3", "out of range"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := wavefile.Decode([]byte(d.src), d.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), d.line)
			assert.Contains(t, err.Error(), d.msg)
		})
	}

	_, err := wavefile.Decode([]byte("label_format: Cycle\nsignals: [{name: A, kind: clock}]\ncycles: 2\n"), wavefile.YAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cycle label format")
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, wavefile.JSON, wavefile.FormatOf("a/b.JSON"))
	assert.Equal(t, wavefile.Wave, wavefile.FormatOf("x.wave"))
	assert.Equal(t, wavefile.YAML, wavefile.FormatOf("x.yml"))
	assert.Equal(t, wavefile.YAML, wavefile.FormatOf("x"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "mem.wave")
	require.NoError(t, os.WriteFile(name, []byte(waveTable), 0o644))
	d, err := wavefile.Load(name)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("order: sideways\n"), 0o644))
	_, err = wavefile.Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	_, err = wavefile.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
