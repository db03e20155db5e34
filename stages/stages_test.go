// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package stages_test

import (
	"testing"

	hw "github.com/db47h/hwwave"
	"github.com/db47h/hwwave/stages"
	"github.com/db47h/hwwave/wavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"execute", "memory", "writeback"}, stages.Names())
}

func TestLoadAll(t *testing.T) {
	for _, name := range stages.Names() {
		t.Run(name, func(t *testing.T) {
			d, err := stages.Load(name)
			require.NoError(t, err)
			dr := hw.Render(d)
			assert.Len(t, dr.Rows, d.Len())
			assert.Len(t, dr.Labels, d.Cycles())
		})
	}
}

func TestExecute(t *testing.T) {
	d, err := stages.Load("execute")
	require.NoError(t, err)
	assert.Equal(t, 11, d.Cycles())
	assert.Equal(t, 12, d.Len())
	assert.Equal(t, hw.BottomUp, d.Order())
	assert.Equal(t, "C0", d.CycleLabel(0))

	dr := hw.Render(d)
	assert.Equal(t, "100ns", dr.Times[10])

	// Event at the bottom, clk at the top
	assert.Equal(t, "Event", dr.Rows[0].Name)
	assert.Less(t, dr.Rows[0].Y, dr.Rows[11].Y)

	// bus tables with 10 entries are padded to 11 cycles
	var padded []string
	for _, a := range d.Adjustments() {
		assert.Equal(t, 11, a.Want)
		padded = append(padded, a.Signal)
	}
	assert.Contains(t, padded, "PC (in)")
	assert.NotContains(t, padded, "reset_n")

	stall := d.Index("stall_read")
	require.GreaterOrEqual(t, stall, 0)
	waves := wavetest.Elements(dr, stall)
	require.Len(t, waves, 1)
	assert.Equal(t, []float64{7, 8}, wavetest.Edges(waves[0]))
	assert.Equal(t, "#d00000", d.Signal(stall).Color)

	alu := wavetest.Elements(dr, d.Index("Internal ALU"))
	assert.Equal(t, hw.Unknown, alu[0].Shape)
	assert.Equal(t, "A|B", alu[6].Text)
}

func TestMemory(t *testing.T) {
	d, err := stages.Load("memory")
	require.NoError(t, err)
	assert.Equal(t, hw.TopDown, d.Order())
	assert.Equal(t, "C1", d.CycleLabel(0))
	assert.Empty(t, d.Adjustments())
	assert.Len(t, d.Notes(), 3)

	dr := hw.Render(d)
	pc := wavetest.Elements(dr, d.Index("PC"))
	require.Len(t, pc, 11)
	assert.Equal(t, "0x0C", pc[3].Text)

	raddr := wavetest.Elements(dr, d.Index("RADDR"))
	assert.Equal(t, hw.Midline, raddr[0].Shape)
	assert.Equal(t, hw.Hold, raddr[1].Shape)
}

func TestWriteback(t *testing.T) {
	d, err := stages.Load("writeback")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Cycles())
	assert.Equal(t, 2.0, d.Spacing())
	assert.Equal(t, "Cycle 12", d.CycleLabel(11))

	// inst_fetch_pc_o holds 114 during the stall: two separate cells
	dr := hw.Render(d)
	pc := wavetest.Elements(dr, d.Index("inst_fetch_pc_o"))
	assert.Equal(t, "114", pc[5].Text)
	assert.Equal(t, "114", pc[6].Text)
	assert.Equal(t, hw.Hold, pc[6].Shape)
}

func TestUnknown(t *testing.T) {
	_, err := stages.Load("decode")
	assert.EqualError(t, err, `unknown stage "decode"`)
}
