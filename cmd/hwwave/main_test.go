// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = `title "Memory stage"
cycles 4
CLK   clock
RE    bit 0 1 0 1
RDATA bus "???" 0x20 ---
`

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the command line and returns its standard and error output.
//
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTable(t *testing.T, name, data string) string {
	t.Helper()
	name = filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(name, []byte(data), 0o644))
	return name
}

func TestRender_png(t *testing.T) {
	in := writeTable(t, "mem.wave", table)
	_, logs, err := run(t, "render", in)
	require.NoError(t, err)

	out := strings.TrimSuffix(in, ".wave") + ".png"
	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 4*150)

	// RDATA has 3 values for 4 cycles
	assert.Contains(t, logs, "signal length mismatch")
	assert.Contains(t, logs, "signal=RDATA")
	assert.Contains(t, logs, "wrote diagram")
}

func TestRender_svg(t *testing.T) {
	in := writeTable(t, "mem.wave", table)
	out := filepath.Join(t.TempDir(), "mem.svg")
	_, _, err := run(t, "render", in, "-o", out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("<svg ")))
	assert.Equal(t, 1, bytes.Count(data, []byte("<polygon")))
}

func TestRender_verbose(t *testing.T) {
	in := writeTable(t, "mem.wave", table)
	_, logs, err := run(t, "render", "-v", in, "--dpi", "72")
	require.NoError(t, err)
	assert.Contains(t, logs, "level=DEBUG")
}

func TestRender_errors(t *testing.T) {
	in := writeTable(t, "mem.wave", table)
	_, _, err := run(t, "render", in, "--format", "bmp")
	assert.EqualError(t, err, `unknown output format "bmp"`)

	_, _, err = run(t, "render", in, "--dpi", "0")
	assert.Error(t, err)

	_, _, err = run(t, "render", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeTable(t, "bad.wave", "X wire 1\n")
	_, _, err = run(t, "render", bad)
	assert.Error(t, err)

	_, _, err = run(t, "render")
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	in := writeTable(t, "mem.wave", table)
	out, _, err := run(t, "table", in)
	require.NoError(t, err)
	for _, s := range []string{"Signal", "C0", "C3", "RDATA", "0x20", "???", "bus", "‾\\_"} {
		assert.Contains(t, out, s)
	}
	// clocks are high in the first half of the cycle
	assert.NotContains(t, out, "_/")
	// RDATA is padded with its last value
	assert.Equal(t, 2, strings.Count(out, "---"))
}

func TestTable_stage(t *testing.T) {
	out, _, err := run(t, "table", "--stage", "writeback")
	require.NoError(t, err)
	assert.Contains(t, out, "Cycle 12")
	assert.Contains(t, out, "inst_fetch_pc_o")

	_, _, err = run(t, "table", "-s", "fetch")
	assert.Error(t, err)
}

func TestStages(t *testing.T) {
	out, _, err := run(t, "stages", "--list")
	require.NoError(t, err)
	assert.Equal(t, "execute\nmemory\nwriteback\n", out)

	dir := filepath.Join(t.TempDir(), "out")
	_, _, err = run(t, "stages", "memory", "--dir", dir, "--format", "svg")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "memory.svg"))
	assert.NoError(t, err)

	_, _, err = run(t, "stages", "--dir", dir, "--dpi", "50")
	require.NoError(t, err)
	for _, n := range []string{"execute", "memory", "writeback"} {
		_, err = os.Stat(filepath.Join(dir, n+".png"))
		assert.NoError(t, err, n)
	}

	_, _, err = run(t, "stages", "decode", "--dir", dir)
	assert.EqualError(t, err, `unknown stage "decode"`)
}
