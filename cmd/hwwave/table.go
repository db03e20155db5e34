// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"io"

	"github.com/db47h/hwwave"
	"github.com/db47h/hwwave/stages"
	"github.com/db47h/hwwave/wavefile"
	"github.com/markkurossi/tabulate"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table FILE",
	Short: "Print the per-cycle values of a signal table",
	Long: `Loads a signal table and prints the value of every signal at every cycle,
after padding and truncation. With --stage, FILE is the name of a built-in stage.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var d *hwwave.Diagram
		var err error
		if stage, _ := cmd.Flags().GetBool("stage"); stage {
			d, err = stages.Load(args[0])
		} else {
			d, err = wavefile.Load(args[0])
		}
		if err != nil {
			return err
		}
		for _, a := range d.Adjustments() {
			logger.Warn("signal length mismatch", "diagram", d.Title(), "signal", a.Signal, "adjustment", a.String())
		}
		printTable(cmd.OutOrStdout(), d)
		return nil
	},
}

func init() {
	tableCmd.Flags().BoolP("stage", "s", false, "load a built-in stage")
	rootCmd.AddCommand(tableCmd)
}

func printTable(w io.Writer, d *hwwave.Diagram) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Signal").SetAlign(tabulate.ML)
	tab.Header("Kind").SetAlign(tabulate.ML)
	for i := 0; i < d.Cycles(); i++ {
		tab.Header(d.CycleLabel(i)).SetAlign(tabulate.MR)
	}

	for i := 0; i < d.Len(); i++ {
		s := d.Signal(i)
		row := tab.Row()
		row.Column(s.Name).SetFormat(tabulate.FmtBold)
		row.Column(s.Kind.String())
		for c := 0; c < d.Cycles(); c++ {
			row.Column(cell(&s, c))
		}
	}
	tab.Print(w)
}

func cell(s *hwwave.Signal, c int) string {
	switch s.Kind {
	case hwwave.Clock:
		return "‾\\_"
	case hwwave.Bit:
		if s.Bits[c] {
			return "1"
		}
		return "0"
	}
	return s.Data[c]
}
