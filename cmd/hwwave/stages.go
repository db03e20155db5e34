// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/db47h/hwwave/stages"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var stagesCmd = &cobra.Command{
	Use:   "stages [NAME...]",
	Short: "Render the built-in pipeline stage diagrams",
	Long: `Renders the built-in execute, memory and writeback stage diagrams to
DIR/NAME.png (or .svg). With no NAME, all stages are rendered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			for _, n := range stages.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		}
		o, err := outputFlags(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create output directory")
		}
		if len(args) == 0 {
			args = stages.Names()
		}
		for _, name := range args {
			d, err := stages.Load(name)
			if err != nil {
				return err
			}
			if err = write(d, filepath.Join(dir, name+"."+o.format), o); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	stagesCmd.Flags().StringP("dir", "d", ".", "output directory")
	stagesCmd.Flags().BoolP("list", "l", false, "list stage names and exit")
	addOutputFlags(stagesCmd)
	rootCmd.AddCommand(stagesCmd)
}
