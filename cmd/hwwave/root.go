// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/db47h/hwwave/internal/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewNop()

var rootCmd = &cobra.Command{
	Use:           "hwwave",
	Short:         "hwwave draws timing diagrams of hardware signals",
	Long:          `hwwave renders clock, bit and bus signal tables (YAML, JSON or .wave) to PNG or SVG timing diagrams.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = slog.LevelDebug
		}
		logger = logging.NewWriter(cmd.ErrOrStderr(), level)
	},
}

// Execute runs the root command and exits with status 1 on error.
//
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hwwave:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}
