// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"path/filepath"
	"strings"

	"github.com/db47h/hwwave"
	"github.com/db47h/hwwave/raster"
	"github.com/db47h/hwwave/svg"
	"github.com/db47h/hwwave/wavefile"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a signal table",
	Long: `Renders a YAML, JSON or .wave signal table to a PNG or SVG image.

The output file defaults to FILE with its extension replaced by the output
format. The format defaults to the extension of the output file, or png.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		o, err := outputFlags(cmd)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("format") && out != "" {
			if f := formatOf(out); f != "" {
				o.format = f
			}
		}
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + o.format
		}

		d, err := wavefile.Load(args[0])
		if err != nil {
			return err
		}
		return write(d, out, o)
	},
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output file")
	addOutputFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)
}

type output struct {
	format string
	raster raster.Options
	svg    svg.Options
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "png", "output format: png or svg")
	cmd.Flags().Float64("dpi", raster.DefaultOptions.DPI, "png resolution")
	cmd.Flags().Float64("scale", raster.DefaultOptions.CycleWidth, "width of a cycle in points")
}

func outputFlags(cmd *cobra.Command) (output, error) {
	var o output
	o.format, _ = cmd.Flags().GetString("format")
	o.format = strings.ToLower(o.format)
	if o.format != "png" && o.format != "svg" {
		return o, errors.Errorf("unknown output format %q", o.format)
	}
	dpi, _ := cmd.Flags().GetFloat64("dpi")
	scale, _ := cmd.Flags().GetFloat64("scale")
	if dpi <= 0 || scale <= 0 {
		return o, errors.New("dpi and scale must be positive")
	}
	o.raster = raster.Options{DPI: dpi, CycleWidth: scale}
	o.svg = svg.Options{CycleWidth: scale}
	return o, nil
}

// formatOf returns the output format matching the extension of name or "".
//
func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "png"
	case ".svg":
		return "svg"
	}
	return ""
}

func write(d *hwwave.Diagram, name string, o output) error {
	for _, a := range d.Adjustments() {
		logger.Warn("signal length mismatch", "diagram", d.Title(), "signal", a.Signal, "adjustment", a.String())
	}
	dr := hwwave.Render(d)
	logger.Debug("rendered", "diagram", d.Title(), "cycles", d.Cycles(), "signals", d.Len(), "elements", len(dr.Elements))

	var err error
	switch o.format {
	case "svg":
		err = svg.Save(name, dr, o.svg)
	default:
		err = raster.Save(name, dr, o.raster)
	}
	if err != nil {
		return err
	}
	logger.Info("wrote diagram", "file", name)
	return nil
}
