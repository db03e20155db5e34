// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package stages provides the timing diagrams of the execute, memory and
// writeback stages of a small RISC pipeline.
//
package stages

import (
	"embed"
	"sort"
	"strings"

	"github.com/db47h/hwwave"
	"github.com/db47h/hwwave/wavefile"
	"github.com/pkg/errors"
)

//go:embed *.yaml
var tables embed.FS

// Names returns the names of the built-in stages in sorted order.
//
func Names() []string {
	ents, err := tables.ReadDir(".")
	if err != nil {
		panic(err)
	}
	var names []string
	for _, e := range ents {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Source returns the YAML table of the named stage.
//
func Source(name string) ([]byte, error) {
	data, err := tables.ReadFile(name + ".yaml")
	if err != nil {
		return nil, errors.Errorf("unknown stage %q", name)
	}
	return data, nil
}

// Load returns the diagram of the named stage.
//
func Load(name string) (*hwwave.Diagram, error) {
	data, err := Source(name)
	if err != nil {
		return nil, err
	}
	d, err := wavefile.Decode(data, wavefile.YAML)
	if err != nil {
		return nil, errors.Wrapf(err, "stage %s", name)
	}
	return d, nil
}
