// Copyright 2026 The hwwave Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hwwave renders timing diagrams to PNG or SVG files.
//
//	hwwave render memory.yaml -o memory.png
//	hwwave table memory.wave
//	hwwave stages --dir out
//
package main

func main() {
	Execute()
}
