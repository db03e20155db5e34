/*
Package hwwave draws timing diagrams of hardware signals.

A Diagram is an ordered list of signals sharing a cycle count. Signals come in
four kinds:

	Clock  a free running clock, high during the first half of every cycle
	Bit    a single bit, drawn as a step line
	Bus    a multi-bit value, drawn as a cell holding the value text
	Text   free text, one entry per cycle

Bus cells holding one of the UnknownValues ("???", "xxxx") are drawn as a
crossed box and cells holding one of the DontCareValues ("---", "-") as a flat
line. Any other value gets a hexagonal cell, even when equal to the value of the
previous cycle.

Render turns a Diagram into a Drawing: a list of polylines, polygons and text
anchors in diagram space where x is a cycle offset and y the row position.
Drawings are rasterized by package raster or converted to SVG by package svg.

Diagrams are either built from literal tables:

	d, err := hwwave.New(4, []hwwave.Signal{
		hwwave.ClockSignal("clk"),
		hwwave.BitSignal("we", 0, 0, 1, 0),
		hwwave.BusSignal("addr", "???", "0x20", "---"),
	}, hwwave.WithTitle("write"))

loaded from files with package wavefile or recorded from a running simulation
with a Recorder.

*/
package hwwave
