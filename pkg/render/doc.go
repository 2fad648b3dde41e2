// Package render exports pathway graphs as Graphviz DOT and rasterizes them
// to SVG, PNG and PDF.
//
// Node positions come from the graph itself (KGML coordinates or a layout
// pass), so the DOT output pins every node and uses the neato engine rather
// than letting Graphviz lay the graph out again. Overlay colors and widths,
// edge status styling and visible decorators all survive the export.
package render
