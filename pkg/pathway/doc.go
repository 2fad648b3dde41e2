// Package pathway provides the mutable metabolic pathway graph shared by
// the annotation, layout and rendering components.
//
// The graph holds metabolite nodes and reaction edges together with two
// derived satellite entities per edge: a cassette callout showing the
// edge's free-text annotation, and a knockout mark shown when the edge's
// status is removed. Satellite state (position, visibility, label) is never
// edited directly; [Refresh] re-derives all of it from the primary graph in
// one idempotent pass, and must be run after every mutation that can change
// visibility or geometry.
//
// Ownership is transactional: adding an edge creates its two decorators,
// removing it deletes them, and removing a node cascades through every
// touching edge. Derived-state code therefore never has to defend against
// dangling endpoints.
//
// [Summarize] produces the legend tallies for the visible part of the
// graph, and the Document type defines the JSON exchange format used by
// the CLI and the HTTP API.
package pathway
