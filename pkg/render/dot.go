package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/metpath/studio/pkg/pathway"
)

// Options configures DOT export.
type Options struct {
	// Decorators includes visible cassette callouts and knockout marks as
	// satellite nodes.
	Decorators bool
	// ShowValues appends the overlay value to edge labels.
	ShowValues bool
}

// Canvas units are pixels; Graphviz point positions are in 1/72 inch, so
// pinned coordinates are scaled down to keep the drawing a sane size.
const posScale = 1.0 / 8.0

// Status colors match the editor palette.
var statusColors = map[pathway.Status]string{
	pathway.StatusUpregulated:   "#d32f2f",
	pathway.StatusDownregulated: "#2d58a5",
	pathway.StatusRemoved:       "#9e9e9e",
}

// ToDOT converts a pathway graph to Graphviz DOT. Hidden nodes and edges
// are omitted, as are edges whose endpoints are hidden. The output pins
// node positions, so it renders faithfully with the neato engine.
func ToDOT(g *pathway.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph pathway {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", g.PathwayName)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=ellipse, style=filled, fillcolor=white, fontsize=11];\n")
	buf.WriteString("  edge [fontsize=9];\n")
	buf.WriteString("\n")

	visible := make(map[string]bool)
	for _, n := range g.Nodes() {
		if n.Hidden {
			continue
		}
		visible[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Hidden || !visible[e.Source] || !visible[e.Target] {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e, opts), ", "))
	}

	if opts.Decorators {
		buf.WriteString("\n")
		for _, d := range g.Decorators() {
			if d.Hidden {
				continue
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", d.ID, strings.Join(decoratorAttrs(d), ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *pathway.Node) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		pinnedPos(n.Pos),
	}
	if n.Cofactor {
		attrs = append(attrs, "fillcolor=\"#f0f0f0\"", "fontsize=9")
	}
	return attrs
}

func edgeAttrs(e *pathway.Edge, opts Options) []string {
	label := e.BaseLabel()
	if opts.ShowValues && e.Overlay != nil {
		label = fmt.Sprintf("%s (%.3g)", label, e.Overlay.Value)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch {
	case e.Overlay != nil:
		attrs = append(attrs,
			fmt.Sprintf("color=%q", e.Overlay.Color),
			fmt.Sprintf("penwidth=%.2f", e.Overlay.Width))
	default:
		if c, ok := statusColors[e.Status.Canonical()]; ok {
			attrs = append(attrs, fmt.Sprintf("color=%q", c))
		}
	}
	if e.Status.Canonical() == pathway.StatusRemoved {
		attrs = append(attrs, "style=dashed")
	}
	if e.Reversible {
		attrs = append(attrs, "dir=both")
	}
	return attrs
}

func decoratorAttrs(d *pathway.Decorator) []string {
	attrs := []string{pinnedPos(d.Pos)}
	switch d.Kind {
	case pathway.DecoratorKOMark:
		attrs = append(attrs,
			"label=\"×\"",
			"shape=plaintext", "fontcolor=\"#d32f2f\"", "fontsize=16")
	default:
		attrs = append(attrs,
			fmt.Sprintf("label=%q", d.Label),
			"shape=note", "fillcolor=\"#fff8dc\"", "fontsize=8")
	}
	return attrs
}

func pinnedPos(p pathway.Point) string {
	// Graphviz Y grows upward, the canvas Y grows downward.
	return fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X*posScale, -p.Y*posScale)
}
