package pathway

// LegendCounts summarizes the currently visible reaction edges for the
// legend panel. Hidden edges are excluded from every tally.
type LegendCounts struct {
	Normal        int `json:"normal"`
	Upregulated   int `json:"upregulated"`
	Downregulated int `json:"downregulated"`
	Removed       int `json:"removed"`
	Annotated     int `json:"annotated"`
	WithOverlay   int `json:"with_overlay"`
}

// Total returns the number of visible edges counted.
func (c LegendCounts) Total() int {
	return c.Normal + c.Upregulated + c.Downregulated + c.Removed
}

// Summarize tallies the visible edges by status, annotation presence and
// overlay presence in a single pass. An edge counts as visible when neither
// it nor either endpoint node is hidden. Unrecognized statuses count as
// normal. Recompute after every mutation that changes status, annotation,
// overlay or visibility.
func Summarize(g *Graph) LegendCounts {
	var counts LegendCounts
	for _, e := range g.Edges() {
		if e.Hidden {
			continue
		}
		if src, ok := g.Node(e.Source); !ok || src.Hidden {
			continue
		}
		if dst, ok := g.Node(e.Target); !ok || dst.Hidden {
			continue
		}

		switch e.Status.Canonical() {
		case StatusUpregulated:
			counts.Upregulated++
		case StatusDownregulated:
			counts.Downregulated++
		case StatusRemoved:
			counts.Removed++
		default:
			counts.Normal++
		}
		if e.Annotation != "" {
			counts.Annotated++
		}
		if e.Overlay != nil {
			counts.WithOverlay++
		}
	}
	return counts
}
