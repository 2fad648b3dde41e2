// Package layout repositions parts of a pathway graph: it assigns the
// per-edge offsets used by the orthogonal drawing mode and realigns a
// selected node subset into canonical template shapes (ring and vertical
// flow). Callers run pathway.Refresh afterwards so decorators follow the
// moved geometry.
package layout

import "github.com/metpath/studio/pkg/pathway"

// Orthogonal segment offsets follow a 7-step repeating jitter around a 36
// unit base, spanning [28,44]. The pattern visually de-overlaps parallel
// and adjacent edges that share similar geometry without any collision
// detection.
const (
	offsetBase   = 36.0
	offsetCycle  = 7
	offsetCenter = 3
	offsetScale  = 8.0 / 3.0
)

// AssignRouting switches every edge to the given drawing mode.
//
// Bezier mode clears the routing and segment offset fields entirely; no
// offset state survives the switch back. Orthogonal mode assigns each edge
// a deterministic offset derived from its position in the graph's edge
// insertion order. Because the index is positional, re-assignment after an
// edge insertion or deletion shifts later edges' offsets; that is accepted
// behavior, and insertion order keeps it reproducible.
func AssignRouting(g *pathway.Graph, mode pathway.Routing) {
	edges := g.Edges()
	if mode != pathway.RoutingOrthogonal {
		for _, e := range edges {
			e.Routing = ""
			e.SegmentOffset = 0
		}
		return
	}
	for i, e := range edges {
		e.Routing = pathway.RoutingOrthogonal
		e.SegmentOffset = offsetBase + float64(i%offsetCycle-offsetCenter)*offsetScale
	}
}
