package pathway

import "math"

// DecoratorKind distinguishes the two satellite entities created for every
// reaction edge.
type DecoratorKind string

const (
	// DecoratorCassette is the floating text callout that shows an edge's
	// free-text annotation (e.g. a promoter or cassette name).
	DecoratorCassette DecoratorKind = "cassette"
	// DecoratorKOMark is the knockout marker drawn at an edge's midpoint
	// when its status is removed.
	DecoratorKOMark DecoratorKind = "ko"
)

// cassetteOffset is the perpendicular displacement of the cassette callout
// from the edge midpoint, in canvas units.
const cassetteOffset = 20.0

// cassettePlaceholder is the label a hidden cassette falls back to.
const cassettePlaceholder = "(no annotation)"

// Decorator is a satellite entity owned by a reaction edge. Its Position,
// Hidden flag and Label are derived state: they are recomputed by [Refresh]
// and never edited directly. A decorator exists exactly as long as its edge.
type Decorator struct {
	ID     string        `json:"id"`
	EdgeID string        `json:"edge_id"`
	Kind   DecoratorKind `json:"kind"`
	Pos    Point         `json:"pos"`
	Hidden bool          `json:"hidden"`
	Label  string        `json:"label,omitempty"`
}

func decoratorID(edgeID string, kind DecoratorKind) string {
	return edgeID + "::" + string(kind)
}

func newDecorator(edgeID string, kind DecoratorKind) *Decorator {
	return &Decorator{
		ID:     decoratorID(edgeID, kind),
		EdgeID: edgeID,
		Kind:   kind,
		Hidden: true,
		Label:  cassettePlaceholder,
	}
}

// Decorator returns the decorator of the given kind for an edge, or nil and
// false if the edge does not exist.
func (g *Graph) Decorator(edgeID string, kind DecoratorKind) (*Decorator, bool) {
	d, ok := g.decorators[decoratorID(edgeID, kind)]
	return d, ok
}

// Decorators returns every decorator, ordered by edge insertion order with
// the cassette before the koMark for each edge.
func (g *Graph) Decorators() []*Decorator {
	out := make([]*Decorator, 0, 2*len(g.edges))
	for _, e := range g.edges {
		for _, kind := range []DecoratorKind{DecoratorCassette, DecoratorKOMark} {
			if d, ok := g.decorators[decoratorID(e.ID, kind)]; ok {
				out = append(out, d)
			}
		}
	}
	return out
}

// DecoratorCount returns the number of decorators in the graph.
// It is always exactly twice the edge count.
func (g *Graph) DecoratorCount() int { return len(g.decorators) }

// Refresh recomputes every decorator's visibility, position and label from
// the current state of the primary graph. It is the single reconciliation
// point for derived satellite state and must run after any mutation that
// can change an edge's geometry or visibility: status changes, annotation
// edits, node drags, filter toggles, routing changes, template alignment
// and deletions.
//
// Refresh is idempotent: running it twice with no intervening mutation
// leaves all decorators unchanged. It is a full O(edges) re-derivation, not
// an incremental patch. Edges whose endpoints are missing are skipped; the
// cascading deletes in RemoveNode keep that case from arising in practice.
func Refresh(g *Graph) {
	for _, e := range g.edges {
		src, okS := g.Node(e.Source)
		dst, okD := g.Node(e.Target)
		if !okS || !okD {
			continue
		}

		center := Midpoint(src.Pos, dst.Pos)
		commonHidden := e.Hidden || src.Hidden || dst.Hidden

		if cas, ok := g.Decorator(e.ID, DecoratorCassette); ok {
			cas.Hidden = commonHidden || e.Annotation == ""
			cas.Pos = cassettePos(center, src.Pos, dst.Pos)
			if cas.Hidden {
				cas.Label = cassettePlaceholder
			} else {
				cas.Label = e.Annotation
			}
		}

		if ko, ok := g.Decorator(e.ID, DecoratorKOMark); ok {
			ko.Hidden = commonHidden || e.Status.Canonical() != StatusRemoved
			ko.Pos = center
		}
	}
}

// cassettePos displaces the midpoint along the perpendicular of the
// source->target vector, rotating the edge vector 90 degrees. Zero-length
// edges keep the callout at the midpoint.
func cassettePos(center, src, dst Point) Point {
	dx := dst.X - src.X
	dy := dst.Y - src.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return center
	}
	return Point{
		X: center.X + (-dy/length)*cassetteOffset,
		Y: center.Y + (dx/length)*cassetteOffset,
	}
}
