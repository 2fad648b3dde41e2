package pathway

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All metabolites must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidEdgeID is returned by [Graph.AddEdge] when the edge ID is empty.
	ErrInvalidEdgeID = errors.New("edge ID must not be empty")

	// ErrDuplicateEdgeID is returned by [Graph.AddEdge] when an edge with the
	// same ID already exists in the graph.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the Source
	// node does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the Target
	// node does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Status describes the user-assigned state of a reaction edge.
type Status string

const (
	// StatusNormal is the default state of a reaction.
	StatusNormal Status = "normal"
	// StatusUpregulated marks a reaction the user flagged as upregulated.
	StatusUpregulated Status = "upregulated"
	// StatusDownregulated marks a reaction the user flagged as downregulated.
	StatusDownregulated Status = "downregulated"
	// StatusRemoved marks a knocked-out reaction. Removed edges keep their
	// geometry; the knockout is rendered via the edge's koMark decorator.
	StatusRemoved Status = "removed"
)

// Canonical normalizes a status value. Unrecognized or empty statuses are
// treated as normal so that documents from older exports stay loadable.
func (s Status) Canonical() Status {
	switch s {
	case StatusUpregulated, StatusDownregulated, StatusRemoved:
		return s
	default:
		return StatusNormal
	}
}

// Routing selects the edge drawing style.
type Routing string

const (
	// RoutingBezier is the default smooth-curve drawing mode. It is
	// represented by an empty Routing value on the edge.
	RoutingBezier Routing = "bezier"
	// RoutingOrthogonal draws edges as offset segments. Edges in this mode
	// carry a SegmentOffset assigned by the layout package.
	RoutingOrthogonal Routing = "orthogonal"
)

// Point is a 2D position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Node represents a metabolite in the pathway.
// Position is mutated by drags and template alignment; Hidden is derived
// state driven by the cofactor filter, not persisted intent.
type Node struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Pos      Point  `json:"pos"`
	Cofactor bool   `json:"is_cofactor,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`

	// RawID preserves the source document identifier (e.g. "cpd:C00022").
	RawID string `json:"raw_id,omitempty"`
}

// Overlay holds the derived presentation attributes produced by applying an
// overlay table. Value, Color and Width are always set together; a nil
// Overlay means the edge did not match the last applied table.
type Overlay struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Edge represents one direction of a reaction between two metabolites.
//
// Status, Annotation and Overlay are mutated by user actions. Routing and
// SegmentOffset are either both set (orthogonal mode) or both zero (bezier
// mode); the layout package maintains that pairing.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Status   Status `json:"status,omitempty"`
	Label    string `json:"label,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`

	ReactionID   string   `json:"reaction_id,omitempty"`
	ReactionName string   `json:"reaction_name,omitempty"`
	Reversible   bool     `json:"reversible,omitempty"`
	Enzymes      []string `json:"enzymes,omitempty"`

	Annotation string `json:"annotation,omitempty"`

	Overlay       *Overlay `json:"overlay,omitempty"`
	Routing       Routing  `json:"routing,omitempty"`
	SegmentOffset float64  `json:"segment_offset,omitempty"`
}

// BaseLabel returns the display text combining reaction label and enzyme
// list, separated by "|" when enzymes are present. Overlay matching splits
// on the separator again to recover the reaction part.
func (e *Edge) BaseLabel() string {
	if len(e.Enzymes) == 0 {
		return e.Label
	}
	enz := e.Enzymes[0]
	for _, name := range e.Enzymes[1:] {
		enz += ", " + name
	}
	if e.Label == "" {
		return enz
	}
	return e.Label + "|" + enz
}

// Graph is the mutable in-memory pathway shared by the annotation, layout
// and rendering components. Edges keep insertion order, which the routing
// assigner depends on for reproducible offsets.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization; the interaction layer serializes
// all mutations.
type Graph struct {
	PathwayID   string
	PathwayName string

	nodes      map[string]*Node
	nodeOrder  []string
	edges      []*Edge
	edgeIndex  map[string]*Edge
	decorators map[string]*Decorator // decorator ID -> decorator
	selection  []string              // selected node IDs, insertion order
}

// New creates an empty pathway graph.
func New(id, name string) *Graph {
	return &Graph{
		PathwayID:   id,
		PathwayName: name,
		nodes:       make(map[string]*Node),
		edgeIndex:   make(map[string]*Edge),
		decorators:  make(map[string]*Decorator),
	}
}

// AddNode adds a metabolite to the graph.
// Returns ErrInvalidNodeID for an empty ID or ErrDuplicateNodeID if the ID
// is already taken.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	g.nodeOrder = append(g.nodeOrder, node.ID)
	return nil
}

// AddEdge adds a reaction edge between two existing metabolites and creates
// its two satellite decorators (cassette and koMark). The decorators share
// the edge's lifetime: removing the edge removes both.
//
// Returns ErrInvalidEdgeID, ErrDuplicateEdgeID, ErrUnknownSourceNode or
// ErrUnknownTargetNode on constraint violations.
func (g *Graph) AddEdge(e Edge) error {
	if e.ID == "" {
		return ErrInvalidEdgeID
	}
	if _, exists := g.edgeIndex[e.ID]; exists {
		return ErrDuplicateEdgeID
	}
	if _, ok := g.nodes[e.Source]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.Target]; !ok {
		return ErrUnknownTargetNode
	}
	e.Status = e.Status.Canonical()
	edge := &e
	g.edges = append(g.edges, edge)
	g.edgeIndex[edge.ID] = edge
	for _, kind := range []DecoratorKind{DecoratorCassette, DecoratorKOMark} {
		d := newDecorator(edge.ID, kind)
		g.decorators[d.ID] = d
	}
	return nil
}

// RemoveEdge removes the edge and its two decorators.
// Removing a nonexistent edge is a no-op.
func (g *Graph) RemoveEdge(id string) {
	if _, ok := g.edgeIndex[id]; !ok {
		return
	}
	delete(g.edgeIndex, id)
	g.edges = slices.DeleteFunc(g.edges, func(e *Edge) bool { return e.ID == id })
	delete(g.decorators, decoratorID(id, DecoratorCassette))
	delete(g.decorators, decoratorID(id, DecoratorKOMark))
}

// RemoveNode removes the metabolite and cascades removal of every edge that
// touches it, including those edges' decorators. Dangling edges can never
// survive a node deletion. Removing a nonexistent node is a no-op.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	g.nodeOrder = slices.DeleteFunc(g.nodeOrder, func(s string) bool { return s == id })
	for _, e := range slices.Clone(g.edges) {
		if e.Source == id || e.Target == id {
			g.RemoveEdge(e.ID)
		}
	}
	g.Deselect(id)
}

// Node returns the node with the given ID, or nil and false if not found.
// The pointer refers to the live node; position and visibility changes
// through it take effect immediately.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edge returns the edge with the given ID, or nil and false if not found.
func (g *Graph) Edge(id string) (*Edge, bool) {
	e, ok := g.edgeIndex[id]
	return e, ok
}

// Nodes returns all metabolites in insertion order.
// The slice contains pointers to the live nodes.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order.
// The slice is a copy but the edge pointers are live.
func (g *Graph) Edges() []*Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of metabolites in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of reaction edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Select adds a node to the selection set. Unknown or already selected
// nodes are ignored.
func (g *Graph) Select(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	if slices.Contains(g.selection, id) {
		return
	}
	g.selection = append(g.selection, id)
}

// Deselect removes a node from the selection set.
func (g *Graph) Deselect(id string) {
	g.selection = slices.DeleteFunc(g.selection, func(s string) bool { return s == id })
}

// ClearSelection empties the selection set.
func (g *Graph) ClearSelection() { g.selection = nil }

// Selection returns the selected node IDs in selection order.
func (g *Graph) Selection() []string { return slices.Clone(g.selection) }

// SelectedNodes returns the selected nodes in selection order, skipping IDs
// whose nodes were deleted after selection.
func (g *Graph) SelectedNodes() []*Node {
	var nodes []*Node
	for _, id := range g.selection {
		if n, ok := g.nodes[id]; ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
