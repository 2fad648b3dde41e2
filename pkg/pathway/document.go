package pathway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Document - Pathway Serialization Format
// =============================================================================

// Document is the JSON wire and file format for a pathway graph. It carries
// the primary entities only; decorators are derived state and are rebuilt
// by [Refresh] after decoding.
type Document struct {
	DocumentID  string         `json:"document_id,omitempty"`
	PathwayID   string         `json:"pathway_id"`
	PathwayName string         `json:"pathway_name"`
	Nodes       []Node         `json:"nodes"`
	Edges       []Edge         `json:"edges"`
	Meta        map[string]any `json:"metadata,omitempty"`
}

// FromGraph converts a live graph into its document form.
// Nodes and edges are exported in insertion order for deterministic output.
func FromGraph(g *Graph) Document {
	doc := Document{
		PathwayID:   g.PathwayID,
		PathwayName: g.PathwayName,
		Nodes:       make([]Node, 0, g.NodeCount()),
		Edges:       make([]Edge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, *n)
	}
	for _, e := range g.Edges() {
		edge := *e
		if e.Overlay != nil {
			ov := *e.Overlay
			edge.Overlay = &ov
		}
		doc.Edges = append(doc.Edges, edge)
	}
	return doc
}

// ToGraph builds a live graph from a document, re-creating decorators and
// running a Refresh pass so derived state is consistent before first use.
// Returns validation errors for duplicate IDs or dangling edge endpoints.
func ToGraph(doc Document) (*Graph, error) {
	g := New(doc.PathwayID, doc.PathwayName)
	for _, n := range doc.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("edge %q: %w", e.ID, err)
		}
	}
	Refresh(g)
	return g, nil
}

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a graph to pretty-printed JSON bytes.
func MarshalDocument(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes a graph as JSON to an io.Writer.
func WriteDocument(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDocumentFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(g, f)
}

// ReadDocument decodes a JSON pathway document from an io.Reader into a
// live graph.
func ReadDocument(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGraph(doc)
}

// ReadDocumentFile reads a JSON file and returns the decoded graph.
func ReadDocumentFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}
