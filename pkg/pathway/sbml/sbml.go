// Package sbml imports SBML models as pathway graphs.
//
// SBML carries no layout information, so imported species are arranged on a
// circle sized to the node count. Reactions expand into substrate-product
// edge pairs the same way KGML reactions do.
package sbml

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/pathway"
)

// Circle layout for models without coordinates.
const (
	centerX   = 640.0
	centerY   = 420.0
	minRadius = 170.0
	maxRadius = 560.0
	perNode   = 28.0
)

// Decoding matches element local names only, so namespaced and plain SBML
// documents both parse.
type sbmlDoc struct {
	Model sbmlModel `xml:"model"`
}

type sbmlModel struct {
	Species   []sbmlSpecies  `xml:"listOfSpecies>species"`
	Reactions []sbmlReaction `xml:"listOfReactions>reaction"`
}

type sbmlSpecies struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type sbmlReaction struct {
	ID         string           `xml:"id,attr"`
	Name       string           `xml:"name,attr"`
	Reversible string           `xml:"reversible,attr"`
	Reactants  []sbmlSpeciesRef `xml:"listOfReactants>speciesReference"`
	Products   []sbmlSpeciesRef `xml:"listOfProducts>speciesReference"`
}

type sbmlSpeciesRef struct {
	Species string `xml:"species,attr"`
}

// Import parses SBML text into a pathway graph.
// Returns ErrCodeInvalidModel when the document is malformed, has no
// species, or yields no usable reactions.
func Import(sbmlText []byte) (*pathway.Graph, error) {
	var doc sbmlDoc
	if err := xml.Unmarshal(sbmlText, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "invalid SBML file")
	}

	type speciesEntry struct{ id, label string }
	var order []speciesEntry
	known := make(map[string]bool)
	for _, sp := range doc.Model.Species {
		id := sp.ID
		if id == "" {
			id = sp.Name
		}
		if id == "" || known[id] {
			continue
		}
		known[id] = true
		label := sp.Name
		if label == "" {
			label = id
		}
		order = append(order, speciesEntry{id: id, label: label})
	}
	if len(order) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidModel, "no species found in SBML model")
	}

	g := pathway.New("sbml_import", "SBML import")

	radius := math.Min(maxRadius, math.Max(minRadius, float64(len(order))*perNode))
	angleStep := 2 * math.Pi / float64(len(order))
	for i, sp := range order {
		angle := angleStep * float64(i)
		err := g.AddNode(pathway.Node{
			ID:    sp.id,
			Label: sp.label,
			Pos: pathway.Point{
				X: centerX + radius*math.Cos(angle),
				Y: centerY + radius*math.Sin(angle),
			},
			RawID: sp.id,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModel, err, "species %s", sp.id)
		}
	}

	type edgeKey struct{ reaction, source, target string }
	seen := make(map[edgeKey]bool)
	addEdge := func(reactionID, reactionName, source, target string, reversible bool) error {
		key := edgeKey{reaction: reactionID, source: source, target: target}
		if seen[key] {
			return nil
		}
		seen[key] = true
		return g.AddEdge(pathway.Edge{
			ID:           fmt.Sprintf("%s:%s->%s", reactionID, source, target),
			Source:       source,
			Target:       target,
			Label:        reactionName,
			ReactionID:   reactionID,
			ReactionName: reactionName,
			Reversible:   reversible,
		})
	}

	for _, r := range doc.Model.Reactions {
		reactionID := r.ID
		if reactionID == "" {
			reactionID = r.Name
		}
		if reactionID == "" {
			reactionID = "reaction"
		}
		reactionName := r.Name
		if reactionName == "" {
			reactionName = reactionID
		}
		reversible := isTrue(r.Reversible)

		for _, s := range r.Reactants {
			for _, p := range r.Products {
				if s.Species == "" || p.Species == "" || s.Species == p.Species {
					continue
				}
				if !known[s.Species] || !known[p.Species] {
					continue
				}
				if err := addEdge(reactionID, reactionName, s.Species, p.Species, reversible); err != nil {
					return nil, err
				}
				if reversible {
					if err := addEdge(reactionID+"_rev", reactionName, p.Species, s.Species, true); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	if g.EdgeCount() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidModel, "no valid reactions found in SBML file")
	}

	pathway.Refresh(g)
	return g, nil
}

func isTrue(attr string) bool {
	switch strings.ToLower(attr) {
	case "true", "1", "yes":
		return true
	}
	return false
}
