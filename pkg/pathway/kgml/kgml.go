package kgml

import (
	"encoding/xml"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/pathway"
)

// Viewport the KEGG canvas coordinates are rescaled into.
const (
	viewportWidth  = 1200.0
	viewportHeight = 900.0
	viewportPad    = 80.0
	maxScale       = 5.0
)

// Raw KGML document structure. KEGG serves the format without a namespace,
// but decoding by local element name keeps namespaced exports working too.
type kgmlDoc struct {
	Name      string         `xml:"name,attr"`
	Title     string         `xml:"title,attr"`
	Entries   []kgmlEntry    `xml:"entry"`
	Reactions []kgmlReaction `xml:"reaction"`
}

type kgmlEntry struct {
	ID       string        `xml:"id,attr"`
	Type     string        `xml:"type,attr"`
	Name     string        `xml:"name,attr"`
	Reaction string        `xml:"reaction,attr"`
	Graphics *kgmlGraphics `xml:"graphics"`
}

type kgmlGraphics struct {
	Name string `xml:"name,attr"`
	X    string `xml:"x,attr"`
	Y    string `xml:"y,attr"`
}

type kgmlReaction struct {
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Type       string        `xml:"type,attr"`
	Substrates []kgmlSpecies `xml:"substrate"`
	Products   []kgmlSpecies `xml:"product"`
}

type kgmlSpecies struct {
	ID string `xml:"id,attr"`
}

// entryData is the per-entry working set built before node/edge assembly.
type entryData struct {
	id          string
	entryType   string
	name        string
	label       string
	x, y        float64
	reactionIDs []string
}

// Options controls translation behavior.
type Options struct {
	// HideCofactors drops common cofactor compounds (ATP, NADH, water...)
	// and every edge touching them.
	HideCofactors bool
}

// Translate parses KGML text into a pathway graph.
// Returns ErrCodeInvalidPathway for malformed XML.
func Translate(xmlText []byte, opts Options) (*pathway.Graph, error) {
	var doc kgmlDoc
	if err := xml.Unmarshal(xmlText, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPathway, err, "malformed KGML")
	}

	entries, reactionToEntries := collectEntries(doc.Entries)

	var compounds []*entryData
	for _, e := range entries {
		if e.entryType == "compound" {
			compounds = append(compounds, e)
		}
	}
	normalizeCoordinates(compounds)

	g := pathway.New(strings.Replace(doc.Name, "path:", "", 1), title(doc))
	for _, e := range compounds {
		cofactor := isCofactor(e.name, e.label)
		if opts.HideCofactors && cofactor {
			continue
		}
		node := pathway.Node{
			ID:       e.id,
			Label:    e.label,
			Pos:      pathway.Point{X: e.x, Y: e.y},
			Cofactor: cofactor,
			RawID:    e.name,
		}
		if err := g.AddNode(node); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPathway, err, "entry %s", e.id)
		}
	}

	entryByID := make(map[string]*entryData, len(entries))
	for _, e := range entries {
		entryByID[e.id] = e
	}

	type edgeKey struct{ reaction, source, target string }
	seen := make(map[edgeKey]bool)
	addEdge := func(reactionID, reactionName, source, target string, reversible bool, enzymes []string) error {
		if _, ok := g.Node(source); !ok {
			return nil
		}
		if _, ok := g.Node(target); !ok {
			return nil
		}
		key := edgeKey{reaction: reactionID, source: source, target: target}
		if seen[key] {
			return nil
		}
		seen[key] = true
		return g.AddEdge(pathway.Edge{
			ID:           edgeID(reactionID, source, target),
			Source:       source,
			Target:       target,
			Label:        displayLabel(reactionName, reactionID),
			ReactionID:   reactionID,
			ReactionName: reactionName,
			Reversible:   reversible,
			Enzymes:      enzymes,
		})
	}

	for _, r := range doc.Reactions {
		if len(r.Substrates) == 0 || len(r.Products) == 0 {
			continue
		}
		reversible := r.Type == "reversible"

		rnIDs := rnTerms(r.Name)
		enzymes := enzymeLabels(r.ID, rnIDs, reactionToEntries, entryByID)

		// Prefer the stable R-number over the document-local entry ID.
		rid := r.ID
		if len(rnIDs) > 0 {
			rid = rnIDs[0]
		}

		for _, s := range r.Substrates {
			for _, p := range r.Products {
				if err := addEdge(rid, r.Name, s.ID, p.ID, reversible, enzymes); err != nil {
					return nil, err
				}
				if reversible {
					if err := addEdge(rid+"_rev", r.Name, p.ID, s.ID, true, enzymes); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	pathway.Refresh(g)
	return g, nil
}

func title(doc kgmlDoc) string {
	if doc.Title != "" {
		return doc.Title
	}
	return "KEGG pathway"
}

// collectEntries builds the working entry set and the reaction-ID reverse
// index used for enzyme label extraction.
func collectEntries(raw []kgmlEntry) ([]*entryData, map[string][]string) {
	var entries []*entryData
	reactionToEntries := make(map[string][]string)

	for _, entry := range raw {
		if entry.ID == "" {
			continue
		}
		data := &entryData{
			id:        entry.ID,
			entryType: entry.Type,
			name:      entry.Name,
		}
		if data.entryType == "" {
			data.entryType = "unknown"
		}

		var graphicsLabel string
		if entry.Graphics != nil {
			graphicsLabel = entry.Graphics.Name
			data.x = parseFloat(entry.Graphics.X)
			data.y = parseFloat(entry.Graphics.Y)
		}
		if graphicsLabel != "" {
			data.label = normalizeLabel(graphicsLabel, entry.ID)
		} else {
			data.label = normalizeLabel(entry.Name, entry.ID)
		}

		// The reaction attribute lists the reactions this gene/ortholog
		// entry catalyzes, as "rn:R00200 rn:R00201" or bare "R00200".
		seen := make(map[string]bool)
		for _, token := range strings.Fields(entry.Reaction) {
			var rid string
			switch {
			case strings.HasPrefix(token, "rn:"):
				rid = token[3:]
			case strings.HasPrefix(token, "R"):
				rid = token
			default:
				continue
			}
			if rid == "" || seen[rid] {
				continue
			}
			seen[rid] = true
			data.reactionIDs = append(data.reactionIDs, rid)
		}

		entries = append(entries, data)
	}

	for _, e := range entries {
		for _, rid := range e.reactionIDs {
			reactionToEntries[rid] = append(reactionToEntries[rid], e.id)
		}
	}
	return entries, reactionToEntries
}

// normalizeCoordinates rescales KEGG canvas positions into the editor
// viewport, preserving aspect ratio and capping the zoom factor so sparse
// pathways don't explode.
func normalizeCoordinates(nodes []*entryData) {
	if len(nodes) == 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.x)
		maxX = math.Max(maxX, n.x)
		minY = math.Min(minY, n.y)
		maxY = math.Max(maxY, n.y)
	}

	rangeX := math.Max(maxX-minX, 1)
	rangeY := math.Max(maxY-minY, 1)
	scaleX := (viewportWidth - 2*viewportPad) / rangeX
	scaleY := (viewportHeight - 2*viewportPad) / rangeY
	scale := math.Min(math.Min(scaleX, scaleY), maxScale)

	for _, n := range nodes {
		n.x = (n.x-minX)*scale + viewportPad
		n.y = (n.y-minY)*scale + viewportPad
	}
}

// normalizeLabel cleans a KGML display label: first line only, truncated
// at "...", with KEGG database prefixes stripped.
func normalizeLabel(raw, fallback string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	first := strings.TrimSpace(strings.SplitN(raw, "\n", 2)[0])
	first = strings.TrimSpace(strings.SplitN(first, "...", 2)[0])
	if strings.HasPrefix(first, "cpd:") {
		return first[len("cpd:"):]
	}
	for _, prefix := range []string{"ko:", "eco:", "rn:"} {
		if strings.HasPrefix(first, prefix) {
			first = strings.SplitN(first, " ", 2)[0]
			if i := strings.IndexByte(first, ':'); i >= 0 {
				return first[i+1:]
			}
			return first
		}
	}
	return first
}

// displayLabel prefers the explicit rn: terms of the reaction name over the
// bare reaction ID.
func displayLabel(reactionName, reactionID string) string {
	if terms := rnTermsRaw(reactionName); len(terms) > 0 {
		return strings.Join(terms, ", ")
	}
	return reactionID
}

// rnTermsRaw returns the "rn:Rxxxxx" tokens of a reaction name verbatim.
func rnTermsRaw(reactionName string) []string {
	var terms []string
	for _, tok := range strings.Fields(reactionName) {
		if strings.HasPrefix(tok, "rn:") {
			terms = append(terms, tok)
		}
	}
	return terms
}

// rnTerms returns the reaction IDs with the rn: prefix stripped.
func rnTerms(reactionName string) []string {
	var ids []string
	for _, tok := range rnTermsRaw(reactionName) {
		ids = append(ids, tok[3:])
	}
	return ids
}

// enzymeLabels collects up to four short labels of the gene/ortholog
// entries that declare the reaction.
func enzymeLabels(reactionID string, rnIDs []string, reactionToEntries map[string][]string, entries map[string]*entryData) []string {
	var enzymeEntries []string
	seen := make(map[string]bool)

	// Direct entry ID mapping.
	if reactionID != "" {
		if _, ok := entries[reactionID]; ok {
			enzymeEntries = append(enzymeEntries, reactionID)
			seen[reactionID] = true
		}
	}

	// Match explicit rn: IDs in gene/ortholog entries.
	for _, rid := range rnIDs {
		for _, entryID := range reactionToEntries[rid] {
			if seen[entryID] {
				continue
			}
			seen[entryID] = true
			enzymeEntries = append(enzymeEntries, entryID)
		}
	}

	var labels []string
	for _, entryID := range enzymeEntries {
		data, ok := entries[entryID]
		if !ok {
			continue
		}
		label := data.label
		if label == "" || len(label) >= 32 {
			continue
		}
		duplicate := false
		for _, l := range labels {
			if l == label {
				duplicate = true
				break
			}
		}
		if !duplicate {
			labels = append(labels, label)
		}
		if len(labels) == 4 {
			break
		}
	}
	return labels
}

var unsafeEdgeIDChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// edgeID builds a stable edge identifier from the reaction and endpoint
// entry IDs.
func edgeID(reactionID, source, target string) string {
	safe := unsafeEdgeIDChars.ReplaceAllString(reactionID, "_")
	return fmt.Sprintf("%s:%s->%s", safe, source, target)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
