package overlay

import (
	"fmt"
	"math"

	"github.com/metpath/studio/pkg/pathway"
)

// Color interpolation endpoints for the overlay gradient. Low values map
// toward blue, high values toward red.
var (
	colorLow  = [3]float64{45, 88, 165}
	colorHigh = [3]float64{211, 47, 47}
)

// neutralColor is used when every matched value is identical and a gradient
// position is meaningless. It is the midpoint blend of the two endpoints.
var neutralColor = lerpColor(0.5)

// Width interpolation range: matched edges are drawn between 2 and 10
// canvas units wide.
const (
	widthBase = 2.0
	widthSpan = 8.0
)

// Summary reports the outcome of applying an overlay table.
//
// A nil *Summary from [Apply] means the text parsed to zero usable rows
// ("nothing to apply"); a Summary with Count == 0 means the table parsed
// but matched no edge. Callers surface the two cases differently.
type Summary struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Apply parses overlay text and joins it onto the graph's reaction edges.
//
// Any previously derived overlay state is cleared first, so the pass fully
// replaces the prior overlay rather than merging with it. For each edge the
// candidate keys from [CandidateKeys] are probed in order and the first
// table hit wins; edges with no hit carry no overlay fields. Matched values
// are then mapped to widths and colors by linear interpolation over the
// matched min/max range, with a unit denominator (and the neutral color)
// when all matched values are equal.
//
// Apply returns nil when the text yields no records. Otherwise it returns
// the match summary, whose Count may legitimately be zero.
func Apply(g *pathway.Graph, text string) *Summary {
	table := ParseTable(text)
	if table.Len() == 0 {
		return nil
	}

	ClearOverlay(g)

	type match struct {
		edge  *pathway.Edge
		value float64
	}
	var matches []match
	min, max := math.Inf(1), math.Inf(-1)
	for _, e := range g.Edges() {
		for _, key := range CandidateKeys(e) {
			v, ok := table.Lookup(key)
			if !ok {
				continue
			}
			matches = append(matches, match{edge: e, value: v})
			min = math.Min(min, v)
			max = math.Max(max, v)
			break
		}
	}
	if len(matches) == 0 {
		return &Summary{}
	}

	span := max - min
	denom := span
	if denom == 0 {
		denom = 1
	}
	for _, m := range matches {
		t := (m.value - min) / denom
		color := neutralColor
		if span != 0 {
			color = lerpColor(clamp01(t))
		}
		m.edge.Overlay = &pathway.Overlay{
			Value: m.value,
			Color: color,
			Width: widthBase + t*widthSpan,
		}
	}
	return &Summary{Count: len(matches), Min: min, Max: max}
}

// ClearOverlay removes the derived overlay fields from every edge.
func ClearOverlay(g *pathway.Graph) {
	for _, e := range g.Edges() {
		e.Overlay = nil
	}
}

func clamp01(t float64) float64 {
	return math.Min(1, math.Max(0, t))
}

// lerpColor blends the low and high gradient endpoints at parameter t and
// formats the result as a #rrggbb hex color.
func lerpColor(t float64) string {
	var rgb [3]int
	for i := range rgb {
		rgb[i] = int(math.Round(colorLow[i] + (colorHigh[i]-colorLow[i])*t))
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}
