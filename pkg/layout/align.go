package layout

import (
	"math"
	"sort"

	"github.com/metpath/studio/pkg/pathway"
)

const (
	ringMinRadius  = 90.0
	ringRadiusStep = 92.0
	flowRowSpacing = 88.0
)

// AlignRing places the selected metabolites on a circle around their
// centroid, in the style of a TCA-cycle diagram. The radius grows with the
// square root of the selection size, with a floor for small selections.
// Index 0 sits at the top and placement proceeds clockwise. Edges are not
// touched; the caller refreshes decorators and routing afterwards.
//
// AlignRing is a no-op on an empty selection.
func AlignRing(g *pathway.Graph) {
	nodes := g.SelectedNodes()
	n := len(nodes)
	if n == 0 {
		return
	}

	var cx, cy float64
	for _, node := range nodes {
		cx += node.Pos.X
		cy += node.Pos.Y
	}
	cx /= float64(n)
	cy /= float64(n)

	radius := math.Max(ringMinRadius, math.Sqrt(float64(n))*ringRadiusStep)
	for i, node := range nodes {
		angle := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		node.Pos = pathway.Point{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
}

// AlignFlow stacks the selected metabolites into a single vertical column
// with fixed spacing, reading top to bottom in the order of their original
// x coordinates (leftmost first). All nodes share the mean x of the
// selection and the column starts at the selection's minimum y. Re-running
// after a drag re-sorts by the new positions.
//
// AlignFlow is a no-op on an empty selection.
func AlignFlow(g *pathway.Graph) {
	nodes := g.SelectedNodes()
	n := len(nodes)
	if n == 0 {
		return
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Pos.X < nodes[j].Pos.X
	})

	var sumX float64
	startY := math.Inf(1)
	for _, node := range nodes {
		sumX += node.Pos.X
		startY = math.Min(startY, node.Pos.Y)
	}
	sharedX := sumX / float64(n)

	for i, node := range nodes {
		node.Pos = pathway.Point{X: sharedX, Y: startY + float64(i)*flowRowSpacing}
	}
}
