package pathway

import (
	"math"
	"testing"
)

func TestRefreshCassetteVisibilityAndPosition(t *testing.T) {
	g := testGraph(t)
	e, _ := g.Edge("e1") // a(0,0) -> b(100,0)
	e.Annotation = "Ptrc promoter"
	Refresh(g)

	cas, _ := g.Decorator("e1", DecoratorCassette)
	if cas.Hidden {
		t.Fatal("cassette should be visible for an annotated, visible edge")
	}
	if cas.Label != "Ptrc promoter" {
		t.Errorf("cassette label = %q, want the annotation", cas.Label)
	}
	// Horizontal edge: the 90-degree rotated unit vector is (0,1), so the
	// callout sits 20 units below the midpoint (50,0).
	if math.Abs(cas.Pos.X-50) > 1e-9 || math.Abs(cas.Pos.Y-20) > 1e-9 {
		t.Errorf("cassette pos = (%v,%v), want (50,20)", cas.Pos.X, cas.Pos.Y)
	}

	e.Annotation = ""
	Refresh(g)
	cas, _ = g.Decorator("e1", DecoratorCassette)
	if !cas.Hidden {
		t.Error("cassette should hide when the annotation is cleared")
	}
	if cas.Label == "" {
		t.Error("hidden cassette should fall back to the placeholder label")
	}
}

func TestRefreshKOMark(t *testing.T) {
	g := testGraph(t)
	e, _ := g.Edge("e1")
	Refresh(g)

	ko, _ := g.Decorator("e1", DecoratorKOMark)
	if !ko.Hidden {
		t.Fatal("koMark should be hidden for a normal edge")
	}

	e.Status = StatusRemoved
	Refresh(g)
	ko, _ = g.Decorator("e1", DecoratorKOMark)
	if ko.Hidden {
		t.Fatal("koMark should be visible for a removed edge")
	}
	if ko.Pos.X != 50 || ko.Pos.Y != 0 {
		t.Errorf("koMark pos = (%v,%v), want the midpoint (50,0)", ko.Pos.X, ko.Pos.Y)
	}
}

func TestRefreshCommonHidden(t *testing.T) {
	g := testGraph(t)
	e, _ := g.Edge("e1")
	e.Status = StatusRemoved
	Refresh(g)

	// Hiding the source node must hide the koMark even though the
	// kind-specific condition (status removed) still holds.
	src, _ := g.Node("a")
	src.Hidden = true
	Refresh(g)
	ko, _ := g.Decorator("e1", DecoratorKOMark)
	if !ko.Hidden {
		t.Error("koMark visible despite hidden source node")
	}

	src.Hidden = false
	e.Hidden = true
	e.Annotation = "x"
	Refresh(g)
	cas, _ := g.Decorator("e1", DecoratorCassette)
	if !cas.Hidden {
		t.Error("cassette visible despite hidden edge")
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	g := testGraph(t)
	e, _ := g.Edge("e2")
	e.Annotation = "note"
	e.Status = StatusRemoved

	Refresh(g)
	first := make(map[string]Decorator)
	for _, d := range g.Decorators() {
		first[d.ID] = *d
	}

	Refresh(g)
	for _, d := range g.Decorators() {
		if *d != first[d.ID] {
			t.Errorf("decorator %s changed across idempotent refresh: %+v vs %+v",
				d.ID, first[d.ID], *d)
		}
	}
}

func TestRefreshFollowsNodeDrag(t *testing.T) {
	g := testGraph(t)
	e, _ := g.Edge("e1")
	e.Status = StatusRemoved
	Refresh(g)

	n, _ := g.Node("b")
	n.Pos = Point{X: 200, Y: 60}
	Refresh(g)

	ko, _ := g.Decorator("e1", DecoratorKOMark)
	if ko.Pos.X != 100 || ko.Pos.Y != 30 {
		t.Errorf("koMark did not follow drag: (%v,%v), want (100,30)", ko.Pos.X, ko.Pos.Y)
	}
}

func TestRefreshZeroLengthEdge(t *testing.T) {
	g := New("p", "P")
	if err := g.AddNode(Node{ID: "a", Pos: Point{X: 5, Y: 5}}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(Edge{ID: "loop", Source: "a", Target: "a", Annotation: "self"}); err != nil {
		t.Fatal(err)
	}
	Refresh(g)
	cas, _ := g.Decorator("loop", DecoratorCassette)
	if cas.Pos.X != 5 || cas.Pos.Y != 5 {
		t.Errorf("zero-length edge: cassette pos = (%v,%v), want the midpoint", cas.Pos.X, cas.Pos.Y)
	}
}
