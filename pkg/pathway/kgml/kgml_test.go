package kgml

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/metpath/studio/pkg/cache"
	"github.com/metpath/studio/pkg/errors"
)

const fixtureKGML = `<?xml version="1.0"?>
<pathway name="path:eco00010" title="Glycolysis / Gluconeogenesis">
  <entry id="10" type="compound" name="cpd:C00022">
    <graphics name="cpd:C00022" x="100" y="100"/>
  </entry>
  <entry id="11" type="compound" name="cpd:C00024">
    <graphics name="Acetyl-CoA" x="300" y="100"/>
  </entry>
  <entry id="12" type="compound" name="cpd:C00002">
    <graphics name="cpd:C00002" x="200" y="200"/>
  </entry>
  <entry id="20" type="gene" name="eco:b0114" reaction="rn:R00209">
    <graphics name="aceE" x="200" y="100"/>
  </entry>
  <reaction id="20" name="rn:R00209" type="irreversible">
    <substrate id="10"/>
    <product id="11"/>
  </reaction>
  <reaction id="21" name="rn:R99999" type="irreversible">
    <substrate id="10"/>
    <product id="12"/>
  </reaction>
</pathway>`

func TestTranslate(t *testing.T) {
	g, err := Translate([]byte(fixtureKGML), Options{})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if g.PathwayID != "eco00010" {
		t.Errorf("PathwayID = %q, want eco00010", g.PathwayID)
	}
	if g.PathwayName != "Glycolysis / Gluconeogenesis" {
		t.Errorf("PathwayName = %q", g.PathwayName)
	}
	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", g.NodeCount())
	}

	n, ok := g.Node("10")
	if !ok {
		t.Fatal("node 10 missing")
	}
	if n.Label != "C00022" {
		t.Errorf("label = %q, want C00022 (cpd: prefix stripped)", n.Label)
	}
	if n.Cofactor {
		t.Error("pyruvate flagged as cofactor")
	}
	// Canvas range is 200x100; the scale cap of 5 binds, so the top-left
	// compound lands at the padding offset.
	if n.Pos.X != 80 || n.Pos.Y != 80 {
		t.Errorf("pos = (%v, %v), want (80, 80)", n.Pos.X, n.Pos.Y)
	}

	atp, ok := g.Node("12")
	if !ok {
		t.Fatal("node 12 missing")
	}
	if !atp.Cofactor {
		t.Error("ATP not flagged as cofactor")
	}
	if atp.Pos.X != 580 || atp.Pos.Y != 580 {
		t.Errorf("ATP pos = (%v, %v), want (580, 580)", atp.Pos.X, atp.Pos.Y)
	}

	coa, ok := g.Node("11")
	if !ok {
		t.Fatal("node 11 missing")
	}
	if coa.Label != "Acetyl-CoA" {
		t.Errorf("node 11 label = %q, want Acetyl-CoA", coa.Label)
	}
}

func TestTranslateEdges(t *testing.T) {
	g, err := Translate([]byte(fixtureKGML), Options{})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	e, ok := g.Edge("R00209:10->11")
	if !ok {
		t.Fatal("edge R00209:10->11 missing")
	}
	if e.Source != "10" || e.Target != "11" {
		t.Errorf("endpoints = %s->%s", e.Source, e.Target)
	}
	if e.Label != "rn:R00209" {
		t.Errorf("label = %q, want rn:R00209", e.Label)
	}
	if e.ReactionID != "R00209" {
		t.Errorf("ReactionID = %q, want R00209", e.ReactionID)
	}
	if e.Reversible {
		t.Error("irreversible reaction marked reversible")
	}
	if len(e.Enzymes) != 1 || e.Enzymes[0] != "aceE" {
		t.Errorf("enzymes = %v, want [aceE]", e.Enzymes)
	}

	// Every translated edge carries its decorator pair.
	if got := g.DecoratorCount(); got != 2*g.EdgeCount() {
		t.Errorf("DecoratorCount = %d, want %d", got, 2*g.EdgeCount())
	}
}

func TestTranslateReversible(t *testing.T) {
	const doc = `<pathway name="path:eco00020" title="TCA">
  <entry id="1" type="compound" name="cpd:C00036"><graphics name="OAA" x="0" y="0"/></entry>
  <entry id="2" type="compound" name="cpd:C00149"><graphics name="Malate" x="100" y="0"/></entry>
  <reaction id="3" name="rn:R00342" type="reversible">
    <substrate id="2"/>
    <product id="1"/>
  </reaction>
</pathway>`
	g, err := Translate([]byte(doc), Options{})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount = %d, want forward and reverse", g.EdgeCount())
	}
	fwd, ok := g.Edge("R00342:2->1")
	if !ok || !fwd.Reversible {
		t.Error("forward edge missing or not reversible")
	}
	rev, ok := g.Edge("R00342_rev:1->2")
	if !ok || !rev.Reversible {
		t.Error("reverse edge missing or not reversible")
	}
}

func TestTranslateHideCofactors(t *testing.T) {
	g, err := Translate([]byte(fixtureKGML), Options{HideCofactors: true})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if _, ok := g.Node("12"); ok {
		t.Error("ATP node kept despite HideCofactors")
	}
	if _, ok := g.Edge("R99999:10->12"); ok {
		t.Error("edge to hidden cofactor kept")
	}
	if _, ok := g.Edge("R00209:10->11"); !ok {
		t.Error("non-cofactor edge dropped")
	}
}

func TestTranslateMalformed(t *testing.T) {
	_, err := Translate([]byte("<pathway><entry"), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidPathway) {
		t.Errorf("err = %v, want INVALID_PATHWAY", err)
	}
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		raw, fallback, want string
	}{
		{"cpd:C00022", "10", "C00022"},
		{"Pyruvate\nsecond line", "10", "Pyruvate"},
		{"2-Oxoglutarate...", "10", "2-Oxoglutarate"},
		{"ko:K00163 ko:K00164", "20", "K00163"},
		{"", "20", "20"},
		{"  Acetyl-CoA  ", "11", "Acetyl-CoA"},
	}
	for _, tt := range tests {
		if got := normalizeLabel(tt.raw, tt.fallback); got != tt.want {
			t.Errorf("normalizeLabel(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestValidatePathwayID(t *testing.T) {
	for _, id := range []string{"eco00010", "map00620", "hsa04110"} {
		if err := ValidatePathwayID(id); err != nil {
			t.Errorf("ValidatePathwayID(%q) = %v", id, err)
		}
	}
	for _, id := range []string{"", "X", "eco0001", "ECO00010", "eco00010;rm"} {
		if err := ValidatePathwayID(id); err == nil {
			t.Errorf("ValidatePathwayID(%q) accepted", id)
		}
	}
}

func TestClientFetchKGML(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get/eco00010/kgml" {
			http.NotFound(w, r)
			return
		}
		hits++
		w.Write([]byte(fixtureKGML))
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache()).WithBaseURL(srv.URL)
	ctx := context.Background()

	data, err := c.FetchKGML(ctx, "eco00010", false)
	if err != nil {
		t.Fatalf("FetchKGML: %v", err)
	}
	if len(data) == 0 || hits != 1 {
		t.Errorf("got %d bytes after %d hits", len(data), hits)
	}

	g, err := c.FetchPathway(ctx, "eco00010", Options{})
	if err != nil {
		t.Fatalf("FetchPathway: %v", err)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}

	if _, err := c.FetchKGML(ctx, "zzz99999", false); !errors.Is(err, errors.ErrCodePathwayNotFound) {
		t.Errorf("missing pathway err = %v, want PATHWAY_NOT_FOUND", err)
	}
}

func TestClientRejectsBadID(t *testing.T) {
	c := NewClient(cache.NewNullCache())
	if _, err := c.FetchKGML(context.Background(), "not a pathway", false); !errors.Is(err, errors.ErrCodeInvalidPathway) {
		t.Errorf("err = %v, want INVALID_PATHWAY", err)
	}
}
