package sbml

import (
	"fmt"
	"math"
	"testing"

	"github.com/metpath/studio/pkg/errors"
)

const fixtureSBML = `<?xml version="1.0"?>
<sbml xmlns="http://www.sbml.org/sbml/level3/version1/core" level="3" version="1">
  <model id="toy">
    <listOfSpecies>
      <species id="M_glc" name="Glucose"/>
      <species id="M_g6p" name="Glucose 6-phosphate"/>
      <species id="M_f6p" name="Fructose 6-phosphate"/>
    </listOfSpecies>
    <listOfReactions>
      <reaction id="HEX1" name="Hexokinase" reversible="false">
        <listOfReactants>
          <speciesReference species="M_glc"/>
        </listOfReactants>
        <listOfProducts>
          <speciesReference species="M_g6p"/>
        </listOfProducts>
      </reaction>
      <reaction id="PGI" name="Phosphoglucose isomerase" reversible="true">
        <listOfReactants>
          <speciesReference species="M_g6p"/>
        </listOfReactants>
        <listOfProducts>
          <speciesReference species="M_f6p"/>
        </listOfProducts>
      </reaction>
    </listOfReactions>
  </model>
</sbml>`

func TestImport(t *testing.T) {
	g, err := Import([]byte(fixtureSBML))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if g.PathwayID != "sbml_import" {
		t.Errorf("PathwayID = %q", g.PathwayID)
	}
	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", g.NodeCount())
	}
	// Irreversible and reversible reaction: 1 + 2 edges.
	if g.EdgeCount() != 3 {
		t.Fatalf("EdgeCount = %d, want 3", g.EdgeCount())
	}

	glc, ok := g.Node("M_glc")
	if !ok {
		t.Fatal("M_glc missing")
	}
	if glc.Label != "Glucose" {
		t.Errorf("label = %q, want Glucose", glc.Label)
	}
	// First species sits at angle zero on the layout circle. Three nodes
	// give radius max(170, 3*28) = 170.
	if math.Abs(glc.Pos.X-(640+170)) > 1e-9 || math.Abs(glc.Pos.Y-420) > 1e-9 {
		t.Errorf("pos = (%v, %v), want (810, 420)", glc.Pos.X, glc.Pos.Y)
	}

	hex, ok := g.Edge("HEX1:M_glc->M_g6p")
	if !ok {
		t.Fatal("hexokinase edge missing")
	}
	if hex.Reversible || hex.Label != "Hexokinase" {
		t.Errorf("edge = %+v", hex)
	}
	if _, ok := g.Edge("PGI_rev:M_f6p->M_g6p"); !ok {
		t.Error("reverse edge for reversible reaction missing")
	}
}

func TestImportRadiusClamp(t *testing.T) {
	// 30 species would want radius 840; the cap holds it at 560.
	doc := `<sbml><model><listOfSpecies>`
	for i := 0; i < 30; i++ {
		doc += fmt.Sprintf(`<species id="s%02d"/>`, i)
	}
	doc += `</listOfSpecies><listOfReactions>
      <reaction id="r1"><listOfReactants><speciesReference species="s00"/></listOfReactants>
      <listOfProducts><speciesReference species="s01"/></listOfProducts></reaction>
    </listOfReactions></model></sbml>`

	g, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	sa, _ := g.Node("s00")
	if math.Abs(sa.Pos.X-(640+560)) > 1e-9 {
		t.Errorf("x = %v, want 1200 (radius capped at 560)", sa.Pos.X)
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `<sbml><model>`},
		{"no species", `<sbml><model><listOfSpecies/></model></sbml>`},
		{"no reactions", `<sbml><model><listOfSpecies><species id="a"/></listOfSpecies></model></sbml>`},
		{"self loop only", `<sbml><model>
			<listOfSpecies><species id="a"/></listOfSpecies>
			<listOfReactions><reaction id="r">
				<listOfReactants><speciesReference species="a"/></listOfReactants>
				<listOfProducts><speciesReference species="a"/></listOfProducts>
			</reaction></listOfReactions></model></sbml>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Import([]byte(tt.doc)); !errors.Is(err, errors.ErrCodeInvalidModel) {
				t.Errorf("err = %v, want INVALID_MODEL", err)
			}
		})
	}
}

func TestImportUnknownSpeciesRefSkipped(t *testing.T) {
	doc := `<sbml><model>
		<listOfSpecies><species id="a"/><species id="b"/></listOfSpecies>
		<listOfReactions>
			<reaction id="r1">
				<listOfReactants><speciesReference species="a"/></listOfReactants>
				<listOfProducts><speciesReference species="ghost"/></listOfProducts>
			</reaction>
			<reaction id="r2">
				<listOfReactants><speciesReference species="a"/></listOfReactants>
				<listOfProducts><speciesReference species="b"/></listOfProducts>
			</reaction>
		</listOfReactions></model></sbml>`

	g, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (ghost reference skipped)", g.EdgeCount())
	}
}
