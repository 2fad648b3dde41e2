package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/metpath/studio/pkg/cache"
	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/pathway"
	"github.com/metpath/studio/pkg/pathway/kgml"
)

const testSBML = `<sbml><model>
  <listOfSpecies>
    <species id="glc" name="Glucose"/>
    <species id="g6p" name="G6P"/>
    <species id="f6p" name="F6P"/>
  </listOfSpecies>
  <listOfReactions>
    <reaction id="HEX1" name="Hexokinase">
      <listOfReactants><speciesReference species="glc"/></listOfReactants>
      <listOfProducts><speciesReference species="g6p"/></listOfProducts>
    </reaction>
    <reaction id="PGI" name="Isomerase">
      <listOfReactants><speciesReference species="g6p"/></listOfReactants>
      <listOfProducts><speciesReference species="f6p"/></listOfProducts>
    </reaction>
  </listOfReactions>
</model></sbml>`

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no source", Options{}, errors.ErrCodeInvalidInput},
		{"both sources", Options{PathwayID: "eco00010", SBML: []byte("<sbml/>")}, errors.ErrCodeInvalidInput},
		{"bad template", Options{PathwayID: "eco00010", Template: "spiral"}, errors.ErrCodeInvalidInput},
		{"bad format", Options{PathwayID: "eco00010", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{PathwayID: "eco00010"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Template != TemplateNone {
		t.Errorf("Template = %q, want none", opts.Template)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultPNGScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultPNGScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}
}

func TestExecuteSBML(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		SBML:         []byte(testSBML),
		OverlayTable: "id\tvalue\nHEX1\t1.5\nPGI\t-0.7\n",
		Formats:      []string{FormatDOT, FormatJSON},
		ShowValues:   true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Overlay == nil || result.Overlay.Count != 2 {
		t.Fatalf("overlay = %+v, want 2 matches", result.Overlay)
	}
	if result.Overlay.Min != -0.7 || result.Overlay.Max != 1.5 {
		t.Errorf("range = [%v, %v]", result.Overlay.Min, result.Overlay.Max)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph pathway") {
		t.Errorf("DOT artifact malformed:\n%s", dot)
	}
	if !strings.Contains(dot, `color="#d32f2f"`) {
		t.Errorf("overlay color missing from DOT:\n%s", dot)
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("JSON artifact empty")
	}
	if result.Legend.WithOverlay != 2 {
		t.Errorf("Legend.WithOverlay = %d, want 2", result.Legend.WithOverlay)
	}
}

func TestExecuteRingTemplate(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		SBML:     []byte(testSBML),
		Template: TemplateRing,
		Formats:  []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// With nothing selected the template applies to every node, and the
	// selection is restored to empty afterwards.
	if len(result.Graph.Selection()) != 0 {
		t.Errorf("selection leaked: %v", result.Graph.Selection())
	}
	first := result.Graph.Nodes()[0]
	if first.Pos.Y >= 420 {
		t.Errorf("ring start not above centroid: %+v", first.Pos)
	}
}

func TestExecuteOrthogonalRouting(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		SBML:       []byte(testSBML),
		Orthogonal: true,
		Formats:    []string{FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, e := range result.Graph.Edges() {
		if e.Routing != pathway.RoutingOrthogonal {
			t.Errorf("edge %s routing = %q", e.ID, e.Routing)
		}
		if e.SegmentOffset == 0 {
			t.Errorf("edge %s has no segment offset", e.ID)
		}
	}
}

func TestExecuteKEGGFetch(t *testing.T) {
	const doc = `<pathway name="path:eco00900" title="Terpenoid backbone">
  <entry id="1" type="compound" name="cpd:C00129"><graphics name="IPP" x="0" y="0"/></entry>
  <entry id="2" type="compound" name="cpd:C00235"><graphics name="DMAPP" x="120" y="0"/></entry>
  <reaction id="3" name="rn:R01123" type="reversible">
    <substrate id="1"/>
    <product id="2"/>
  </reaction>
</pathway>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(doc))
	}))
	defer srv.Close()

	r := NewRunner(nil, nil)
	defer r.Close()
	r.KEGG = kgml.NewClient(cache.NewNullCache()).WithBaseURL(srv.URL)

	result, err := r.Execute(context.Background(), Options{
		PathwayID: "eco00900",
		Formats:   []string{FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.NodeCount != 2 || result.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}
}
