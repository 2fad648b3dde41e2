// Package pkg provides the core libraries for MetPath Studio pathway
// annotation and rendering.
//
// # Overview
//
// MetPath Studio turns biochemical reaction pathways into annotated,
// renderable maps. The pkg directory is organized around the pipeline
// stages:
//
//  1. [pathway] - Domain model (metabolite graph, decorators, documents)
//  2. [overlay] - Overlay table parsing and fuzzy identifier matching
//  3. [layout] - Edge routing and alignment templates
//  4. [render] - DOT generation and Graphviz-based SVG/PNG/PDF output
//  5. [pipeline] - Orchestration (fetch → annotate → layout → render)
//
// # Architecture
//
// The typical data flow:
//
//	KEGG REST API / SBML file
//	         ↓
//	    [pathway/kgml] or [pathway/sbml] (translate to a pathway graph)
//	         ↓
//	    [overlay] package (join experimental values onto reaction edges)
//	         ↓
//	    [layout] package (routing offsets + ring/flow alignment)
//	         ↓
//	    [render] package (DOT → SVG/PNG/PDF)
//
// # Quick Start
//
// Fetch, annotate and render a pathway:
//
//	import (
//	    "context"
//	    "github.com/metpath/studio/pkg/cache"
//	    "github.com/metpath/studio/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    PathwayID:    "eco00010",
//	    OverlayTable: "id\tvalue\nR00200\t1.5\n",
//	    Formats:      []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Main Packages
//
// [pathway] - The metabolite graph: nodes with curated coordinates,
// reaction edges with enzyme labels, per-edge satellite decorators, and
// the JSON document format used by the CLI and API.
//
// [pathway/kgml] - KEGG client and KGML translation, including coordinate
// normalization, cofactor detection, and reaction expansion.
//
// [pathway/sbml] - SBML model import with circle placement.
//
// [overlay] - Delimiter-sniffing table parser and the candidate-key
// matcher that joins rows onto edges despite prefix and case differences.
//
// [layout] - Parallel-edge routing offsets and the ring and flow
// alignment templates.
//
// [render] - DOT export with pinned positions, overlay styling, and
// decorator satellites; rasterization via Graphviz and rsvg-convert.
//
// [pipeline] - The Runner used by both the CLI and the HTTP API.
//
// ## Infrastructure
//
// [cache] - File, Redis, and null cache backends for KEGG responses.
//
// [errors] - Coded errors with HTTP status mapping.
//
// [httputil] - Retry with exponential backoff for upstream fetches.
//
// [observability] - Hook registry for metrics and tracing integration.
//
// [buildinfo] - ldflags-injected version information.
//
// [pathway]: https://pkg.go.dev/github.com/metpath/studio/pkg/pathway
// [pathway/kgml]: https://pkg.go.dev/github.com/metpath/studio/pkg/pathway/kgml
// [pathway/sbml]: https://pkg.go.dev/github.com/metpath/studio/pkg/pathway/sbml
// [overlay]: https://pkg.go.dev/github.com/metpath/studio/pkg/overlay
// [layout]: https://pkg.go.dev/github.com/metpath/studio/pkg/layout
// [render]: https://pkg.go.dev/github.com/metpath/studio/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/metpath/studio/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/metpath/studio/pkg/cache
// [errors]: https://pkg.go.dev/github.com/metpath/studio/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/metpath/studio/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/metpath/studio/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/metpath/studio/pkg/buildinfo
package pkg
