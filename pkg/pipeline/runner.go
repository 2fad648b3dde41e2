package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/metpath/studio/pkg/cache"
	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/layout"
	"github.com/metpath/studio/pkg/observability"
	"github.com/metpath/studio/pkg/overlay"
	"github.com/metpath/studio/pkg/pathway"
	"github.com/metpath/studio/pkg/pathway/kgml"
	"github.com/metpath/studio/pkg/pathway/sbml"
	"github.com/metpath/studio/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating fetch and render logic.
//
// The Runner is stateless except for the cache, KEGG client and logger. It
// does not store pipeline results, so multiple goroutines can safely share
// one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	KEGG   *kgml.Client
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		KEGG:   kgml.NewClient(c),
		Logger: logger,
	}
}

// Execute runs the complete fetch → annotate → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	g, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	opts.Logger.Info("loaded pathway",
		"pathway", g.PathwayID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.FetchTime)

	// Stage 2: Annotate
	if opts.OverlayTable != "" {
		result.Overlay = r.Annotate(ctx, g, opts.OverlayTable)
		if result.Overlay != nil {
			opts.Logger.Info("applied overlay",
				"matched", result.Overlay.Count,
				"edges", g.EdgeCount())
		}
	}

	// Stage 3: Layout
	layoutStart := time.Now()
	r.ApplyLayout(ctx, g, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.Legend = pathway.Summarize(g)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fetch loads a pathway graph from KEGG or from inline SBML.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*pathway.Graph, error) {
	if len(opts.SBML) != 0 {
		return sbml.Import(opts.SBML)
	}

	hooks := observability.Pathway()
	hooks.OnFetchStart(ctx, opts.PathwayID)
	start := time.Now()

	data, err := r.KEGG.FetchKGML(ctx, opts.PathwayID, opts.Refresh)
	if err != nil {
		hooks.OnFetchComplete(ctx, opts.PathwayID, 0, time.Since(start), err)
		return nil, err
	}
	g, err := kgml.Translate(data, kgml.Options{HideCofactors: opts.HideCofactors})
	if err != nil {
		hooks.OnFetchComplete(ctx, opts.PathwayID, 0, time.Since(start), err)
		return nil, err
	}

	hooks.OnFetchComplete(ctx, opts.PathwayID, g.NodeCount(), time.Since(start), nil)
	return g, nil
}

// Annotate applies an overlay table to the graph and refreshes decorators.
// Returns nil when the table has no usable rows.
func (r *Runner) Annotate(ctx context.Context, g *pathway.Graph, table string) *overlay.Summary {
	summary := overlay.Apply(g, table)
	pathway.Refresh(g)
	if summary != nil {
		observability.Pathway().OnOverlayApplied(ctx, g.PathwayID, summary.Count, g.EdgeCount())
	}
	return summary
}

// ApplyLayout runs edge routing and the requested alignment template. The
// template aligns the current selection; with nothing selected, it aligns
// every node.
func (r *Runner) ApplyLayout(ctx context.Context, g *pathway.Graph, opts Options) {
	hooks := observability.Pathway()
	hooks.OnLayoutStart(ctx, opts.Template, g.NodeCount())
	start := time.Now()

	mode := pathway.RoutingBezier
	if opts.Orthogonal {
		mode = pathway.RoutingOrthogonal
	}
	layout.AssignRouting(g, mode)

	if opts.Template != TemplateNone && opts.Template != "" {
		selectAll := len(g.Selection()) == 0
		if selectAll {
			for _, n := range g.Nodes() {
				g.Select(n.ID)
			}
		}
		switch opts.Template {
		case TemplateRing:
			layout.AlignRing(g)
		case TemplateFlow:
			layout.AlignFlow(g)
		}
		if selectAll {
			g.ClearSelection()
		}
	}

	pathway.Refresh(g)
	hooks.OnLayoutComplete(ctx, opts.Template, time.Since(start), nil)
}

// Render produces the requested artifact formats from the graph.
func (r *Runner) Render(ctx context.Context, g *pathway.Graph, opts Options) (map[string][]byte, error) {
	renderOpts := render.Options{
		Decorators: opts.Decorators,
		ShowValues: opts.ShowValues,
	}
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultPNGScale
	}

	hooks := observability.Pathway()
	artifacts := make(map[string][]byte, len(opts.Formats))
	dot := ""
	for _, format := range opts.Formats {
		if err := ValidateFormat(format); err != nil {
			return nil, err
		}

		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		var data []byte
		var err error
		switch format {
		case FormatJSON:
			data, err = pathway.MarshalDocument(g)
		case FormatDOT:
			data = []byte(render.ToDOT(g, renderOpts))
		default:
			if dot == "" {
				dot = render.ToDOT(g, renderOpts)
			}
			switch format {
			case FormatSVG:
				data, err = render.RenderSVG(ctx, dot)
			case FormatPNG:
				data, err = render.RenderPNG(ctx, dot, scale)
			case FormatPDF:
				data, err = render.RenderPDF(ctx, dot)
			}
		}

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
