// Package pipeline provides the core processing pipeline for MetPath Studio.
//
// This package implements the complete fetch → annotate → layout → render
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: Retrieve a pathway from KEGG (or import an SBML model)
//  2. Annotate: Match an overlay table against reaction edges
//  3. Layout: Apply edge routing and optional alignment templates
//  4. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    PathwayID: "eco00010",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/overlay"
	"github.com/metpath/studio/pkg/pathway"
)

// Default values shared by the CLI and API entry points.
const (
	// DefaultFormat is used when no output formats are requested.
	DefaultFormat = FormatSVG

	// DefaultPNGScale produces 2x resolution images for high-DPI displays.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Layout template constants.
const (
	TemplateNone = "none"
	TemplateRing = "ring"
	TemplateFlow = "flow"
)

// ValidTemplates is the set of supported alignment templates.
var ValidTemplates = map[string]bool{
	TemplateNone: true,
	TemplateRing: true,
	TemplateFlow: true,
}

// Options contains all configuration for the pathway pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	PathwayID     string `json:"pathway_id,omitempty"`
	SBML          []byte `json:"sbml,omitempty"`
	HideCofactors bool   `json:"hide_cofactors,omitempty"`
	Refresh       bool   `json:"refresh,omitempty"`

	// Overlay options
	OverlayTable string `json:"overlay_table,omitempty"`

	// Layout options
	Template   string `json:"template,omitempty"`
	Orthogonal bool   `json:"orthogonal,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Decorators bool     `json:"decorators,omitempty"`
	ShowValues bool     `json:"show_values,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the annotated pathway graph.
	Graph *pathway.Graph

	// Overlay summarizes the overlay matching pass, nil when no table
	// was supplied.
	Overlay *overlay.Summary

	// Legend tallies visible edge statuses and annotations.
	Legend pathway.LegendCounts

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTemplate checks that an alignment template is valid.
func ValidateTemplate(template string) error {
	if !ValidTemplates[template] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid template: %q (must be one of: none, ring, flow)", template)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.PathwayID == "" && len(o.SBML) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pathway_id or sbml is required")
	}
	if o.PathwayID != "" && len(o.SBML) != 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pathway_id and sbml are mutually exclusive")
	}
	if o.Template == "" {
		o.Template = TemplateNone
	}
	if err := ValidateTemplate(o.Template); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
