package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metpath/studio/pkg/pathway"
	"github.com/metpath/studio/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: svg, png, pdf, dot, json
	decorators bool     // draw cassette and knockout markers
	showValues bool     // append overlay values to edge labels
	scale      float64  // PNG resolution multiplier
}

// renderCommand creates the render command for generating pathway maps.
//
// Default settings:
//   - format: svg
//   - scale: 2.0 (PNG only)
//   - decorators: false
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render <document.json>",
		Short: "Render a pathway document to SVG, PNG, PDF, or DOT",
		Long: `Render a pathway document into one or more output formats.

SVG, PNG, and PDF go through Graphviz with node positions pinned to the
document's coordinates. DOT writes the intermediate Graphviz source and
JSON re-emits the document itself.

Examples:
  metpath render glycolysis.json
  metpath render annotated.json -f svg,png -o map
  metpath render annotated.json --decorators --show-values`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.decorators, "decorators", false, "draw cassette and knockout markers")
	cmd.Flags().BoolVar(&opts.showValues, "show-values", false, "append overlay values to edge labels")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")

	return cmd
}

// runRender loads the document and renders all requested formats.
func (c *CLI) runRender(cmd *cobra.Command, docPath string, opts renderOpts) error {
	g, err := pathway.ReadDocumentFile(docPath)
	if err != nil {
		return err
	}
	c.Logger.Infof("Loaded document: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	artifacts, err := runner.Render(cmd.Context(), g, pipeline.Options{
		Formats:    opts.formats,
		Decorators: opts.decorators,
		ShowValues: opts.showValues,
		Scale:      opts.scale,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(artifacts)))

	base := basePath(opts.output, docPath)
	for _, format := range opts.formats {
		data := artifacts[format]
		path := base + "." + format
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		printFile(path)
	}

	printSuccess("Rendered %s", docPath)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output already carries a format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
