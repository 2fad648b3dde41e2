package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metpath/studio/pkg/pathway"
	"github.com/metpath/studio/pkg/pathway/kgml"
	"github.com/metpath/studio/pkg/pipeline"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	hideCofactors bool   // drop common currency metabolites (ATP, NADH, ...)
	refresh       bool   // bypass the KEGG response cache
	noCache       bool   // disable caching entirely for this run
	output        string // output file path (stdout if empty)
}

// fetchCommand creates the fetch command for downloading KEGG pathways.
// When no pathway ID is given, an interactive picker offers a curated list.
func (c *CLI) fetchCommand() *cobra.Command {
	var opts fetchOpts

	cmd := &cobra.Command{
		Use:   "fetch [pathway-id]",
		Short: "Fetch a KEGG pathway and save it as a pathway document",
		Long: `Fetch a pathway from the KEGG REST API, translate it into a pathway
document, and write the document as JSON.

Pathway identifiers combine an organism code with a map number, e.g.
eco00010 (E. coli glycolysis) or hsa00020 (human TCA cycle). Run without
arguments to pick from a list of common pathways.

Examples:
  metpath fetch eco00010 -o glycolysis.json
  metpath fetch eco00020 --hide-cofactors
  metpath fetch --refresh eco00010`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			} else {
				var err error
				id, err = pickPathway()
				if err != nil {
					return err
				}
				if id == "" {
					printInfo("No pathway selected")
					return nil
				}
			}
			return c.runFetch(cmd.Context(), id, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.hideCofactors, "hide-cofactors", false, "hide currency metabolites such as ATP and NADH")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching for this run")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runFetch downloads and translates one pathway, then writes the document.
func (c *CLI) runFetch(ctx context.Context, id string, opts fetchOpts) error {
	if err := kgml.ValidatePathwayID(id); err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	cfg := loadConfig(logger)
	if cfg.Fetch.HideCofactors {
		opts.hideCofactors = true
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	cached := false
	if !opts.refresh && !opts.noCache {
		cached = c.isCached(ctx, runner, id)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s...", id))
	spinner.Start()

	g, err := runner.Fetch(ctx, pipeline.Options{
		PathwayID:     id,
		HideCofactors: opts.hideCofactors,
		Refresh:       opts.refresh,
	})
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed to fetch %s", id))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Fetched %s (%s)", id, g.PathwayName))

	printStats(g.NodeCount(), g.EdgeCount(), cached)

	if err := writeDocument(g, opts.output, logger); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
		printNextStep("Render it", fmt.Sprintf("metpath render %s", opts.output))
	}
	return nil
}

// isCached reports whether the KGML response for id is already cached.
// Used only for display; fetch consults the cache itself.
func (c *CLI) isCached(ctx context.Context, runner *pipeline.Runner, id string) bool {
	if runner.Cache == nil {
		return false
	}
	_, ok, err := runner.Cache.Get(ctx, kgml.CacheKey(id))
	return err == nil && ok
}

// writeDocument serializes g as a pathway document to path (or stdout if empty).
func writeDocument(g *pathway.Graph, path string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := pathway.WriteDocument(g, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote document to %s", path)
	}
	return nil
}
