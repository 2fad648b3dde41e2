package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/pathway"
)

// overlayOpts holds the command-line flags for the overlay command.
type overlayOpts struct {
	output string // output file path (stdout if empty)
}

// overlayCommand creates the overlay command for annotating documents with
// experimental data.
func (c *CLI) overlayCommand() *cobra.Command {
	var opts overlayOpts

	cmd := &cobra.Command{
		Use:   "overlay <document.json> <table>",
		Short: "Join an overlay table onto a document's reaction edges",
		Long: `Join a tab- or comma-separated overlay table onto the reaction edges of
a pathway document. The table needs an identifier column and a numeric
value column; identifiers are matched against reaction numbers, enzyme
names, and edge labels, tolerating common prefix and case differences.

Matched edges are colored and widened proportionally to their value over
the matched range. Unmatched rows are ignored.

Examples:
  metpath overlay glycolysis.json fluxes.tsv -o annotated.json
  metpath overlay model.json expression.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOverlay(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runOverlay loads the document and table, applies the overlay, and writes
// the annotated document.
func (c *CLI) runOverlay(cmd *cobra.Command, docPath, tablePath string, opts overlayOpts) error {
	g, err := pathway.ReadDocumentFile(docPath)
	if err != nil {
		return err
	}

	table, err := os.ReadFile(tablePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", tablePath, err)
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	summary := runner.Annotate(cmd.Context(), g, string(table))
	if summary == nil {
		return errors.New(errors.ErrCodeInvalidOverlay, "overlay table has no usable rows")
	}

	printSuccess("Matched %d edges (range %.3g to %.3g)", summary.Count, summary.Min, summary.Max)

	legend := pathway.Summarize(g)
	printLegend(legend.Normal, legend.Upregulated, legend.Downregulated, legend.Removed, legend.Annotated)

	if err := writeDocument(g, opts.output, c.Logger); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
		printNextStep("Render it", fmt.Sprintf("metpath render %s --show-values", opts.output))
	}
	return nil
}
