package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metpath/studio/pkg/pathway/sbml"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	output string // output file path (stdout if empty)
}

// importCommand creates the import command for converting SBML models.
// Imported models have no curated coordinates, so species are placed on a
// circle sized to the species count. Use the layout command afterwards to
// apply a template.
func (c *CLI) importCommand() *cobra.Command {
	var opts importOpts

	cmd := &cobra.Command{
		Use:   "import <model.sbml>",
		Short: "Import an SBML model as a pathway document",
		Long: `Import a local SBML model file and convert it into a pathway document.

Species become nodes and reactions become edges; reversible reactions get
a paired reverse edge. Species are placed on a circle since SBML carries
no canonical map coordinates.

Examples:
  metpath import model.xml -o model.json
  metpath import model.xml | metpath render -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// runImport reads and converts one SBML file, then writes the document.
func (c *CLI) runImport(path string, opts importOpts) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	prog := newProgress(c.Logger)
	g, err := sbml.Import(data)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Imported %d species with %d reactions", g.NodeCount(), g.EdgeCount()))

	printSuccess("Imported %s", path)
	printKeyValue("Pathway", g.PathwayName)
	printStats(g.NodeCount(), g.EdgeCount(), false)

	if err := writeDocument(g, opts.output, c.Logger); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(opts.output)
		printNextStep("Apply a layout", fmt.Sprintf("metpath layout %s --template ring", opts.output))
	}
	return nil
}
