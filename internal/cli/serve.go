package cli

import (
	"github.com/spf13/cobra"

	"github.com/metpath/studio/internal/server"
)

// defaultServeAddr is used when neither the flag nor the config names one.
const defaultServeAddr = ":8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the MetPath Studio HTTP API.

Endpoints:
  GET  /health                 liveness probe
  GET  /api/pathway/{id}       fetch and translate a KEGG pathway
  POST /api/import/sbml        import an SBML model
  POST /api/overlay            annotate a document with an overlay table
  POST /api/render             render a document to one output format

The server shuts down gracefully on SIGINT and SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				cfg := loadConfig(c.Logger)
				addr = cfg.Server.Addr
			}
			if addr == "" {
				addr = defaultServeAddr
			}

			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Serving on %s", addr)
			return server.New(runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080, or server.addr from config)")

	return cmd
}
