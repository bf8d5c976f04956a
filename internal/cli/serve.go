package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		cacheURL  string
		noCache   bool
		maxCharts int
		scope     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive charts over HTTP",
		Long: `Serve starts an HTTP API that keeps charts in memory. Clients upload a
dataset, then send click, drag and lasso events and receive the render
changes each event caused.`,
		Example: `  treemap serve --addr :8080
  treemap serve --cache redis://localhost:6379/0 --cache-scope team-a:`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cacheURL, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger,
				server.WithMaxCharts(maxCharts),
				server.WithCacheScope(scope))
			printInfo("Serving on %s", StyleHighlight.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cacheURL, "cache", "", "cache backend (file:///dir, redis://host:6379/0, none)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&scope, "cache-scope", server.DefaultCacheScope, "prefix for this server's cache keys")
	cmd.Flags().IntVar(&maxCharts, "max-charts", server.DefaultMaxCharts, "live charts kept in memory")

	return cmd
}
