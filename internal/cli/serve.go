package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgreveal/pkg/pipeline"
	"github.com/matzehuels/svgreveal/pkg/server"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
		timeout  time.Duration
		origins  []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  POST /v1/animate     animate the SVG request body
  GET  /v1/keyframes   synthesize a single @keyframes rule
  GET  /v1/preview     WebSocket timeline preview
  GET  /healthz        liveness probe

Results are cached in Redis when --redis is given, otherwise in the local
cache directory.`,
		Example: `  svgreveal serve --addr :8080
  svgreveal serve --redis redis://localhost:6379/0
  svgreveal serve --allow-origin https://editor.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newServerCache(ctx, redisURL, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Config{Addr: addr, Timeout: timeout, AllowedOrigins: origins})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "extra origins allowed to open the preview WebSocket (\"*\" for any)")

	return cmd
}
