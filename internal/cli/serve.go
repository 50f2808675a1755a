package cli

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/internal/server"
	"github.com/matzehuels/inscribe/pkg/config"
	"github.com/matzehuels/inscribe/pkg/raster"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve runs the HTTP API:

  GET  /healthz    liveness probe
  POST /v1/solve   solve the vertex list in the request body

The solve body is vertex lines or a {"vertices": [[x,y], ...]} JSON document.
Query parameters variant, policy, workers and refresh override the config.`,
		Example: `  inscribe serve --addr :9090
  curl --data-binary @input.txt 'localhost:9090/v1/solve?variant=both'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			sv := c.Config.Server
			defaults := c.baseOptions()
			defaults.MaxVertices = sv.MaxVertices
			defaults.Limits = raster.Limits{MaxColumns: sv.MaxColumns}
			srv := server.New(runner, c.Logger, server.Config{
				MaxBodyBytes: sv.MaxBodyBytes,
				Defaults:     defaults,
			})

			printKeyValue("Listening", addr)
			printKeyValue("Cache", cacheLocation(c.Config.Cache.CacheOptions()))

			err = srv.ListenAndServe(ctx, addr)
			if stderrors.Is(err, context.Canceled) {
				printSuccess("Server stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config, "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
