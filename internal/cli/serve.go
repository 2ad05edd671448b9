package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rectile/pkg/buildinfo"
	"github.com/matzehuels/rectile/pkg/observability"
	"github.com/matzehuels/rectile/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tilings over HTTP",
		Example: `  rectile serve
  rectile serve --addr :9000
  curl localhost:8080/v1/tilings/classic.svg?cx=16`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.ui().info("Serving on %s", StyleLink.Render("http://"+displayAddr(c.Config.Server.Addr)))
			c.ui().keyValue("Cache", c.cacheBackend(noCache))
			c.ui().keyValue("Version", buildinfo.Version)

			counters := observability.NewCounters()
			observability.Register(observability.Multi(observability.NewLogHooks(c.Logger), counters))

			srv := server.New(c.Config, runner, c.Logger)
			srv.Counters = counters
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr fills in localhost for addresses without a host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// cacheBackend names the cache newCache would build.
func (c *CLI) cacheBackend(noCache bool) string {
	cc := c.Config.Cache
	switch {
	case noCache || cc.Disabled:
		return "disabled"
	case cc.RedisURL != "":
		return "redis"
	}
	dir, err := c.cacheDir()
	if err != nil {
		return "disabled"
	}
	return "file " + dir
}
