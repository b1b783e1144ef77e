package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modelviewer/internal/server"
	"github.com/matzehuels/modelviewer/pkg/observability/prom"
	"github.com/matzehuels/modelviewer/pkg/viewer"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		root    string
		metrics bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve model diagrams over HTTP",
		Long: `Start the HTTP viewer. Models are resolved relative to --root.

Endpoints:
  GET /healthz
  GET /api/v1/dot?model=<path>
  GET /api/v1/image?model=<path>&width=<px>&height=<px>
  GET /api/v1/export?model=<path>&format=<format>
  GET /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg().Server
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Addr
			}
			if !cmd.Flags().Changed("root") {
				root = cfg.Root
			}

			bridge, store, err := c.newBridge(ctx, "", noCache)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := []server.Option{
				server.WithLogger(c.Logger.WithPrefix("server")),
				server.WithGeneratorOptions(viewer.WithDiagnostics(c.cfg().Diagnostics)),
			}
			if metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				prom.New(reg).Install()
				opts = append(opts, server.WithGatherer(reg))
			}

			printInfo(cmd.OutOrStdout(), "Serving models from %s on %s", StyleHighlight.Render(root), StyleHighlight.Render(addr))
			return server.New(root, bridge, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&root, "root", "", "model root directory (default from config, .)")
	cmd.Flags().BoolVar(&metrics, "metrics", true, "expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}
