package cli

import (
	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/config"
)

// ServeOptions holds flags for the serve command
type ServeOptions struct {
	*RootOptions
	Port    int
	Workers bool
}

// NewServeCommand creates the serve command
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

With worker.embedded (or --workers) the processing workers and the recovery
sweeper run in the same process.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			c, err := opts.open(ctx, func(cfg *config.Config) {
				if cmd.Flags().Changed("port") {
					cfg.Server.Port = opts.Port
				}
				if cmd.Flags().Changed("workers") {
					cfg.Worker.Embedded = opts.Workers
				}
			})
			if err != nil {
				return err
			}
			defer closeContainer(c, &err)

			if c.Config.Worker.Embedded {
				c.StartWorkers(ctx)
			}
			return c.Serve(ctx)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", 0, "override server.port")
	cmd.Flags().BoolVar(&opts.Workers, "workers", false, "override worker.embedded")

	return cmd
}
