package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/config"
)

// WorkerOptions holds flags for the worker command
type WorkerOptions struct {
	*RootOptions
	Concurrency int
}

// NewWorkerCommand creates the worker command
func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WorkerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run processing workers without the HTTP API",
		Long: `Run processing workers and the recovery sweeper until interrupted.

A standalone worker shares work with the API through the database queue, so
queue.driver must be "database".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			c, err := opts.open(ctx, func(cfg *config.Config) {
				if opts.Concurrency > 0 {
					cfg.Worker.Concurrency = opts.Concurrency
				}
			})
			if err != nil {
				return err
			}
			defer closeContainer(c, &err)

			if c.Config.Queue.Driver != config.QueueDatabase {
				return errors.New(`standalone worker needs queue.driver "database"`)
			}

			c.StartWorkers(ctx)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Concurrency, "concurrency", "c", 0, "override worker.concurrency")

	return cmd
}
