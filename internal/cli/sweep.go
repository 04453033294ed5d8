package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/transaction-processor/internal/infrastructure/config"
)

// SweepOptions holds flags for the sweep command
type SweepOptions struct {
	*RootOptions
	ProcessingLease time.Duration
	PendingGrace    time.Duration
	BatchSize       int
}

// NewSweepCommand creates the sweep command
func NewSweepCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SweepOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one recovery pass",
		Long: `Run one recovery pass: hand PROCESSING transactions older than the
processing lease back to PENDING, and republish notifications for PENDING
transactions older than the pending grace. Flags override the recovery section.

Example:
  txctl sweep --pending-grace 5m`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			c, err := opts.open(ctx, func(cfg *config.Config) {
				if cmd.Flags().Changed("processing-lease") {
					cfg.Recovery.ProcessingLease = opts.ProcessingLease
				}
				if cmd.Flags().Changed("pending-grace") {
					cfg.Recovery.PendingGrace = opts.PendingGrace
				}
				if opts.BatchSize > 0 {
					cfg.Recovery.BatchSize = opts.BatchSize
				}
			})
			if err != nil {
				return err
			}
			defer closeContainer(c, &err)

			if !c.Sweeper.Enabled() {
				return errors.New("recovery is disabled: set --processing-lease or --pending-grace")
			}

			report, err := c.Sweeper.Sweep(ctx)
			if err != nil {
				return err
			}

			out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
			if out.Format == "json" {
				return out.JSON(map[string]int{
					"reclaimed":   report.Reclaimed,
					"republished": report.Republished,
					"skipped":     report.Skipped,
				})
			}
			return out.Message("Reclaimed %d, republished %d, skipped %d",
				report.Reclaimed, report.Republished, report.Skipped)
		},
	}

	cmd.Flags().DurationVar(&opts.ProcessingLease, "processing-lease", 0, "reclaim PROCESSING transactions older than this")
	cmd.Flags().DurationVar(&opts.PendingGrace, "pending-grace", 0, "republish PENDING transactions older than this")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 0, "override recovery.batchSize")

	return cmd
}
