package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/transaction-processor/internal/domain/entity"
	"github.com/amirhossein-jamali/transaction-processor/internal/domain/port/messaging"
)

// RequeueOptions holds flags for the requeue command
type RequeueOptions struct {
	*RootOptions
	Reclaim bool
}

// NewRequeueCommand creates the requeue command
func NewRequeueCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RequeueOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "requeue <transaction-id>",
		Short: "Publish another work notification for a transaction",
		Long: `Publish another work notification for a PENDING transaction.

With --reclaim a PROCESSING transaction is first handed back to PENDING. Only
do this when its worker is known to be gone: the change is version checked, so
a worker that is still running loses its result rather than overwriting it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			c, err := opts.open(ctx, nil)
			if err != nil {
				return err
			}
			defer closeContainer(c, &err)

			txn, err := c.Ledger.Read(ctx, args[0])
			if err != nil {
				return err
			}

			switch {
			case txn.Status == entity.StatusPending:
			case txn.Status == entity.StatusProcessing && opts.Reclaim:
				reclaim, err := c.Ledger.Reclaim(ctx, txn.ID, txn.Version)
				if err != nil {
					return err
				}
				if err := reclaim.Err(); err != nil {
					return fmt.Errorf("%w; try again", err)
				}
			case txn.Status == entity.StatusProcessing:
				return fmt.Errorf("transaction %s is PROCESSING; pass --reclaim to hand it back first", txn.ID)
			default:
				return fmt.Errorf("transaction %s is already %s", txn.ID, txn.Status)
			}

			if err := c.Queue.Publish(ctx, messaging.WorkNotification{TransactionID: txn.ID}); err != nil {
				return err
			}
			return newFormatter(opts.RootOptions, cmd.OutOrStdout()).Message("Requeued transaction %s", txn.ID)
		},
	}

	cmd.Flags().BoolVar(&opts.Reclaim, "reclaim", false, "hand a PROCESSING transaction back to PENDING first")

	return cmd
}
