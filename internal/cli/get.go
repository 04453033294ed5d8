package cli

import (
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <transaction-id>",
		Short:         "Show a transaction",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			c, err := rootOpts.open(ctx, nil)
			if err != nil {
				return err
			}
			defer closeContainer(c, &err)

			txn, err := c.Service.GetTransaction(ctx, args[0])
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Transaction(txn)
		},
	}
}
