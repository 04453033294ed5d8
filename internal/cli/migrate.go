package cli

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Bring the database schema up to date",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			// Opening the container runs the migrations
			c, err := rootOpts.open(ctx, nil)
			if err != nil {
				return err
			}
			defer closeContainer(c, &err)

			out := newFormatter(rootOpts, cmd.OutOrStdout())
			if c.Database == nil {
				return out.Message("Memory store needs no migration")
			}

			version, err := c.Database.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			return out.Message("Schema at version %s", version)
		},
	}
}
