package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBackfillCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backfill",
		Short: "Re-run category rules over all uncategorized transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.backfill.Backfill(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("scanned %d, updated %d, skipped %d\n", res.Scanned, res.Updated, res.Skipped)
			return nil
		},
	}
}
