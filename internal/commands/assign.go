package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAssignCommand() *cobra.Command {
	var propagate bool

	cmd := &cobra.Command{
		Use:   "assign <transaction-id> <category>",
		Short: "Set the category of one transaction and learn its description",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			cat, err := a.resolveCategory(ctx, args[1])
			if err != nil {
				return err
			}

			candidates, err := a.assign.AssignCategory(ctx, args[0], cat.ID, propagate)
			if err != nil {
				return err
			}

			fmt.Printf("assigned %s to %s\n", args[0], cat.Value)
			if propagate {
				if len(candidates) == 0 {
					fmt.Println("no similar uncategorized transactions found")
					return nil
				}
				fmt.Printf("%d similar uncategorized transactions:\n", len(candidates))
				for _, c := range candidates {
					fmt.Printf("  %s  %-12s %10s  %s\n", c.ID, c.Date, c.Amount.StringFixed(2), c.Description)
				}
				fmt.Printf("confirm with: pfennig confirm %s <transaction-id>...\n", cat.Value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&propagate, "propagate", false, "list similar uncategorized transactions for confirmation")

	return cmd
}

func newConfirmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm <category> <transaction-id>...",
		Short: "Apply a category to previously listed candidates",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			cat, err := a.resolveCategory(ctx, args[0])
			if err != nil {
				return err
			}

			n, err := a.assign.AssignCategoryBulk(ctx, args[1:], cat.ID)
			if err != nil {
				return err
			}
			fmt.Printf("updated %d of %d transactions\n", n, len(args)-1)
			return nil
		},
	}
	return cmd
}
