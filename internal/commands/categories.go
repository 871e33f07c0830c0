package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			cats, err := a.taxonomy.List(ctx)
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Printf("%2d  %-16s %-20s %s\n", c.Priority, c.Value, c.Name, strings.Join(c.Patterns.Items(), " "))
			}
			return nil
		},
	}

	cmd.AddCommand(newCategoriesAddCommand())
	return cmd
}

func newCategoriesAddCommand() *cobra.Command {
	var name, value, pattern string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			cat, err := a.taxonomy.Create(ctx, name, value, pattern)
			if err != nil {
				return err
			}
			fmt.Printf("created %s (priority %d)\n", cat.Value, cat.Priority)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&value, "value", "", "stable slug (required)")
	_ = cmd.MarkFlagRequired("value")
	cmd.Flags().StringVar(&pattern, "pattern", "", "initial match pattern, e.g. %rewe%")

	return cmd
}
