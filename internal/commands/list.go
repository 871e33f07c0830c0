package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfennig/pfennig/internal/database/repository"
)

func newListCommand() *cobra.Command {
	var category, search string
	var uncategorized bool
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			filters := repository.TransactionFilters{
				Uncategorized: uncategorized,
				Search:        search,
				Limit:         limit,
				Offset:        offset,
			}
			if category != "" {
				cat, err := a.resolveCategory(ctx, category)
				if err != nil {
					return err
				}
				filters.CategoryID = cat.ID
			}

			txs, err := a.transactions.List(ctx, filters)
			if err != nil {
				return err
			}
			values := map[string]string{}
			cats, err := a.categories.List(ctx)
			if err != nil {
				return err
			}
			for _, c := range cats {
				values[c.ID] = c.Value
			}
			for _, t := range txs {
				cat := "-"
				if t.CategoryID != nil {
					cat = values[*t.CategoryID]
				}
				fmt.Printf("%s  %-12s %10s  %-16s %s\n", t.ID, t.Date, t.Amount.StringFixed(2), cat, t.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only transactions in this category")
	cmd.Flags().BoolVar(&uncategorized, "uncategorized", false, "only uncategorized transactions")
	cmd.Flags().StringVar(&search, "search", "", "substring match on description")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")

	return cmd
}

func newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			totals, err := a.transactions.SumByCategory(ctx)
			if err != nil {
				return err
			}
			values := map[string]string{}
			cats, err := a.categories.List(ctx)
			if err != nil {
				return err
			}
			for _, c := range cats {
				values[c.ID] = c.Value
			}
			for _, tot := range totals {
				name := "(uncategorized)"
				if tot.CategoryID != "" {
					name = values[tot.CategoryID]
				}
				fmt.Printf("%-16s %10s  (%d transactions)\n", name, tot.Total.StringFixed(2), tot.Count)
			}
			return nil
		},
	}
}
