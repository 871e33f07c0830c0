package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfennig/pfennig/internal/bank"
)

func newIngestCommand() *cobra.Command {
	var bankType string
	var holder string
	var mapDate, mapDescription, mapAmount, mapType, mapBank string

	cmd := &cobra.Command{
		Use:   "ingest <csv-file>",
		Short: "Import a bank CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read csv: %w", err)
			}

			var mapping *bank.ColumnMapping
			if bank.Type(bankType) == bank.TypeOthers {
				mapping = &bank.ColumnMapping{
					Date:            mapDate,
					Description:     mapDescription,
					Amount:          mapAmount,
					TransactionType: mapType,
					BankName:        mapBank,
				}
			}

			txs, err := a.ingest.Ingest(ctx, string(data), bank.Type(bankType), holder, mapping)
			if err != nil {
				return err
			}
			preassigned := 0
			for _, t := range txs {
				if t.CategoryID != nil {
					preassigned++
				}
			}
			fmt.Printf("imported %d transactions (%d pre-assigned)\n", len(txs), preassigned)
			return nil
		},
	}

	cmd.Flags().StringVar(&bankType, "bank", "", "bank format: commerzbank, revolut, wise or others (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVar(&holder, "holder", "", "account holder name (required)")
	_ = cmd.MarkFlagRequired("holder")
	cmd.Flags().StringVar(&mapDate, "map-date", "", "date column for --bank others")
	cmd.Flags().StringVar(&mapDescription, "map-description", "", "description column for --bank others")
	cmd.Flags().StringVar(&mapAmount, "map-amount", "", "amount column for --bank others")
	cmd.Flags().StringVar(&mapType, "map-type", "", "debit/credit column for --bank others")
	cmd.Flags().StringVar(&mapBank, "map-bank", "", "bank name column for --bank others")

	return cmd
}
