package commands

import (
	"github.com/spf13/cobra"

	"github.com/pfennig/pfennig/internal/logger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pfennig",
		Short: "Track and categorize bank transactions from CSV exports",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(logger.WithContext(cmd.Context(), logger.New()))
		},
	}

	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newAssignCommand())
	rootCmd.AddCommand(newConfirmCommand())
	rootCmd.AddCommand(newBackfillCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newSummaryCommand())

	return rootCmd
}
