package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/buildinfo"
	"github.com/budgetbook-dev/budgetbook/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "budgetbook",
		Short:   "Monthly budgets, expenses, and summaries",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to budgetbook.yaml")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newTabCommand(&configPath))
	rootCmd.AddCommand(newIncomeCommand(&configPath))
	rootCmd.AddCommand(newBudgetCommand(&configPath))
	rootCmd.AddCommand(newExpenseCommand(&configPath))
	rootCmd.AddCommand(newReportCommand(&configPath))

	return rootCmd
}
