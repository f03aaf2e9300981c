package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
)

func newIncomeCommand(configPath *string) *cobra.Command {
	var tabRef string

	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage a tab's monthly income",
	}

	setCmd := &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the monthly income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(tabRef)
			if err != nil {
				return err
			}
			amount := ledger.ParseAmount(args[0])
			if err := e.ledgers.SetIncome(tabID, amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Income set to %s%s\n", e.cfg.Display.CurrencySymbol, amount)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&tabRef, "tab", "", tabFlagUsage())
	cmd.AddCommand(setCmd)
	return cmd
}
