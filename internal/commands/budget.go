package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
)

func newBudgetCommand(configPath *string) *cobra.Command {
	var tabRef string

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage a tab's budget categories",
	}

	addCmd := &cobra.Command{
		Use:   "add <category> <amount>",
		Short: "Add a new budget category",
		Args:  cobra.ExactArgs(2),
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
			amount := ledger.ParseAmount(args[1])
			if err := e.ledgers.AddBudgetCategory(tabID, args[0], amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s with budget %s%s\n",
				args[0], e.cfg.Display.CurrencySymbol, amount)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a category's budget, creating it if needed",
		Args:  cobra.ExactArgs(2),
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
			amount := ledger.ParseAmount(args[1])
			if err := e.ledgers.SetBudgetAmount(tabID, args[0], amount); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s is now %s%s\n",
				args[0], e.cfg.Display.CurrencySymbol, amount)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List budget categories with spend against budget",
		Args:  cobra.NoArgs,
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
			led, err := e.ledgers.Get(tabID)
			if err != nil {
				return err
			}
			symbol := e.cfg.Display.CurrencySymbol
			for _, cat := range led.Budgets.Keys() {
				budget, _ := led.Budgets.Get(cat)
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s%s spent of %s%s\n",
					cat, symbol, led.Summary.Category[cat], symbol, budget)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&tabRef, "tab", "", tabFlagUsage())
	cmd.AddCommand(addCmd)
	cmd.AddCommand(setCmd)
	cmd.AddCommand(listCmd)
	return cmd
}
