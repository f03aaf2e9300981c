package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
	"github.com/budgetbook-dev/budgetbook/internal/model"
	"github.com/budgetbook-dev/budgetbook/internal/report"
)

func newExpenseCommand(configPath *string) *cobra.Command {
	var tabRef string

	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Log and edit expenses",
	}

	cmd.PersistentFlags().StringVar(&tabRef, "tab", "", tabFlagUsage())
	cmd.AddCommand(newExpenseAddCommand(configPath, &tabRef))
	cmd.AddCommand(newExpenseEditCommand(configPath, &tabRef))
	cmd.AddCommand(newExpenseDeleteCommand(configPath, &tabRef))
	cmd.AddCommand(newExpenseListCommand(configPath, &tabRef))
	return cmd
}

func newExpenseAddCommand(configPath, tabRef *string) *cobra.Command {
	var amountStr string
	var category string
	var description string
	var dateStr string
	var yes bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(*tabRef)
			if err != nil {
				return err
			}

			var date time.Time
			if dateStr != "" {
				date, err = time.Parse(model.DateFormat, dateStr)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateStr)
				}
			}

			led, err := e.ledgers.Get(tabID)
			if err != nil {
				return err
			}
			printCategoryHint(cmd, led, category)

			params := ledger.ExpenseParams{
				Amount:      ledger.ParseAmount(amountStr),
				Category:    category,
				Description: description,
				Date:        date,
			}

			exp, ov, err := e.ledgers.AddExpense(tabID, params, yes)
			if err != nil {
				return err
			}
			if ov != nil {
				if !confirmOverage(cmd, ov, e.cfg.Display.CurrencySymbol) {
					fmt.Fprintln(cmd.OutOrStdout(), "Expense not added.")
					return nil
				}
				exp, _, err = e.ledgers.AddExpense(tabID, params, true)
				if err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added expense %s: %s%s %s on %s\n",
				exp.ID, e.cfg.Display.CurrencySymbol, exp.Amount, exp.Category, exp.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&amountStr, "amount", "", "expense amount (required)")
	cmd.Flags().StringVar(&category, "category", "", "expense category (required)")
	cmd.Flags().StringVar(&description, "description", "", "what the expense was for")
	cmd.Flags().StringVar(&dateStr, "date", "", "expense date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "proceed past budget warnings without prompting")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newExpenseEditCommand(configPath, tabRef *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "edit <expense-id> <field> <value>",
		Short: "Update one field of an expense (amount, category, description, date)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(*tabRef)
			if err != nil {
				return err
			}

			expenseID, field, value := args[0], args[1], args[2]
			ov, err := e.ledgers.UpdateExpenseField(tabID, expenseID, field, value, yes)
			if err != nil {
				return err
			}
			if ov != nil {
				if !confirmOverage(cmd, ov, e.cfg.Display.CurrencySymbol) {
					fmt.Fprintln(cmd.OutOrStdout(), "Expense unchanged.")
					return nil
				}
				if _, err := e.ledgers.UpdateExpenseField(tabID, expenseID, field, value, true); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s of %s\n", field, expenseID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "proceed past budget warnings without prompting")
	return cmd
}

func newExpenseDeleteCommand(configPath, tabRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <expense-id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(*tabRef)
			if err != nil {
				return err
			}
			if err := e.ledgers.DeleteExpense(tabID, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newExpenseListCommand(configPath, tabRef *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(*configPath)
			if err != nil {
				return err
			}
			defer e.close()

			tabID, err := e.resolveTab(*tabRef)
			if err != nil {
				return err
			}
			led, err := e.ledgers.Get(tabID)
			if err != nil {
				return err
			}
			report.RenderExpenses(cmd.OutOrStdout(), led, e.cfg.Display.CurrencySymbol)
			return nil
		},
	}
}

// printCategoryHint suggests the closest budget category when the given one
// is not budgeted. Orphan categories stay legal; this is a typo net only.
func printCategoryHint(cmd *cobra.Command, led *model.Ledger, category string) {
	if category == "" || led.Budgets.Has(category) {
		return
	}
	ranks := fuzzy.RankFindNormalizedFold(category, led.Budgets.Keys())
	if len(ranks) == 0 {
		return
	}
	sort.Sort(ranks)
	fmt.Fprintf(cmd.OutOrStdout(), "Note: no budget category %q (closest match: %q)\n",
		category, ranks[0].Target)
}
