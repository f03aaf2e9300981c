package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// RenderSummary writes the summary card for a ledger: total spend, each
// category against its budget, and remaining income. Budgeted categories
// come first in their defined order, then orphan categories alphabetically.
func RenderSummary(w io.Writer, led *model.Ledger, symbol string) {
	fmt.Fprintf(w, "Total Expenses: %s%s\n", symbol, led.Summary.Total)
	for _, cat := range summaryCategories(led) {
		budget, _ := led.Budgets.Get(cat)
		fmt.Fprintf(w, "%s Expenses: %s%s / %s%s Budget\n",
			cat, symbol, led.Summary.Category[cat], symbol, budget)
	}
	fmt.Fprintf(w, "Remaining Income: %s%s\n", symbol, RemainingIncome(led))
}

// RenderExpenses writes the expense list, most recent date first.
func RenderExpenses(w io.Writer, led *model.Ledger, symbol string) {
	expenses := make([]model.Expense, len(led.Expenses))
	copy(expenses, led.Expenses)
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})
	for _, e := range expenses {
		fmt.Fprintf(w, "%s  %-12s  %s%s  %s  [%s]\n",
			e.Date, e.Category, symbol, e.Amount, e.Description, e.ID)
	}
}

func summaryCategories(led *model.Ledger) []string {
	cats := led.Budgets.Keys()
	inBudget := make(map[string]bool, len(cats))
	for _, c := range cats {
		inBudget[c] = true
	}
	var orphans []string
	for c := range led.Summary.Category {
		if !inBudget[c] {
			orphans = append(orphans, c)
		}
	}
	sort.Strings(orphans)
	return append(cats, orphans...)
}
