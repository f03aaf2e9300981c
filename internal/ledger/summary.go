package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// Recompute rebuilds the ledger's derived summary from scratch. The category
// set is the union of budget categories and every category appearing on an
// expense, so expenses tagged with a deleted or never-created category still
// show up. Pure over the ledger's income/budgets/expenses.
func Recompute(led *model.Ledger) {
	sum := model.Summary{
		Total:    decimal.Zero,
		Category: make(map[string]decimal.Decimal, led.Budgets.Len()),
	}
	for _, c := range led.Budgets.Keys() {
		sum.Category[c] = decimal.Zero
	}
	for _, e := range led.Expenses {
		sum.Total = sum.Total.Add(e.Amount)
		sum.Category[e.Category] = sum.Category[e.Category].Add(e.Amount)
	}
	led.Summary = sum
}
