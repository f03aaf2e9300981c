package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// Overage reports that committing an amount would push a category past its
// budget. The guard only reports; whether to proceed anyway is the caller's
// decision, taken by re-running the mutation with the override flag.
type Overage struct {
	Category     string
	Budget       decimal.Decimal
	CurrentTotal decimal.Decimal // category spend excluding the edited expense
	Amount       decimal.Decimal // the candidate amount being committed
	Over         decimal.Decimal // CurrentTotal + Amount - Budget
}

// CheckBudget computes the category's running total, excluding the expense
// with excludeExpenseID (pass "" for none), and returns an Overage when the
// candidate amount would exceed the category's budget. A zero or unset
// budget never trips the guard.
func CheckBudget(led *model.Ledger, category string, amount decimal.Decimal, excludeExpenseID string) *Overage {
	budget, ok := led.Budgets.Get(category)
	if !ok || budget.IsZero() {
		return nil
	}

	current := decimal.Zero
	for _, e := range led.Expenses {
		if e.Category != category || e.ID == excludeExpenseID {
			continue
		}
		current = current.Add(e.Amount)
	}

	if current.Add(amount).LessThanOrEqual(budget) {
		return nil
	}
	return &Overage{
		Category:     category,
		Budget:       budget,
		CurrentTotal: current,
		Amount:       amount,
		Over:         current.Add(amount).Sub(budget),
	}
}
