// Package ledger owns all mutation of a tab's budget/expense record and the
// recomputation of its derived summary.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/id"
	"github.com/budgetbook-dev/budgetbook/internal/model"
	"github.com/budgetbook-dev/budgetbook/internal/store"
)

var (
	ErrDuplicateCategory = errors.New("budget category already exists")
	ErrNotFound          = errors.New("expense not found")
	ErrMissingField      = errors.New("category is required")
)

// Service provides budget ledger operations over the key-value store. Every
// mutation recomputes the summary before persisting, so a stored ledger is
// never observed with a stale aggregate.
type Service struct {
	store *store.Store
}

// NewService creates a budget ledger Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// ExpenseParams holds the fields for a new expense. A zero Date means today.
type ExpenseParams struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

// GetOrCreate returns the tab's ledger, initializing and persisting the
// default-empty one on first access.
func (s *Service) GetOrCreate(tabID string) (*model.Ledger, error) {
	led := model.NewLedger()
	ok, err := s.store.Get(model.LedgerKey(tabID), led)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := s.save(tabID, led); err != nil {
			return nil, err
		}
	}
	return led, nil
}

// Get is the read accessor for consumers; it shares GetOrCreate's lazy
// initialization so a fresh tab always reads as the default-empty ledger.
func (s *Service) Get(tabID string) (*model.Ledger, error) {
	return s.GetOrCreate(tabID)
}

// SetIncome overwrites the tab's income.
func (s *Service) SetIncome(tabID string, amount decimal.Decimal) error {
	led, err := s.GetOrCreate(tabID)
	if err != nil {
		return err
	}
	led.Income = amount
	return s.save(tabID, led)
}

// AddBudgetCategory registers a new category with a budget ceiling. Negative
// amounts clamp to zero.
func (s *Service) AddBudgetCategory(tabID, name string, amount decimal.Decimal) error {
	if name == "" {
		return ErrMissingField
	}
	led, err := s.GetOrCreate(tabID)
	if err != nil {
		return err
	}
	if led.Budgets.Has(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	led.Budgets.Set(name, clampAmount(amount))
	return s.save(tabID, led)
}

// SetBudgetAmount overwrites a category's budget, creating the category when
// it does not exist yet.
func (s *Service) SetBudgetAmount(tabID, name string, amount decimal.Decimal) error {
	if name == "" {
		return ErrMissingField
	}
	led, err := s.GetOrCreate(tabID)
	if err != nil {
		return err
	}
	led.Budgets.Set(name, clampAmount(amount))
	return s.save(tabID, led)
}

// AddExpense appends a new expense. The budget guard runs first: when the
// category would overrun its budget and override is false, the report is
// returned and the ledger stays untouched. A confirmed caller re-invokes
// with override set.
func (s *Service) AddExpense(tabID string, p ExpenseParams, override bool) (*model.Expense, *Overage, error) {
	if p.Category == "" {
		return nil, nil, ErrMissingField
	}
	led, err := s.GetOrCreate(tabID)
	if err != nil {
		return nil, nil, err
	}

	if ov := CheckBudget(led, p.Category, p.Amount, ""); ov != nil && !override {
		return nil, ov, nil
	}

	date := p.Date
	if date.IsZero() {
		date = time.Now()
	}
	exp := model.Expense{
		ID:          id.NewExpenseID(time.Now()),
		Amount:      p.Amount,
		Category:    p.Category,
		Description: p.Description,
		Date:        date.Format(model.DateFormat),
	}
	led.Expenses = append(led.Expenses, exp)
	if err := s.save(tabID, led); err != nil {
		return nil, nil, err
	}
	return &exp, nil, nil
}

// UpdateExpenseField updates a single field of an existing expense. Amounts
// coerce through ParseAmount; a category change passes the budget guard with
// the expense's own amount excluded from the current total. Description and
// date update unconditionally.
func (s *Service) UpdateExpenseField(tabID, expenseID, field, value string, override bool) (*Overage, error) {
	led, err := s.GetOrCreate(tabID)
	if err != nil {
		return nil, err
	}
	i, ok := led.FindExpense(expenseID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, expenseID)
	}

	switch field {
	case "amount":
		led.Expenses[i].Amount = ParseAmount(value)
	case "category":
		if ov := CheckBudget(led, value, led.Expenses[i].Amount, expenseID); ov != nil && !override {
			return ov, nil
		}
		led.Expenses[i].Category = value
	case "description":
		led.Expenses[i].Description = value
	case "date":
		led.Expenses[i].Date = value
	default:
		return nil, fmt.Errorf("unknown expense field %q", field)
	}
	return nil, s.save(tabID, led)
}

// DeleteExpense removes an expense. Unknown IDs are a no-op, so duplicate
// deletes are harmless.
func (s *Service) DeleteExpense(tabID, expenseID string) error {
	led, err := s.GetOrCreate(tabID)
	if err != nil {
		return err
	}
	kept := led.Expenses[:0]
	for _, e := range led.Expenses {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	led.Expenses = kept
	return s.save(tabID, led)
}

// save recomputes the summary and persists the ledger as one logical unit.
func (s *Service) save(tabID string, led *model.Ledger) error {
	Recompute(led)
	return s.store.Set(model.LedgerKey(tabID), led)
}

func clampAmount(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// ParseAmount converts user input to an amount. Anything unparseable
// coerces to zero rather than erroring.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
