package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Stored blobs carry amounts as bare JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateFormat is the calendar-date layout used on expenses.
const DateFormat = "2006-01-02"

// Tab is a user-created monthly budgeting period.
type Tab struct {
	ID        string `json:"tabId"`
	MonthYear string `json:"monthYear"`
}

// Expense is a single logged expense inside a ledger.
type Expense struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // DateFormat
}

// Summary is the derived aggregate over a ledger's expenses. It is rebuilt
// after every mutation and never edited directly.
type Summary struct {
	Total    decimal.Decimal            `json:"total"`
	Category map[string]decimal.Decimal `json:"category"`
}

// Ledger is the budget/expense record owned by one tab. The JSON field names
// match the stored blob layout ("budget", "resume").
type Ledger struct {
	Income   decimal.Decimal `json:"income"`
	Budgets  BudgetMap       `json:"budget"`
	Expenses []Expense       `json:"expenses"`
	Summary  Summary         `json:"resume"`
}

// NewLedger returns the default-empty ledger a tab starts with.
func NewLedger() *Ledger {
	return &Ledger{
		Income:   decimal.Zero,
		Expenses: []Expense{},
		Summary: Summary{
			Total:    decimal.Zero,
			Category: map[string]decimal.Decimal{},
		},
	}
}

// FindExpense returns the index of the expense with the given ID.
func (l *Ledger) FindExpense(id string) (int, bool) {
	for i, e := range l.Expenses {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}
