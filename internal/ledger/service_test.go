package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetbook-dev/budgetbook/internal/model"
	"github.com/budgetbook-dev/budgetbook/internal/store"
)

const testTab = "tab-1736160000000"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st), st
}

// checkSummary asserts the summary invariant: total equals the sum of all
// expense amounts, and each category's entry equals the sum of its own.
func checkSummary(t *testing.T, led *model.Ledger) {
	t.Helper()
	total := decimal.Zero
	byCat := make(map[string]decimal.Decimal)
	for _, e := range led.Expenses {
		total = total.Add(e.Amount)
		byCat[e.Category] = byCat[e.Category].Add(e.Amount)
	}
	assert.True(t, led.Summary.Total.Equal(total),
		"summary total %s != expense sum %s", led.Summary.Total, total)
	for cat, want := range byCat {
		assert.True(t, led.Summary.Category[cat].Equal(want),
			"category %s: summary %s != sum %s", cat, led.Summary.Category[cat], want)
	}
	for _, cat := range led.Budgets.Keys() {
		_, present := led.Summary.Category[cat]
		assert.True(t, present, "budgeted category %s missing from summary", cat)
	}
}

func TestGetOrCreateDefaults(t *testing.T) {
	svc, st := newTestService(t)

	led, err := svc.GetOrCreate(testTab)
	require.NoError(t, err)
	assert.True(t, led.Income.IsZero())
	assert.Empty(t, led.Expenses)

	// First access persists the default-empty ledger.
	stored := model.NewLedger()
	ok, err := st.Get(model.LedgerKey(testTab), stored)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetIncome(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.SetIncome(testTab, dec("2500")))
	led, err := svc.Get(testTab)
	require.NoError(t, err)
	assert.True(t, led.Income.Equal(dec("2500")))
}

func TestParseAmountCoercesToZero(t *testing.T) {
	assert.True(t, ParseAmount("12.5").Equal(dec("12.5")))
	assert.True(t, ParseAmount("garbage").IsZero())
	assert.True(t, ParseAmount("").IsZero())
}

func TestAddBudgetCategory(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddBudgetCategory(testTab, "Food", dec("100")))

	err := svc.AddBudgetCategory(testTab, "Food", dec("200"))
	require.ErrorIs(t, err, ErrDuplicateCategory)

	err = svc.AddBudgetCategory(testTab, "", dec("50"))
	require.ErrorIs(t, err, ErrMissingField)

	// Negative budgets clamp to zero.
	require.NoError(t, svc.AddBudgetCategory(testTab, "Misc", dec("-5")))
	led, err := svc.Get(testTab)
	require.NoError(t, err)
	v, ok := led.Budgets.Get("Misc")
	require.True(t, ok)
	assert.True(t, v.IsZero())

	// New budgeted categories show up in the summary at zero.
	assert.True(t, led.Summary.Category["Food"].IsZero())
}

func TestSetBudgetAmountCreatesWhenAbsent(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.SetBudgetAmount(testTab, "Rent", dec("900")))
	require.NoError(t, svc.SetBudgetAmount(testTab, "Rent", dec("950")))

	led, err := svc.Get(testTab)
	require.NoError(t, err)
	v, ok := led.Budgets.Get("Rent")
	require.True(t, ok)
	assert.True(t, v.Equal(dec("950")))
}

func TestAddExpense(t *testing.T) {
	svc, _ := newTestService(t)

	exp, ov, err := svc.AddExpense(testTab, ExpenseParams{
		Amount:      dec("12.30"),
		Category:    "Food",
		Description: "Groceries",
		Date:        time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
	}, false)
	require.NoError(t, err)
	require.Nil(t, ov)
	require.NotNil(t, exp)
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, "2025-01-06", exp.Date)

	led, err := svc.Get(testTab)
	require.NoError(t, err)
	require.Len(t, led.Expenses, 1)
	checkSummary(t, led)
}

func TestAddExpenseDefaultsDateToToday(t *testing.T) {
	svc, _ := newTestService(t)

	exp, _, err := svc.AddExpense(testTab, ExpenseParams{
		Amount:   dec("5"),
		Category: "Food",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(model.DateFormat), exp.Date)
}

func TestAddExpenseRequiresCategory(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("5")}, false)
	require.ErrorIs(t, err, ErrMissingField)
}

func TestOrphanCategoryStillCounted(t *testing.T) {
	svc, _ := newTestService(t)

	// No "Travel" budget exists.
	_, ov, err := svc.AddExpense(testTab, ExpenseParams{
		Amount:   dec("75"),
		Category: "Travel",
	}, false)
	require.NoError(t, err)
	assert.Nil(t, ov, "unbudgeted category never trips the guard")

	led, err := svc.Get(testTab)
	require.NoError(t, err)
	assert.True(t, led.Summary.Category["Travel"].Equal(dec("75")))
	checkSummary(t, led)
}

func TestGuardOverageOnAdd(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddBudgetCategory(testTab, "Food", dec("100")))
	_, _, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("80"), Category: "Food"}, false)
	require.NoError(t, err)

	before, err := svc.Get(testTab)
	require.NoError(t, err)

	// 80 spent of 100; another 30 overruns by 10.
	exp, ov, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("30"), Category: "Food"}, false)
	require.NoError(t, err)
	assert.Nil(t, exp)
	require.NotNil(t, ov)
	assert.True(t, ov.Over.Equal(dec("10")), "overage is %s", ov.Over)
	assert.True(t, ov.CurrentTotal.Equal(dec("80")))
	assert.True(t, ov.Budget.Equal(dec("100")))

	// Denial leaves the ledger exactly as before the attempt.
	after, err := svc.Get(testTab)
	require.NoError(t, err)
	assert.True(t, after.Summary.Total.Equal(before.Summary.Total))
	assert.Len(t, after.Expenses, len(before.Expenses))

	// Confirmation commits it.
	exp, ov, err = svc.AddExpense(testTab, ExpenseParams{Amount: dec("30"), Category: "Food"}, true)
	require.NoError(t, err)
	assert.Nil(t, ov)
	require.NotNil(t, exp)

	led, err := svc.Get(testTab)
	require.NoError(t, err)
	assert.True(t, led.Summary.Category["Food"].Equal(dec("110")))
	checkSummary(t, led)
}

func TestExactBudgetDoesNotTrip(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddBudgetCategory(testTab, "Food", dec("100")))
	_, ov, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("100"), Category: "Food"}, false)
	require.NoError(t, err)
	assert.Nil(t, ov, "spending exactly the budget is allowed")
}

func TestUpdateExpenseField(t *testing.T) {
	svc, _ := newTestService(t)

	exp, _, err := svc.AddExpense(testTab, ExpenseParams{
		Amount:      dec("10"),
		Category:    "Food",
		Description: "Lunch",
	}, false)
	require.NoError(t, err)

	_, err = svc.UpdateExpenseField(testTab, exp.ID, "description", "Dinner", false)
	require.NoError(t, err)

	_, err = svc.UpdateExpenseField(testTab, exp.ID, "date", "2025-02-01", false)
	require.NoError(t, err)

	// Amount input coerces; garbage becomes zero.
	_, err = svc.UpdateExpenseField(testTab, exp.ID, "amount", "25.50", false)
	require.NoError(t, err)

	led, err := svc.Get(testTab)
	require.NoError(t, err)
	i, ok := led.FindExpense(exp.ID)
	require.True(t, ok)
	assert.Equal(t, "Dinner", led.Expenses[i].Description)
	assert.Equal(t, "2025-02-01", led.Expenses[i].Date)
	assert.True(t, led.Expenses[i].Amount.Equal(dec("25.50")))
	checkSummary(t, led)

	_, err = svc.UpdateExpenseField(testTab, exp.ID, "amount", "junk", false)
	require.NoError(t, err)
	led, err = svc.Get(testTab)
	require.NoError(t, err)
	i, _ = led.FindExpense(exp.ID)
	assert.True(t, led.Expenses[i].Amount.IsZero())
}

func TestUpdateExpenseFieldNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateExpenseField(testTab, "nope", "description", "x", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateExpenseFieldUnknownField(t *testing.T) {
	svc, _ := newTestService(t)

	exp, _, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("1"), Category: "Food"}, false)
	require.NoError(t, err)

	_, err = svc.UpdateExpenseField(testTab, exp.ID, "color", "red", false)
	require.Error(t, err)
}

func TestCategoryChangeExcludesOwnAmount(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddBudgetCategory(testTab, "Food", dec("100")))
	exp, _, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("60"), Category: "Travel"}, false)
	require.NoError(t, err)
	_, _, err = svc.AddExpense(testTab, ExpenseParams{Amount: dec("50"), Category: "Food"}, false)
	require.NoError(t, err)

	// Moving the 60 into Food: 50 existing + 60 = 110 > 100, overage 10.
	ov, err := svc.UpdateExpenseField(testTab, exp.ID, "category", "Food", false)
	require.NoError(t, err)
	require.NotNil(t, ov)
	assert.True(t, ov.Over.Equal(dec("10")))

	// Rejection leaves the category unchanged.
	led, err := svc.Get(testTab)
	require.NoError(t, err)
	i, _ := led.FindExpense(exp.ID)
	assert.Equal(t, "Travel", led.Expenses[i].Category)

	// Override commits the move and the summary follows.
	ov, err = svc.UpdateExpenseField(testTab, exp.ID, "category", "Food", true)
	require.NoError(t, err)
	assert.Nil(t, ov)
	led, err = svc.Get(testTab)
	require.NoError(t, err)
	assert.True(t, led.Summary.Category["Food"].Equal(dec("110")))
	assert.True(t, led.Summary.Category["Travel"].IsZero())
	checkSummary(t, led)
}

func TestDeleteExpenseIdempotent(t *testing.T) {
	svc, _ := newTestService(t)

	exp, _, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("10"), Category: "Food"}, false)
	require.NoError(t, err)
	_, _, err = svc.AddExpense(testTab, ExpenseParams{Amount: dec("20"), Category: "Food"}, false)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(testTab, exp.ID))
	once, err := svc.Get(testTab)
	require.NoError(t, err)

	// A second delete of the same ID changes nothing.
	require.NoError(t, svc.DeleteExpense(testTab, exp.ID))
	twice, err := svc.Get(testTab)
	require.NoError(t, err)

	assert.Equal(t, len(once.Expenses), len(twice.Expenses))
	assert.True(t, once.Summary.Total.Equal(twice.Summary.Total))
	assert.True(t, twice.Summary.Total.Equal(dec("20")))
	checkSummary(t, twice)
}

// A mixed sequence of mutations keeps the summary invariant at every step.
func TestSummaryInvariantUnderMutationSequence(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.AddBudgetCategory(testTab, "Food", dec("500")))
	require.NoError(t, svc.AddBudgetCategory(testTab, "Rent", dec("1000")))

	assertInvariant := func() {
		led, err := svc.Get(testTab)
		require.NoError(t, err)
		checkSummary(t, led)
	}

	a, _, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("12.50"), Category: "Food"}, false)
	require.NoError(t, err)
	assertInvariant()

	b, _, err := svc.AddExpense(testTab, ExpenseParams{Amount: dec("900"), Category: "Rent"}, false)
	require.NoError(t, err)
	assertInvariant()

	_, _, err = svc.AddExpense(testTab, ExpenseParams{Amount: dec("3.25"), Category: "Coffee"}, false)
	require.NoError(t, err)
	assertInvariant()

	_, err = svc.UpdateExpenseField(testTab, a.ID, "amount", "20", false)
	require.NoError(t, err)
	assertInvariant()

	require.NoError(t, svc.DeleteExpense(testTab, b.ID))
	assertInvariant()

	_, err = svc.UpdateExpenseField(testTab, a.ID, "category", "Coffee", false)
	require.NoError(t, err)
	assertInvariant()
}

// Persist-and-reload reproduces the ledger field for field.
func TestLedgerRoundTripThroughStore(t *testing.T) {
	svc, st := newTestService(t)

	require.NoError(t, svc.SetIncome(testTab, dec("2000")))
	require.NoError(t, svc.AddBudgetCategory(testTab, "Food", dec("300")))
	_, _, err := svc.AddExpense(testTab, ExpenseParams{
		Amount:      dec("42.42"),
		Category:    "Food",
		Description: "Takeout",
		Date:        time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}, false)
	require.NoError(t, err)

	want, err := svc.Get(testTab)
	require.NoError(t, err)

	// Fresh service over the same store, as a process restart would see it.
	reloaded, err := NewService(st).Get(testTab)
	require.NoError(t, err)

	assert.True(t, reloaded.Income.Equal(want.Income))
	assert.Equal(t, want.Budgets.Keys(), reloaded.Budgets.Keys())
	require.Len(t, reloaded.Expenses, len(want.Expenses))
	for i := range want.Expenses {
		assert.Equal(t, want.Expenses[i].ID, reloaded.Expenses[i].ID)
		assert.True(t, reloaded.Expenses[i].Amount.Equal(want.Expenses[i].Amount))
		assert.Equal(t, want.Expenses[i].Category, reloaded.Expenses[i].Category)
		assert.Equal(t, want.Expenses[i].Description, reloaded.Expenses[i].Description)
		assert.Equal(t, want.Expenses[i].Date, reloaded.Expenses[i].Date)
	}
	assert.True(t, reloaded.Summary.Total.Equal(want.Summary.Total))
}
