// Package report exposes the read-only derived views consumed by display
// and charting: summary totals, per-day per-category groupings, and
// chart-ready series. Views are recomputed on demand and never cached.
package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
	"github.com/budgetbook-dev/budgetbook/internal/model"
)

// Service derives views from ledgers.
type Service struct {
	ledgers *ledger.Service
}

// NewService creates a report Service.
func NewService(ledgers *ledger.Service) *Service {
	return &Service{ledgers: ledgers}
}

// Summary returns the tab's aggregate totals, freshly recomputed.
func (s *Service) Summary(tabID string) (model.Summary, error) {
	led, err := s.ledgers.Get(tabID)
	if err != nil {
		return model.Summary{}, err
	}
	ledger.Recompute(led)
	return led.Summary, nil
}

// ExpensesByDate groups expense amounts by calendar date, then category.
func (s *Service) ExpensesByDate(tabID string) (map[string]map[string]decimal.Decimal, error) {
	led, err := s.ledgers.Get(tabID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string]map[string]decimal.Decimal)
	for _, e := range led.Expenses {
		byCat := grouped[e.Date]
		if byCat == nil {
			byCat = make(map[string]decimal.Decimal)
			grouped[e.Date] = byCat
		}
		byCat[e.Category] = byCat[e.Category].Add(e.Amount)
	}
	return grouped, nil
}

// Dataset is one category's series across the Labels of a DailySeries.
type Dataset struct {
	Label string
	Data  []decimal.Decimal
	Color string
}

// DailySeries is the stacked-bar shape a time-series chart consumes: sorted
// date labels and one zero-filled dataset per category.
type DailySeries struct {
	Labels   []string
	Datasets []Dataset
}

// DailySeries builds the per-day chart series for a tab. Categories appear
// in first-expense order; dates ascending.
func (s *Service) DailySeries(tabID string) (DailySeries, error) {
	led, err := s.ledgers.Get(tabID)
	if err != nil {
		return DailySeries{}, err
	}

	grouped := make(map[string]map[string]decimal.Decimal)
	var categories []string
	seen := make(map[string]bool)
	for _, e := range led.Expenses {
		byCat := grouped[e.Date]
		if byCat == nil {
			byCat = make(map[string]decimal.Decimal)
			grouped[e.Date] = byCat
		}
		byCat[e.Category] = byCat[e.Category].Add(e.Amount)
		if !seen[e.Category] {
			seen[e.Category] = true
			categories = append(categories, e.Category)
		}
	}

	labels := make([]string, 0, len(grouped))
	for date := range grouped {
		labels = append(labels, date)
	}
	sort.Strings(labels)

	series := DailySeries{Labels: labels}
	for i, cat := range categories {
		data := make([]decimal.Decimal, len(labels))
		for j, date := range labels {
			data[j] = grouped[date][cat] // zero when the day has no spend
		}
		series.Datasets = append(series.Datasets, Dataset{
			Label: cat,
			Data:  data,
			Color: seriesColor(i),
		})
	}
	return series, nil
}

// RemainingIncome is the summary-card bottom line: income minus total spend.
func RemainingIncome(led *model.Ledger) decimal.Decimal {
	return led.Income.Sub(led.Summary.Total)
}

// seriesColor spreads dataset hues around the wheel.
func seriesColor(index int) string {
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", index*100)
}
