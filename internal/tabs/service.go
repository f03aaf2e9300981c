// Package tabs manages the ordered collection of monthly budgeting tabs.
package tabs

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/budgetbook-dev/budgetbook/internal/id"
	"github.com/budgetbook-dev/budgetbook/internal/model"
	"github.com/budgetbook-dev/budgetbook/internal/store"
)

var (
	ErrDuplicateTab = errors.New("tab already exists for this month and year")
	ErrInvalidYear  = errors.New("year must be between 2000 and 2100")
	ErrInvalidMonth = errors.New("month must be a canonical month name")
	ErrMissingField = errors.New("month and year are required")
)

// Service provides tab registry operations over the key-value store.
type Service struct {
	store *store.Store
}

// NewService creates a tab registry Service.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// List returns all tabs sorted ascending by (year, calendar month).
func (s *Service) List() ([]model.Tab, error) {
	saved, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(saved, func(i, j int) bool {
		return model.CompareMonthYear(saved[i].MonthYear, saved[j].MonthYear) < 0
	})
	return saved, nil
}

// Create validates and registers a new tab. The tab's ledger is not created
// here; it initializes lazily on first access.
func (s *Service) Create(month string, year int) (model.Tab, error) {
	if month == "" || year == 0 {
		return model.Tab{}, ErrMissingField
	}
	if year < model.MinYear || year > model.MaxYear {
		return model.Tab{}, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	if _, ok := model.MonthIndex(month); !ok {
		return model.Tab{}, fmt.Errorf("%w: got %q", ErrInvalidMonth, month)
	}

	monthYear := model.FormatMonthYear(month, year)
	saved, err := s.load()
	if err != nil {
		return model.Tab{}, err
	}
	for _, t := range saved {
		if t.MonthYear == monthYear {
			return model.Tab{}, fmt.Errorf("%w: %s", ErrDuplicateTab, monthYear)
		}
	}

	tab := model.Tab{
		ID:        id.NewTabID(time.Now()),
		MonthYear: monthYear,
	}
	saved = append(saved, tab)
	if err := s.store.Set(model.DatesKey, saved); err != nil {
		return model.Tab{}, err
	}
	return tab, nil
}

// Delete removes a tab and its owned ledger. Unknown IDs are a no-op.
func (s *Service) Delete(tabID string) error {
	saved, err := s.load()
	if err != nil {
		return err
	}
	kept := saved[:0]
	for _, t := range saved {
		if t.ID != tabID {
			kept = append(kept, t)
		}
	}
	if err := s.store.Set(model.DatesKey, kept); err != nil {
		return err
	}
	// Cascade to the tab's ledger blob.
	return s.store.Delete(model.LedgerKey(tabID))
}

// Get returns the tab with the given ID.
func (s *Service) Get(tabID string) (model.Tab, bool, error) {
	saved, err := s.load()
	if err != nil {
		return model.Tab{}, false, err
	}
	for _, t := range saved {
		if t.ID == tabID {
			return t, true, nil
		}
	}
	return model.Tab{}, false, nil
}

// GetByMonthYear returns the tab labeled with the given month-year.
func (s *Service) GetByMonthYear(monthYear string) (model.Tab, bool, error) {
	saved, err := s.load()
	if err != nil {
		return model.Tab{}, false, err
	}
	for _, t := range saved {
		if t.MonthYear == monthYear {
			return t, true, nil
		}
	}
	return model.Tab{}, false, nil
}

// SetActive records the selected tab. Selection is a display default only;
// every registry and ledger operation still takes an explicit tab ID.
func (s *Service) SetActive(tabID string) error {
	return s.store.Set(model.ActiveTabKey, id.TabSuffix(tabID))
}

// Active returns the selected tab's ID, or "" when none is recorded.
func (s *Service) Active() (string, error) {
	var suffix string
	ok, err := s.store.Get(model.ActiveTabKey, &suffix)
	if err != nil || !ok {
		return "", err
	}
	return id.TabFromSuffix(suffix), nil
}

func (s *Service) load() ([]model.Tab, error) {
	var saved []model.Tab
	if _, err := s.store.Get(model.DatesKey, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}
