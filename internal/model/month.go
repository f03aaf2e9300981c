package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Year bounds accepted for a tab.
const (
	MinYear = 2000
	MaxYear = 2100
)

// MonthNames are the canonical month names used in tab labels, in calendar order.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the zero-based calendar index of a canonical month name.
func MonthIndex(name string) (int, bool) {
	for i, m := range MonthNames {
		if m == name {
			return i, true
		}
	}
	return 0, false
}

// FormatMonthYear builds a tab label like "January-2025".
func FormatMonthYear(month string, year int) string {
	return fmt.Sprintf("%s-%d", month, year)
}

// ParseMonthYear splits a tab label into its month name and year.
// It does not validate that the month is canonical or the year in range.
func ParseMonthYear(label string) (month string, year int, err error) {
	month, yearStr, ok := strings.Cut(label, "-")
	if !ok {
		return "", 0, fmt.Errorf("invalid month-year label: %q", label)
	}
	year, err = strconv.Atoi(yearStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid year in label %q: %w", label, err)
	}
	return month, year, nil
}

// CompareMonthYear orders two tab labels by (year, calendar month index)
// ascending. Labels that fail to parse sort last.
func CompareMonthYear(a, b string) int {
	am, ay, aerr := ParseMonthYear(a)
	bm, by, berr := ParseMonthYear(b)
	if aerr != nil || berr != nil {
		switch {
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		default:
			return strings.Compare(a, b)
		}
	}
	if ay != by {
		return ay - by
	}
	ai, _ := MonthIndex(am)
	bi, _ := MonthIndex(bm)
	return ai - bi
}
