package id

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// tabPrefix separates tab IDs from bare expense IDs in storage keys.
const tabPrefix = "tab-"

var (
	mu        sync.Mutex
	lastMilli int64
)

// nextMilli returns a unix-millisecond stamp that is strictly increasing
// within the process, so IDs minted in the same millisecond never collide.
func nextMilli(now time.Time) int64 {
	mu.Lock()
	defer mu.Unlock()
	ms := now.UnixMilli()
	if ms <= lastMilli {
		ms = lastMilli + 1
	}
	lastMilli = ms
	return ms
}

// NewTabID returns a tab ID like "tab-1736160000000".
func NewTabID(now time.Time) string {
	return tabPrefix + strconv.FormatInt(nextMilli(now), 10)
}

// NewExpenseID returns an expense ID like "1736160000000".
func NewExpenseID(now time.Time) string {
	return strconv.FormatInt(nextMilli(now), 10)
}

// TabSuffix strips the tab prefix: "tab-123" -> "123". IDs without the
// prefix pass through unchanged.
func TabSuffix(tabID string) string {
	return strings.TrimPrefix(tabID, tabPrefix)
}

// TabFromSuffix rebuilds a full tab ID from a stored suffix.
func TabFromSuffix(suffix string) string {
	if suffix == "" {
		return ""
	}
	return tabPrefix + suffix
}
