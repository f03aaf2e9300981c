package id

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTabID(t *testing.T) {
	now := time.UnixMilli(1736160000000)
	got := NewTabID(now)
	assert.True(t, strings.HasPrefix(got, "tab-"))
}

func TestIDsAreUniqueWithinAMillisecond(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewExpenseID(now)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestTabSuffixRoundTrip(t *testing.T) {
	assert.Equal(t, "1736160000000", TabSuffix("tab-1736160000000"))
	assert.Equal(t, "tab-1736160000000", TabFromSuffix("1736160000000"))
	assert.Equal(t, "", TabFromSuffix(""))
	// IDs without the prefix pass through.
	assert.Equal(t, "xyz", TabSuffix("xyz"))
}
