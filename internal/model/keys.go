package model

// Storage keys for the persistent key-value store.
const (
	// DatesKey holds the JSON array of saved tabs.
	DatesKey = "dates"
	// ActiveTabKey holds the currently selected tab's ID suffix.
	ActiveTabKey = "activeTab"
)

// LedgerKey returns the storage key for a tab's ledger blob.
func LedgerKey(tabID string) string {
	return "expenses-" + tabID
}
