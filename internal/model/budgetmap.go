package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// BudgetMap maps category names to budget amounts while preserving the order
// categories were first added in, for stable listing and serialization.
type BudgetMap struct {
	keys []string
	vals map[string]decimal.Decimal
}

// Get returns the budget for a category.
func (m *BudgetMap) Get(name string) (decimal.Decimal, bool) {
	v, ok := m.vals[name]
	return v, ok
}

// Has reports whether a category exists.
func (m *BudgetMap) Has(name string) bool {
	_, ok := m.vals[name]
	return ok
}

// Set inserts or updates a category's budget. A new category goes to the end
// of the iteration order; an existing one keeps its position.
func (m *BudgetMap) Set(name string, amount decimal.Decimal) {
	if m.vals == nil {
		m.vals = make(map[string]decimal.Decimal)
	}
	if _, ok := m.vals[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.vals[name] = amount
}

// Keys returns the category names in insertion order.
func (m *BudgetMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of categories.
func (m *BudgetMap) Len() int {
	return len(m.keys)
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m BudgetMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the key order of the document.
func (m *BudgetMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("budget: expected object, got %v", tok)
	}

	m.keys = nil
	m.vals = make(map[string]decimal.Decimal)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("budget: expected string key, got %v", kt)
		}
		var amount decimal.Decimal
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("budget %q: %w", key, err)
		}
		m.Set(key, amount)
	}
	_, err = dec.Token() // closing brace
	return err
}
