package dupguard

import (
	"context"

	"github.com/shopspring/decimal"
)

// MockStore is a TransactionStore for tests: seed Existing with
// "date|amount|accountID" keys, or set Err to simulate a store failure.
type MockStore struct {
	Existing map[string]bool
	Err      error
	Calls    int
}

// Exists implements TransactionStore.
func (m *MockStore) Exists(ctx context.Context, date string, amount decimal.Decimal, accountID string) (bool, error) {
	m.Calls++
	if m.Err != nil {
		return false, m.Err
	}
	return m.Existing[string(ledgerKey(date, amount, accountID))], nil
}
