// Package dupguard checks candidate transactions against already-imported
// records so the user can deselect presumed duplicates before confirming an
// import.
package dupguard

import (
	"context"

	"kiyotrack/struk-csv/internal/logging"

	"github.com/shopspring/decimal"
)

// TransactionStore answers whether a matching transaction already exists.
// The production implementation is the local bbolt ledger; tests use a mock.
type TransactionStore interface {
	// Exists reports whether a non-deleted transaction with the exact
	// (date, amount, accountID) triple has been recorded.
	Exists(ctx context.Context, date string, amount decimal.Decimal, accountID string) (bool, error)
}

// Guard wraps a TransactionStore with the pipeline's fail-open policy.
type Guard struct {
	store  TransactionStore
	logger logging.Logger
}

// New creates a Guard. A nil logger falls back to the package default.
func New(store TransactionStore, logger logging.Logger) *Guard {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Guard{store: store, logger: logger}
}

// IsDuplicate checks the candidate triple against the store. A store
// failure fails OPEN: the candidate is treated as not a duplicate so an
// unreachable ledger never blocks an import. This trades strict dedupe for
// availability; the miss is logged for later review.
func (g *Guard) IsDuplicate(ctx context.Context, date string, amount decimal.Decimal, accountID string) bool {
	if g.store == nil {
		return false
	}

	exists, err := g.store.Exists(ctx, date, amount, accountID)
	if err != nil {
		g.logger.WithError(err).WithFields(
			logging.Field{Key: "date", Value: date},
			logging.Field{Key: logging.FieldAmount, Value: amount.String()},
			logging.Field{Key: logging.FieldAccount, Value: accountID},
		).Warn("Duplicate check failed, treating as not duplicate")
		return false
	}
	return exists
}
