package dupguard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"kiyotrack/struk-csv/internal/logging"
	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardIsDuplicate(t *testing.T) {
	store := &MockStore{Existing: map[string]bool{
		"2025-05-09|500000|acc-1": true,
	}}
	guard := New(store, logging.NewMockLogger())

	assert.True(t, guard.IsDuplicate(context.Background(), "2025-05-09", decimal.NewFromInt(500000), "acc-1"))
	assert.False(t, guard.IsDuplicate(context.Background(), "2025-05-10", decimal.NewFromInt(500000), "acc-1"))
	assert.False(t, guard.IsDuplicate(context.Background(), "2025-05-09", decimal.NewFromInt(500000), "acc-2"))
}

func TestGuardFailsOpen(t *testing.T) {
	store := &MockStore{Err: errors.New("ledger unreachable")}
	mock := logging.NewMockLogger()
	guard := New(store, mock)

	// A store failure must never block an import: the candidate is treated
	// as new and the miss is logged.
	got := guard.IsDuplicate(context.Background(), "2025-05-09", decimal.NewFromInt(500000), "acc-1")
	assert.False(t, got)
	assert.True(t, mock.HasEntry("WARN", "Duplicate check failed, treating as not duplicate"))
}

func TestGuardNilStore(t *testing.T) {
	guard := New(nil, logging.NewMockLogger())
	assert.False(t, guard.IsDuplicate(context.Background(), "2025-05-09", decimal.NewFromInt(1), "acc-1"))
}

func TestBoltLedgerRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := OpenLedger(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, ledger.Close())
	}()

	ctx := context.Background()
	candidate := models.CandidateTransaction{
		Date:        "2025-05-09",
		Description: "Belanja harian",
		Amount:      decimal.NewFromInt(500000),
		Type:        models.TypeExpense,
		AccountID:   "acc-1",
	}

	exists, err := ledger.Exists(ctx, candidate.Date, candidate.Amount, candidate.AccountID)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, ledger.Record(ctx, candidate))

	exists, err = ledger.Exists(ctx, candidate.Date, candidate.Amount, candidate.AccountID)
	require.NoError(t, err)
	assert.True(t, exists)

	// The triple is exact: a different account is not a duplicate.
	exists, err = ledger.Exists(ctx, candidate.Date, candidate.Amount, "acc-2")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBoltLedgerCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := OpenLedger(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, ledger.Close())
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ledger.Exists(ctx, "2025-05-09", decimal.NewFromInt(1), "acc-1")
	require.Error(t, err)
	var storeErr *parsererror.StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestGuardWithBoltLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := OpenLedger(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, ledger.Close())
	}()

	guard := New(ledger, logging.NewMockLogger())
	ctx := context.Background()
	amount := decimal.NewFromInt(75000)

	assert.False(t, guard.IsDuplicate(ctx, "2025-05-09", amount, "acc-1"))
	require.NoError(t, ledger.Record(ctx, models.CandidateTransaction{
		Date: "2025-05-09", Description: "x", Amount: amount, AccountID: "acc-1",
	}))
	assert.True(t, guard.IsDuplicate(ctx, "2025-05-09", amount, "acc-1"))
}
