package dupguard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kiyotrack/struk-csv/internal/models"
	"kiyotrack/struk-csv/internal/parsererror"

	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"
)

const ledgerBucket = "imported"

// BoltLedger records imported transactions in a local bbolt file so later
// imports can detect rows that were already brought in. Entries are keyed
// by the (date, amount, accountID) triple the duplicate check matches on.
type BoltLedger struct {
	db *bbolt.DB
}

// OpenLedger opens (or creates) the ledger file.
func OpenLedger(path string) (*BoltLedger, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &parsererror.StoreError{Op: "open", Err: err}
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(ledgerBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, &parsererror.StoreError{Op: "init", Err: err}
	}

	return &BoltLedger{db: db}, nil
}

// Exists reports whether the triple has been recorded.
func (l *BoltLedger) Exists(ctx context.Context, date string, amount decimal.Decimal, accountID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &parsererror.StoreError{Op: "lookup", Err: err}
	}

	var found bool
	err := l.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(ledgerBucket))
		found = bucket.Get(ledgerKey(date, amount, accountID)) != nil
		return nil
	})
	if err != nil {
		return false, &parsererror.StoreError{Op: "lookup", Err: err}
	}
	return found, nil
}

// Record marks a candidate as imported.
func (l *BoltLedger) Record(ctx context.Context, candidate models.CandidateTransaction) error {
	if err := ctx.Err(); err != nil {
		return &parsererror.StoreError{Op: "record", Err: err}
	}

	err := l.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(ledgerBucket))
		key := ledgerKey(candidate.Date, candidate.Amount, candidate.AccountID)
		return bucket.Put(key, []byte(candidate.Description))
	})
	if err != nil {
		return &parsererror.StoreError{Op: "record", Err: err}
	}
	return nil
}

// Close closes the underlying database.
func (l *BoltLedger) Close() error {
	return l.db.Close()
}

func ledgerKey(date string, amount decimal.Decimal, accountID string) []byte {
	return []byte(strings.Join([]string{date, amount.String(), accountID}, "|"))
}

var _ TransactionStore = (*BoltLedger)(nil)

// String implements fmt.Stringer for diagnostics.
func (l *BoltLedger) String() string {
	return fmt.Sprintf("BoltLedger(%s)", l.db.Path())
}
