package models

import "github.com/shopspring/decimal"

// TransactionType is the direction of a candidate transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ColumnMap holds the resolved column indices of a statement sheet.
// An index of -1 means the column was not found; downstream code treats a
// missing column as "field unavailable", never as an error.
type ColumnMap struct {
	Date        int
	Description int
	Debit       int
	Credit      int
	// Amount is a single combined mutation column carrying a CR/DB marker,
	// used by banks that do not split debit and credit.
	Amount int
	// Header is the row index of the detected header row.
	Header int
}

// NewColumnMap returns a ColumnMap with every index unset.
func NewColumnMap() ColumnMap {
	return ColumnMap{Date: -1, Description: -1, Debit: -1, Credit: -1, Amount: -1, Header: 0}
}

// HasSplitAmounts reports whether the sheet carries separate debit and credit
// columns.
func (c ColumnMap) HasSplitAmounts() bool {
	return c.Debit >= 0 && c.Credit >= 0
}

// CandidateTransaction is one reviewable transaction produced by the
// classifier. Invariants: Amount > 0 and Date is a valid ISO date; rows that
// cannot satisfy them are dropped before a candidate is ever created.
type CandidateTransaction struct {
	Date        string          `csv:"Date" json:"date"`
	Description string          `csv:"Description" json:"description"`
	Amount      decimal.Decimal `csv:"Amount" json:"amount"`
	Type        TransactionType `csv:"Type" json:"type"`
	Category    string          `csv:"Category" json:"category"`
	AccountID   string          `csv:"Account" json:"account_id,omitempty"`
	// Raw preserves the original spreadsheet row for audit and debugging.
	Raw []string `csv:"-" json:"-"`
}

// Account is a financial account known to the surrounding application,
// used only for account suggestion.
type Account struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}
