// Package model defines the core types shared across the reconciliation pipeline.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single statement row after normalization.
type Transaction struct {
	Date            time.Time // Canonical calendar date (UTC midnight)
	RawDate         string    // Original date string from the statement
	RawAmount       string    // Original amount string from the statement
	CanonicalAmount string    // Two-decimal, comma-free form used for matching
	Amount          decimal.Decimal
	Excluded        bool // Negative amount: payment or vendor credit
}

// NewTransaction builds a transaction from its normalized parts.
func NewTransaction(rawDate, rawAmount string, date time.Time, amount decimal.Decimal) Transaction {
	return Transaction{
		Date:            date,
		RawDate:         rawDate,
		RawAmount:       rawAmount,
		Amount:          amount,
		CanonicalAmount: amount.StringFixed(2),
		Excluded:        amount.IsNegative(),
	}
}
