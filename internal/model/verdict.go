package model

import "time"

// VerdictStatus is the terminal state of matching one transaction.
type VerdictStatus string

const (
	// StatusMatched means a document supplied both the amount and an in-window date.
	StatusMatched VerdictStatus = "matched"
	// StatusExcluded means the transaction is a payment or credit and was never compared.
	StatusExcluded VerdictStatus = "excluded"
	// StatusUnmatched means no document satisfied the amount and date window.
	StatusUnmatched VerdictStatus = "unmatched"
)

// Verdict is the outcome of matching one transaction against the evidence index.
type Verdict struct {
	Status       VerdictStatus
	RawDate      string
	RawAmount    string
	DocumentPath string    // Set only when Status is StatusMatched
	MatchedDate  time.Time // Set only when Status is StatusMatched
	Notes        string
}

// Matched reports whether the verdict found supporting evidence.
func (v Verdict) Matched() bool {
	return v.Status == StatusMatched
}
