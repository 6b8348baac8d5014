package model

import "time"

// EvidenceDocument holds the amounts and dates extracted from one receipt
// document. Instances are created during index build and never mutated
// afterwards.
type EvidenceDocument struct {
	Path    string
	Amounts map[string]struct{}    // Canonical two-decimal amount strings
	Dates   map[time.Time]struct{} // Calendar dates at UTC midnight
}

// NewEvidenceDocument creates an empty evidence record for a document path.
func NewEvidenceDocument(path string) *EvidenceDocument {
	return &EvidenceDocument{
		Path:    path,
		Amounts: make(map[string]struct{}),
		Dates:   make(map[time.Time]struct{}),
	}
}

// Empty reports whether the document yielded no usable evidence.
func (d *EvidenceDocument) Empty() bool {
	return len(d.Amounts) == 0 && len(d.Dates) == 0
}

// HasAmount reports whether the document contains the canonical amount.
func (d *EvidenceDocument) HasAmount(canonical string) bool {
	_, ok := d.Amounts[canonical]
	return ok
}
