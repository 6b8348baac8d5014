// Package matcher decides whether statement transactions are supported by
// receipt evidence.
package matcher

import (
	"fmt"
	"time"

	"github.com/mholloway/matchbook/internal/evidence"
	"github.com/mholloway/matchbook/internal/model"
)

// WindowDays is how many days before the transaction date a receipt date may
// fall and still count as support. The window is inclusive on both ends; a
// receipt dated after the transaction never matches.
const WindowDays = 3

// Notes attached to verdicts.
const (
	noteExcluded  = "Transaction is either payment or vendor credit"
	noteUnmatched = "No match found in 3-day window"
)

// Matcher evaluates transactions against a frozen evidence index. It holds
// no mutable state and never modifies the index or the transaction.
type Matcher struct {
	index *evidence.Index
}

// New creates a matcher over a built index.
func New(index *evidence.Index) *Matcher {
	return &Matcher{index: index}
}

// Match produces the terminal verdict for one transaction.
//
// Excluded transactions (negative amounts) are never compared against
// evidence. Otherwise, candidate documents are those whose amount set holds
// the transaction's canonical amount; they are visited in ascending path
// order and the first one with a date inside the window wins, taking its
// in-window date closest to the transaction date. The explicit ordering
// replaces the map-iteration lottery the matching rule would otherwise
// inherit.
func (m *Matcher) Match(tx model.Transaction) model.Verdict {
	verdict := model.Verdict{
		RawDate:   tx.RawDate,
		RawAmount: tx.RawAmount,
	}

	if tx.Excluded {
		verdict.Status = model.StatusExcluded
		verdict.Notes = noteExcluded
		return verdict
	}

	windowStart := tx.Date.AddDate(0, 0, -WindowDays)

	for _, doc := range m.index.Documents() {
		if !doc.HasAmount(tx.CanonicalAmount) {
			continue
		}
		if matched, ok := closestInWindow(doc, windowStart, tx.Date); ok {
			verdict.Status = model.StatusMatched
			verdict.DocumentPath = doc.Path
			verdict.MatchedDate = matched
			verdict.Notes = fmt.Sprintf("Matched on %s", matched.Format("2006-01-02"))
			return verdict
		}
	}

	verdict.Status = model.StatusUnmatched
	verdict.Notes = noteUnmatched
	return verdict
}

// closestInWindow returns the document date inside [start, target] closest
// to target. All in-window dates are at or before target, so closest means
// latest.
func closestInWindow(doc *model.EvidenceDocument, start, target time.Time) (time.Time, bool) {
	var best time.Time
	found := false

	for d := range doc.Dates {
		if d.Before(start) || d.After(target) {
			continue
		}
		if !found || d.After(best) {
			best = d
			found = true
		}
	}

	return best, found
}
