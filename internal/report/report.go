// Package report writes the reconciliation report CSV and renders the
// terminal summary.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/mholloway/matchbook/internal/model"
)

// NoMatchSentinel fills the FileName column for rows without a matched
// document.
const NoMatchSentinel = "N/A"

// header is the fixed report column set.
var header = []string{"Date", "Amount", "FileName", "FilePath", "Notes"}

// DefaultFileName returns the dated default report name,
// e.g. 2024-03-12_receipt_reconciliation.csv.
func DefaultFileName(now time.Time) string {
	return now.Format("2006-01-02") + "_receipt_reconciliation.csv"
}

// WriteCSV writes one report row per verdict. Original date and amount
// strings pass through untouched; the file path column is populated only for
// matched rows.
func WriteCSV(w io.Writer, verdicts []model.Verdict) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, v := range verdicts {
		fileName := NoMatchSentinel
		filePath := ""
		if v.Matched() {
			fileName = filepath.Base(v.DocumentPath)
			filePath = v.DocumentPath
		}
		record := []string{v.RawDate, v.RawAmount, fileName, filePath, v.Notes}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return nil
}

// Summary aggregates one run's outcomes for the terminal.
type Summary struct {
	Matched   int
	Excluded  int
	Unmatched int
	Skipped   int
	Indexed   int
}

// Summarize counts verdict outcomes. Skipped rows never produce verdicts, so
// their count arrives separately from the normalizer.
func Summarize(verdicts []model.Verdict, skipped, indexed int) Summary {
	s := Summary{Skipped: skipped, Indexed: indexed}
	for _, v := range verdicts {
		switch v.Status {
		case model.StatusMatched:
			s.Matched++
		case model.StatusExcluded:
			s.Excluded++
		case model.StatusUnmatched:
			s.Unmatched++
		}
	}
	return s
}

// Total returns the number of verdicts emitted.
func (s Summary) Total() int {
	return s.Matched + s.Excluded + s.Unmatched
}
