package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mholloway/matchbook/internal/common"
)

// Candidate header names for the date and amount columns, tried in order.
var (
	dateColumns   = []string{"Date", "Transaction Date", "Post Date", "Trans Date", "Posted Date"}
	amountColumns = []string{"Amount", "Debit", "Charge", "Description Amount"}
)

// ReadCSV reads statement rows from CSV data. The date and amount columns
// are resolved case-insensitively against the candidate lists; failing to
// resolve either is fatal for the run since no row could be normalized.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read statement header: %w", err)
	}

	dateIdx, dateOK := resolveColumn(dateColumns, headers)
	amountIdx, amountOK := resolveColumn(amountColumns, headers)
	if !dateOK || !amountOK {
		return nil, fmt.Errorf("%w: headers %v", common.ErrColumnsNotFound, headers)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read statement row: %w", err)
		}
		if len(record) <= dateIdx || len(record) <= amountIdx {
			continue
		}
		rows = append(rows, Row{
			RawDate:   strings.TrimSpace(record[dateIdx]),
			RawAmount: strings.TrimSpace(record[amountIdx]),
		})
	}

	return rows, nil
}

// resolveColumn finds the first candidate name present in the header row,
// comparing case-insensitively against trimmed headers.
func resolveColumn(candidates, headers []string) (int, bool) {
	for _, name := range candidates {
		for i, header := range headers {
			if strings.EqualFold(name, strings.TrimSpace(header)) {
				return i, true
			}
		}
	}
	return 0, false
}
