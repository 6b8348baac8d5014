// Package statement reads bank and credit-card statements and normalizes
// their rows into canonical transactions.
package statement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Row is one raw statement line with its date and amount columns already
// resolved. Values keep their original formatting; normalization happens in
// Normalize.
type Row struct {
	RawDate   string
	RawAmount string
}

// ReadFile loads statement rows from a file, choosing the reader by
// extension: .csv uses the CSV reader, .ofx/.qfx the OFX parser.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".ofx", ".qfx":
		return ReadOFX(f)
	default:
		return nil, fmt.Errorf("unsupported statement format: %s", path)
	}
}
