// Package evidence extracts structured (amount, date) evidence from document
// text and assembles the per-run evidence index.
package evidence

import (
	"regexp"
	"strings"

	"github.com/mholloway/matchbook/internal/common"
	"github.com/mholloway/matchbook/internal/model"
)

var (
	// amountPattern matches currency amounts: 1,234.56, 12.00, etc.
	amountPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}`)

	// numericDatePattern matches delimited dates: 2024-03-10, 03/10/2024, 3.10.24.
	numericDatePattern = regexp.MustCompile(`\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}`)

	// verboseDatePattern matches month-name dates: March 10, 2024 or Mar 10 2024.
	verboseDatePattern = regexp.MustCompile(`[A-Za-z]+ \d{1,2},? \d{4}`)
)

// Extract scans raw document text for currency amounts and calendar dates.
// Amounts are canonicalized to comma-free two-decimal strings at extraction
// time so equality against normalized transactions holds regardless of how
// the source text grouped digits. Unparseable date tokens are discarded;
// empty text yields an empty document.
func Extract(path, text string) *model.EvidenceDocument {
	doc := model.NewEvidenceDocument(path)

	for _, m := range amountPattern.FindAllString(text, -1) {
		doc.Amounts[strings.ReplaceAll(m, ",", "")] = struct{}{}
	}

	tokens := numericDatePattern.FindAllString(text, -1)
	tokens = append(tokens, verboseDatePattern.FindAllString(text, -1)...)
	for _, token := range tokens {
		if d, ok := common.ParseDate(token); ok {
			doc.Dates[d] = struct{}{}
		}
	}

	return doc
}
