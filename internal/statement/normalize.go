package statement

import (
	"strings"
	"time"

	"github.com/mholloway/matchbook/internal/common"
	"github.com/mholloway/matchbook/internal/model"
	"github.com/shopspring/decimal"
)

// Options configures row normalization. CreditCard flips the sign of every
// parsed amount, since credit-card statements report charge polarity
// opposite to bank statements. It is an explicit parameter rather than a
// process-wide flag so callers and tests control it per invocation.
type Options struct {
	CreditCard bool
}

// SkipReason classifies why a row produced no transaction.
type SkipReason string

const (
	// SkipNone means the row normalized successfully.
	SkipNone SkipReason = ""
	// SkipBadAmount means the amount failed to parse; the row emits no verdict.
	SkipBadAmount SkipReason = "unparseable amount"
	// SkipBadDate means the date failed to parse; the row emits no verdict.
	SkipBadDate SkipReason = "unparseable date"
)

// RowResult is the explicit outcome of normalizing one row: either a
// transaction, or a skip reason. Skips never abort the run.
type RowResult struct {
	Transaction model.Transaction
	Skip        SkipReason
}

// Skipped reports whether the row was dropped during normalization.
func (r RowResult) Skipped() bool {
	return r.Skip != SkipNone
}

// Normalize converts a raw statement row into a canonical transaction.
//
// The amount pipeline strips currency symbols and thousands separators,
// treats parenthesis-wrapped values as negative, applies the credit-card
// sign flip, and formats the canonical two-decimal string. Rows whose signed
// amount ends up strictly negative are payments or credits: they are marked
// excluded without attempting to parse the date.
func Normalize(row Row, opts Options) RowResult {
	rawAmount := strings.TrimSpace(row.RawAmount)
	rawDate := strings.TrimSpace(row.RawDate)

	clean := strings.ReplaceAll(rawAmount, "$", "")
	clean = strings.ReplaceAll(clean, ",", "")
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = "-" + strings.Trim(clean, "()")
	}

	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return RowResult{Skip: SkipBadAmount}
	}

	if opts.CreditCard {
		amount = amount.Neg()
	}

	if amount.IsNegative() {
		return RowResult{Transaction: model.NewTransaction(rawDate, rawAmount, time.Time{}, amount)}
	}

	date, ok := common.ParseDate(rawDate)
	if !ok {
		return RowResult{Skip: SkipBadDate}
	}

	return RowResult{Transaction: model.NewTransaction(rawDate, rawAmount, date, amount)}
}
