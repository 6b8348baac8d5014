package matcher

import (
	"context"
	"testing"
	"time"

	"github.com/mholloway/matchbook/internal/evidence"
	"github.com/mholloway/matchbook/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textExtractor map[string]string

func (f textExtractor) Text(path string) (string, error) {
	return f[path], nil
}

func buildIndex(t *testing.T, texts map[string]string) *evidence.Index {
	t.Helper()
	paths := make([]string, 0, len(texts))
	for path := range texts {
		paths = append(paths, path)
	}
	return evidence.BuildIndex(context.Background(), paths, textExtractor(texts), evidence.BuildOptions{Workers: 2})
}

func tx(t *testing.T, rawDate, rawAmount string) model.Transaction {
	t.Helper()
	amount, err := decimal.NewFromString(rawAmount)
	require.NoError(t, err)
	date, err := time.Parse("01/02/2006", rawDate)
	require.NoError(t, err)
	return model.NewTransaction(rawDate, rawAmount, date.UTC(), amount)
}

func TestMatchScenario(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"receipts/store.txt": "Total: $1,234.56 paid on 03/10/2024",
	})
	m := New(idx)

	verdict := m.Match(tx(t, "03/12/2024", "1234.56"))

	assert.Equal(t, model.StatusMatched, verdict.Status)
	assert.Equal(t, "receipts/store.txt", verdict.DocumentPath)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), verdict.MatchedDate)
	assert.Equal(t, "Matched on 2024-03-10", verdict.Notes)
	assert.Equal(t, "03/12/2024", verdict.RawDate)
	assert.Equal(t, "1234.56", verdict.RawAmount)
}

func TestMatchWindowBoundaries(t *testing.T) {
	tests := []struct {
		name        string
		receiptDate string
		wantStatus  model.VerdictStatus
	}{
		{name: "three days before matches", receiptDate: "03/09/2024", wantStatus: model.StatusMatched},
		{name: "four days before does not match", receiptDate: "03/08/2024", wantStatus: model.StatusUnmatched},
		{name: "transaction date itself matches", receiptDate: "03/12/2024", wantStatus: model.StatusMatched},
		{name: "one day after does not match", receiptDate: "03/13/2024", wantStatus: model.StatusUnmatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := buildIndex(t, map[string]string{
				"r.txt": "45.00 on " + tt.receiptDate,
			})
			verdict := New(idx).Match(tx(t, "03/12/2024", "45.00"))
			assert.Equal(t, tt.wantStatus, verdict.Status)
		})
	}
}

func TestMatchExcludedSkipsLookup(t *testing.T) {
	// Index deliberately holds a perfect candidate; excluded transactions
	// must never reach it.
	idx := buildIndex(t, map[string]string{
		"r.txt": "45.00 on 03/12/2024",
	})

	amount := decimal.RequireFromString("-45.00")
	excluded := model.NewTransaction("03/12/2024", "(45.00)", time.Time{}, amount)

	verdict := New(idx).Match(excluded)

	assert.Equal(t, model.StatusExcluded, verdict.Status)
	assert.Equal(t, "Transaction is either payment or vendor credit", verdict.Notes)
	assert.Empty(t, verdict.DocumentPath)
}

func TestMatchUnmatchedWhenAmountAbsent(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"r.txt": "99.99 on 03/12/2024",
	})

	verdict := New(idx).Match(tx(t, "03/12/2024", "1234.56"))

	assert.Equal(t, model.StatusUnmatched, verdict.Status)
	assert.Equal(t, "No match found in 3-day window", verdict.Notes)
}

func TestMatchAmountEqualityIsExact(t *testing.T) {
	// One cent off never matches; there is no numeric tolerance.
	idx := buildIndex(t, map[string]string{
		"r.txt": "45.01 on 03/12/2024",
	})

	verdict := New(idx).Match(tx(t, "03/12/2024", "45.00"))
	assert.Equal(t, model.StatusUnmatched, verdict.Status)
}

func TestMatchDeterministicWinner(t *testing.T) {
	texts := map[string]string{
		"z.txt": "45.00 on 03/12/2024",
		"a.txt": "45.00 on 03/12/2024",
		"m.txt": "45.00 on 03/12/2024",
	}

	for i := 0; i < 5; i++ {
		idx := buildIndex(t, texts)
		verdict := New(idx).Match(tx(t, "03/12/2024", "45.00"))
		require.Equal(t, model.StatusMatched, verdict.Status)
		assert.Equal(t, "a.txt", verdict.DocumentPath)
	}
}

func TestMatchClosestDateWins(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"r.txt": "45.00 on 03/09/2024 and again on 03/11/2024",
	})

	verdict := New(idx).Match(tx(t, "03/12/2024", "45.00"))

	require.Equal(t, model.StatusMatched, verdict.Status)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), verdict.MatchedDate)
}

func TestMatchAmountWithoutWindowDate(t *testing.T) {
	// Right amount, wrong date in one document; both right in a later one.
	idx := buildIndex(t, map[string]string{
		"a.txt": "45.00 on 01/01/2024",
		"b.txt": "45.00 on 03/11/2024",
	})

	verdict := New(idx).Match(tx(t, "03/12/2024", "45.00"))

	require.Equal(t, model.StatusMatched, verdict.Status)
	assert.Equal(t, "b.txt", verdict.DocumentPath)
}
