package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mholloway/matchbook/internal/common"
	"github.com/mholloway/matchbook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "matchbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testRun() Run {
	return Run{
		StartedAt:        time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC),
		StatementPath:    "statements/march.csv",
		ReceiptsDir:      "receipts",
		CreditCard:       true,
		IndexedDocuments: 12,
		Matched:          2,
		Excluded:         1,
		Unmatched:        1,
		Skipped:          1,
	}
}

func TestMigrateIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	verdicts := []model.Verdict{
		{
			Status:       model.StatusMatched,
			RawDate:      "03/12/2024",
			RawAmount:    "1234.56",
			DocumentPath: "receipts/store.pdf",
			MatchedDate:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Notes:        "Matched on 2024-03-10",
		},
		{
			Status:    model.StatusUnmatched,
			RawDate:   "03/16/2024",
			RawAmount: "9.99",
			Notes:     "No match found in 3-day window",
		},
	}

	id, err := s.SaveRun(ctx, testRun(), verdicts)
	require.NoError(t, err)
	require.Positive(t, id)

	run, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "statements/march.csv", run.StatementPath)
	assert.True(t, run.CreditCard)
	assert.Equal(t, 12, run.IndexedDocuments)
	assert.Equal(t, 2, run.Matched)

	got, err := s.GetVerdicts(ctx, id)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, model.StatusMatched, got[0].Status)
	assert.Equal(t, "receipts/store.pdf", got[0].DocumentPath)
	assert.True(t, got[0].MatchedDate.Equal(verdicts[0].MatchedDate))
	assert.Equal(t, model.StatusUnmatched, got[1].Status)
	assert.Empty(t, got[1].DocumentPath)
	assert.True(t, got[1].MatchedDate.IsZero())
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.GetRun(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListRuns(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	first := testRun()
	first.StartedAt = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	second := testRun()
	second.StartedAt = time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)

	_, err := s.SaveRun(ctx, first, nil)
	require.NoError(t, err)
	secondID, err := s.SaveRun(ctx, second, nil)
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, secondID, runs[0].ID, "newest run first")

	limited, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
