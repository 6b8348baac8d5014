package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mholloway/matchbook/internal/common"
	"github.com/mholloway/matchbook/internal/model"
)

// Run is one persisted reconciliation run with its aggregate counts.
type Run struct {
	StartedAt        time.Time `json:"started_at"`
	StatementPath    string    `json:"statement_path"`
	ReceiptsDir      string    `json:"receipts_dir"`
	ID               int64     `json:"id"`
	IndexedDocuments int       `json:"indexed_documents"`
	Matched          int       `json:"matched"`
	Excluded         int       `json:"excluded"`
	Unmatched        int       `json:"unmatched"`
	Skipped          int       `json:"skipped"`
	CreditCard       bool      `json:"credit_card"`
}

// SaveRun persists a run and all of its verdicts in one transaction,
// returning the new run ID.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run Run, verdicts []model.Verdict) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, statement_path, receipts_dir, credit_card,
			indexed_documents, matched, excluded, unmatched, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.StatementPath, run.ReceiptsDir, run.CreditCard,
		run.IndexedDocuments, run.Matched, run.Excluded, run.Unmatched, run.Skipped)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO verdicts (run_id, status, raw_date, raw_amount, document_path, matched_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare verdict insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, v := range verdicts {
		var docPath sql.NullString
		var matchedDate sql.NullTime
		if v.Matched() {
			docPath = sql.NullString{String: v.DocumentPath, Valid: true}
			matchedDate = sql.NullTime{Time: v.MatchedDate, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, string(v.Status), v.RawDate, v.RawAmount, docPath, matchedDate, v.Notes); err != nil {
			return 0, fmt.Errorf("failed to insert verdict: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, statement_path, receipts_dir, credit_card,
			indexed_documents, matched, excluded, unmatched, skipped
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.StatementPath, &run.ReceiptsDir,
			&run.CreditCard, &run.IndexedDocuments, &run.Matched, &run.Excluded,
			&run.Unmatched, &run.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id int64) (*Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, statement_path, receipts_dir, credit_card,
			indexed_documents, matched, excluded, unmatched, skipped
		FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.StartedAt, &run.StatementPath, &run.ReceiptsDir,
			&run.CreditCard, &run.IndexedDocuments, &run.Matched, &run.Excluded,
			&run.Unmatched, &run.Skipped)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}
	return &run, nil
}

// GetVerdicts returns the verdicts recorded for a run, in insertion order.
func (s *SQLiteStorage) GetVerdicts(ctx context.Context, runID int64) ([]model.Verdict, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, raw_date, raw_amount, document_path, matched_date, notes
		FROM verdicts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query verdicts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var verdicts []model.Verdict
	for rows.Next() {
		var (
			v           model.Verdict
			status      string
			docPath     sql.NullString
			matchedDate sql.NullTime
		)
		if err := rows.Scan(&status, &v.RawDate, &v.RawAmount, &docPath, &matchedDate, &v.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan verdict: %w", err)
		}
		v.Status = model.VerdictStatus(status)
		if docPath.Valid {
			v.DocumentPath = docPath.String
		}
		if matchedDate.Valid {
			v.MatchedDate = matchedDate.Time
		}
		verdicts = append(verdicts, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verdicts: %w", err)
	}
	return verdicts, nil
}
