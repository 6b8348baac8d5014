package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mholloway/matchbook/internal/common"
	"github.com/mholloway/matchbook/internal/document"
	"github.com/mholloway/matchbook/internal/evidence"
	"github.com/mholloway/matchbook/internal/matcher"
	"github.com/mholloway/matchbook/internal/model"
	"github.com/mholloway/matchbook/internal/report"
	"github.com/mholloway/matchbook/internal/statement"
	"github.com/mholloway/matchbook/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Match statement transactions against receipt documents",
		Long: `Build an evidence index over every receipt in the directory tree, then
check each statement transaction for a receipt with the same amount dated
within the three days before the transaction.

Examples:
  # Reconcile a bank statement
  matchbook reconcile --statement chase_march.csv --receipts ~/Receipts

  # Credit-card statements report charge polarity inverted
  matchbook reconcile --statement visa_march.csv --receipts ~/Receipts --credit-card

  # Keep the run in the history database
  matchbook reconcile --statement chase_march.csv --receipts ~/Receipts --save`,
		RunE: runReconcile,
	}

	cmd.Flags().StringP("statement", "s", "", "statement file (.csv, .ofx, or .qfx)")
	cmd.Flags().StringP("receipts", "r", "", "directory tree containing receipt documents")
	cmd.Flags().Bool("credit-card", false, "treat the statement as a credit-card statement")
	cmd.Flags().StringP("output", "o", "", "report file (default: <today>_receipt_reconciliation.csv)")
	cmd.Flags().Bool("save", false, "persist this run to the history database")
	cmd.Flags().String("db", "", "history database path")
	cmd.Flags().Int("workers", 4, "parallel workers for receipt indexing")
	_ = cmd.MarkFlagRequired("statement")
	_ = cmd.MarkFlagRequired("receipts")

	return cmd
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	statementPath, _ := cmd.Flags().GetString("statement")
	receiptsDir, _ := cmd.Flags().GetString("receipts")
	creditCard, _ := cmd.Flags().GetBool("credit-card")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	workers, _ := cmd.Flags().GetInt("workers")

	ctx := cmd.Context()
	startedAt := time.Now()

	rows, err := statement.ReadFile(statementPath)
	if err != nil {
		return common.NewUserError("could not read statement", err)
	}
	slog.Info("Loaded statement", "file", statementPath, "rows", len(rows))

	paths, err := document.Walk(receiptsDir)
	if err != nil {
		return err
	}
	slog.Info("Building receipt index", "documents", len(paths))

	idx := evidence.BuildIndex(ctx, paths, document.FileExtractor{}, evidence.BuildOptions{
		Workers:      workers,
		ShowProgress: true,
	})
	slog.Info("Receipt index complete", "indexed", idx.Len())

	verdicts, skipped := matchRows(rows, idx, statement.Options{CreditCard: creditCard})

	if outputPath == "" {
		outputPath = report.DefaultFileName(time.Now())
	}
	if err := writeReport(outputPath, verdicts); err != nil {
		return err
	}

	summary := report.Summarize(verdicts, skipped, idx.Len())
	fmt.Print(summary.Render())
	fmt.Printf("Report written to %s\n", outputPath)

	if save {
		if err := saveRun(ctx, cmd, startedAt, statementPath, receiptsDir, creditCard, summary, verdicts); err != nil {
			return err
		}
	}

	return nil
}

// matchRows normalizes every row and collects verdicts. Rows that fail
// normalization emit no verdict; they are counted and logged instead.
func matchRows(rows []statement.Row, idx *evidence.Index, opts statement.Options) ([]model.Verdict, int) {
	m := matcher.New(idx)

	verdicts := make([]model.Verdict, 0, len(rows))
	skipped := 0

	for _, row := range rows {
		result := statement.Normalize(row, opts)
		if result.Skipped() {
			skipped++
			slog.Warn("Skipping statement row",
				"date", row.RawDate,
				"amount", row.RawAmount,
				"reason", result.Skip)
			continue
		}
		verdicts = append(verdicts, m.Match(result.Transaction))
	}

	return verdicts, skipped
}

func writeReport(path string, verdicts []model.Verdict) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := report.WriteCSV(f, verdicts); err != nil {
		return err
	}
	return f.Close()
}

func saveRun(ctx context.Context, cmd *cobra.Command, startedAt time.Time, statementPath, receiptsDir string, creditCard bool, summary report.Summary, verdicts []model.Verdict) error {
	store, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run := storage.Run{
		StartedAt:        startedAt,
		StatementPath:    statementPath,
		ReceiptsDir:      receiptsDir,
		CreditCard:       creditCard,
		IndexedDocuments: summary.Indexed,
		Matched:          summary.Matched,
		Excluded:         summary.Excluded,
		Unmatched:        summary.Unmatched,
		Skipped:          summary.Skipped,
	}

	runID, err := store.SaveRun(ctx, run, verdicts)
	if err != nil {
		return err
	}

	slog.Info("Saved run to history", "run_id", runID)
	return nil
}

// openStorage opens the history database at the --db flag, the configured
// path, or the default location, and brings the schema up to date.
func openStorage(cmd *cobra.Command) (*storage.SQLiteStorage, error) {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = viper.GetString("database.path")
	}
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = fmt.Sprintf("%s/.local/share/matchbook/matchbook.db", home)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, err
	}

	return store, nil
}
