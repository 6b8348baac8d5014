package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved reconciliation runs",
		RunE:  runHistory,
	}

	cmd.Flags().String("db", "", "history database path")
	cmd.Flags().Int("limit", 20, "maximum number of runs to show")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No saved runs. Use 'matchbook reconcile --save' to record one.")
		return nil
	}

	fmt.Printf("%-5s %-20s %-30s %8s %8s %9s %8s\n",
		"ID", "Started", "Statement", "Matched", "Excluded", "Unmatched", "Skipped")
	for _, run := range runs {
		fmt.Printf("%-5d %-20s %-30s %8d %8d %9d %8d\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04"),
			truncate(run.StatementPath, 30),
			run.Matched, run.Excluded, run.Unmatched, run.Skipped)
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
