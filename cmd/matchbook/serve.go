package main

import (
	"log/slog"

	"github.com/mholloway/matchbook/internal/api"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve saved runs over a read-only JSON API",
		RunE:  runServe,
	}

	cmd.Flags().String("db", "", "history database path")
	cmd.Flags().String("addr", ":8080", "listen address")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	store, err := openStorage(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	slog.Info("Starting API server", "addr", addr)
	return api.NewServer(store).Run(addr)
}
