package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/semdiff/semdiff/infrastructure/persistence"
	"github.com/semdiff/semdiff/infrastructure/reportfile"
	"github.com/semdiff/semdiff/internal/database"
	"github.com/semdiff/semdiff/internal/log"
)

func reportsCmd() *cobra.Command {
	var (
		envFile string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List archived comparison reports",
		Long: `List archived comparison reports as JSON, most recent first.

Requires DB_URL to point at the report archive database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReports(cmd.Context(), envFile, limit)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of reports to list")

	return cmd
}

func runReports(ctx context.Context, envFile string, limit int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if !cfg.ArchiveEnabled() {
		return errors.New("report archive not configured: set DB_URL")
	}
	if limit < 1 {
		return fmt.Errorf("invalid limit %d", limit)
	}

	logger := log.Configure(cfg)

	db, err := database.NewDatabase(ctx, cfg.DBURL())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	store, err := persistence.NewReportStore(db)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}

	reports, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}

	docs := make([]reportfile.Document, len(reports))
	for i, rep := range reports {
		docs[i] = reportfile.NewDocument(rep)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
