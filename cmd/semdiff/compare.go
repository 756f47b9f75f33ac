package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/semdiff/semdiff/domain/report"
	infradataset "github.com/semdiff/semdiff/infrastructure/dataset"
	"github.com/semdiff/semdiff/infrastructure/persistence"
	"github.com/semdiff/semdiff/infrastructure/reportfile"
	"github.com/semdiff/semdiff/internal/database"
	"github.com/semdiff/semdiff/internal/log"
)

func compareCmd() *cobra.Command {
	var (
		envFile    string
		sourcePath string
		targetPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two datasets and write a report",
		Long: `Compare two datasets and write a report.

Each dataset file is a JSON or YAML array of entries with the fields
id, name, title, summary and skills. Every source entry is embedded,
matched against the most similar target entry by cosine similarity,
and the differences between the matched pair are summarised.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables

Environment variables:
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  DB_URL                       Optional database URL for the report archive
  OPENAI_API_KEY               Shared API key fallback for both endpoints

  EMBEDDING_ENDPOINT_*         Embedding AI service configuration
    BASE_URL                   Base URL (e.g., https://api.openai.com/v1)
    MODEL                      Model identifier (default: text-embedding-3-small)
    API_KEY                    API key for authentication
    TIMEOUT                    Request timeout in seconds (default: 60)

  COMPLETION_ENDPOINT_*        Diff summary AI service configuration
    (same fields as EMBEDDING_ENDPOINT; model default: gpt-4o-mini)
    MAX_TOKENS                 Completion token cap (default: 200)
    TEMPERATURE                Sampling temperature (default: 0.2)

  BATCH_SIZE                   Requests per concurrent batch (default: 10)
  BATCH_DELAY_SECONDS          Pause between batches (default: 1)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), envFile, sourcePath, targetPath, outputPath)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&sourcePath, "source", "", "Path to the source dataset file (required)")
	cmd.Flags().StringVar(&targetPath, "target", "", "Path to the target dataset file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "comparison_report.json", "Path to write the report to")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runCompare(ctx context.Context, envFile, sourcePath, targetPath, outputPath string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.Configure(cfg)
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(ctx, slog.LevelInfo, "starting comparison", attrs...)

	source, err := infradataset.Load(sourcePath)
	if err != nil {
		return fmt.Errorf("load source dataset: %w", err)
	}
	target, err := infradataset.Load(targetPath)
	if err != nil {
		return fmt.Errorf("load target dataset: %w", err)
	}
	logger.Info("datasets loaded",
		"source_entries", len(source),
		"target_entries", len(target),
	)

	comparison := buildComparison(cfg, logger)
	rep, err := comparison.Run(ctx, source, target)
	if err != nil {
		return fmt.Errorf("run comparison: %w", err)
	}

	if err := reportfile.Write(outputPath, rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "path", outputPath, "total_comparisons", rep.Count())

	if cfg.ArchiveEnabled() {
		if err := archiveReport(ctx, cfg.DBURL(), rep, logger); err != nil {
			// The report file is already on disk; archiving failures
			// should not fail the run.
			logger.Warn("failed to archive report", "error", err)
		}
	}

	return nil
}

func archiveReport(ctx context.Context, dbURL string, rep report.Report, logger *slog.Logger) error {
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	store, err := persistence.NewReportStore(db)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, rep); err != nil {
		return err
	}
	logger.Info("report archived", "total_comparisons", rep.Count())
	return nil
}
