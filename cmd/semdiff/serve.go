package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/semdiff/semdiff/infrastructure/api"
	apimiddleware "github.com/semdiff/semdiff/infrastructure/api/middleware"
	"github.com/semdiff/semdiff/infrastructure/persistence"
	"github.com/semdiff/semdiff/internal/config"
	"github.com/semdiff/semdiff/internal/database"
	"github.com/semdiff/semdiff/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Exposes comparison runs over POST /api/v1/comparisons and, when DB_URL
is set, archived reports over GET /api/v1/reports.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	// Flags take precedence over env vars.
	var overrides []config.AppConfigOption
	if host != "" {
		overrides = append(overrides, config.WithHost(host))
	}
	if port != 0 {
		overrides = append(overrides, config.WithPort(port))
	}
	cfg = cfg.Apply(overrides...)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := log.Configure(cfg)
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, "starting semdiff", attrs...)

	var store *persistence.ReportStore
	if cfg.ArchiveEnabled() {
		db, err := database.NewDatabase(context.Background(), cfg.DBURL())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()

		store, err = persistence.NewReportStore(db)
		if err != nil {
			return fmt.Errorf("open report store: %w", err)
		}
	}

	comparison := buildComparison(cfg, logger)

	server := api.NewServer(cfg.Addr(), logger)
	server.Router().Use(apimiddleware.Logging(logger))
	api.NewHandlers(comparison, store, logger).Mount(server.Router())

	// Graceful shutdown on SIGINT/SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("received signal, shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return <-errChan
}
