package main

import (
	"context"
	"errors"
	"os"
	"time"

	"billfold/internal/cli"
	"billfold/internal/events"
	"billfold/internal/export/sheets"
	"billfold/internal/log"
	"billfold/internal/snapshot/sqlite"
	"billfold/internal/worker"
)

// The worker audits transaction update events into the sqlite audit log
// and periodically exports category summaries to Google Sheets. It shares
// the sqlite database with the web process, so it requires the sqlite
// backend.
func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("starting billfold-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	store, err := sqlite.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to open sqlite store", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	var exporter sheets.Exporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := sheets.NewClient(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets export enabled",
			"spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	} else {
		logger.Info("Google Sheets export disabled, no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	w := worker.New(store, store, exporter, logger)
	err = w.Run(ctx, amqpClient, cfg.ExportInterval)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("worker stopped gracefully")
}
