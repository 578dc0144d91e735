package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/cli"
	applog "fintrack/internal/log"
	gsheet "fintrack/internal/sheets/google"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(applog.ComponentWorker)

	logger.Info("Starting fintrack-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	sqliteRepo := cli.InitSQLite(logger.Logger, cfg.SQLiteDBPath)
	defer sqliteRepo.Close()

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("No GOOGLE_SPREADSHEET_ID configured, nothing to mirror")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetsClient, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	syncWorker := worker.NewSyncWorker(sqliteRepo, sheetsClient)

	// Mirror everything once at startup so restarts converge before the
	// first change message arrives.
	if err := syncWorker.MirrorAll(ctx); err != nil {
		logger.Error("Startup mirror failed", applog.FieldError, err)
		// Continue: the periodic pass retries.
	}

	g, gctx := errgroup.WithContext(ctx)

	// Consume change messages when AMQP is configured; otherwise the worker
	// runs on the periodic pass alone.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			err := amqpClient.ConsumeRecordChanges(gctx, func(msg *amqp.RecordChangedMessage) error {
				return syncWorker.HandleRecordChanged(gctx, msg)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		logger.Info("No AMQP URL configured, relying on periodic mirror only")
	}

	g.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := syncWorker.MirrorAll(gctx); err != nil {
					logger.Error("Periodic mirror failed", applog.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}
