package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"campaign-cleaner/config"
	"campaign-cleaner/publish"
	"campaign-cleaner/services"
	"campaign-cleaner/storage"
	"campaign-cleaner/utils"

	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// ================== Bootstrap ====================
	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger("info").Error("%v", err)
		return err
	}

	runID := uuid.NewString()
	logger := utils.NewLogger(cfg.LogLevel).With("run_id", runID)

	logger.Info("Marketing Campaign Cleaner")
	logger.Info("Input: %s (*%s containing *%s) | Output: %s",
		cfg.InputDir, cfg.ArchiveExt, cfg.TableExt, cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// =============== Load, clean, write CSV ===================
	pipeline := services.NewPipeline(cfg, runID, logger)
	datasets, summary, err := pipeline.Run()
	if err != nil {
		logger.Error("Pipeline failed: %v", err)
		return err
	}

	// ========= Optional sinks ============
	var sinks []storage.DatasetSink

	if cfg.PostgresEnabled() {
		var pgWriter *storage.PostgresWriter
		err := utils.RetryWithBackoff(ctx, cfg.MaxRetries, func(ctx context.Context) error {
			w, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			pgWriter = w
			return nil
		}, logger)
		if err != nil {
			logger.Error("Cannot connect to PostgreSQL: %v", err)
			return err
		}
		sinks = append(sinks, pgWriter)
	}

	if cfg.WorkbookEnabled() {
		sinks = append(sinks, storage.NewWorkbookWriter(cfg.WorkbookPath, logger))
	}

	for _, sink := range sinks {
		defer sink.Close()
		if err := sink.Save(datasets); err != nil {
			logger.Error("Failed to store datasets: %v", err)
			return err
		}
	}

	// ==== SFTP publication ============================
	if cfg.SFTPEnabled() {
		uploader := publish.NewSFTPUploader(cfg, logger)
		if err := uploader.UploadFiles(ctx, pipeline.OutputPaths()); err != nil {
			logger.Error("SFTP upload failed: %v", err)
			return err
		}
	}

	// ==== Summary ============================
	services.PrintSummary(os.Stdout, summary)
	logger.Info("Done! Clean data written to %s", cfg.OutputDir)
	return nil
}
