package main

import (
	"context"
	"errors"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-notes/internal/processor"
	"github.com/nguyentantai21042004/lecture-notes/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process every recording dropped into the inbox folder",
	Long: `Watch paths.input for new recordings. Each one is moved to
paths.processing, run through the pipeline, exported to
paths.output/<name>/ and archived to paths.archived. Failed recordings
go to paths.archived/failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		log.Info(ctx, "========================================")
		log.Info(ctx, "Lecture Notes Watcher")
		log.Info(ctx, "========================================")
		log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
		log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)
		log.Info(ctx, "Transcription provider: %s", cfg.Transcription.Provider)

		// Verify required directories exist
		if err := ensureDirectories(cfg); err != nil {
			return err
		}

		a, err := newApp(ctx, cfg, log)
		if a != nil {
			defer a.close(ctx)
		}
		if err != nil {
			return err
		}

		proc := processor.New(cfg.Paths, a.pipeline, log)

		// Create watcher with processor as handler and concurrency control
		w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
		if err != nil {
			return err
		}
		defer w.Stop()

		log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
		log.Info(ctx, "Output: %s", cfg.Paths.Output)
		log.Info(ctx, "Press Ctrl+C to stop")

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Info(ctx, "Watcher stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
