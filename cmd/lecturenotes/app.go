package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/eventlog"
	"github.com/nguyentantai21042004/lecture-notes/internal/generator"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-notes/internal/telemetry"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

// app holds the components shared by every command.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	pipeline  pipeline.Pipeline
	events    *eventlog.Store
	telemetry *telemetry.Telemetry
}

// newApp wires the pipeline from configuration. Missing credentials are
// returned as config.ErrConfigurationMissing before any client is built.
func newApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*app, error) {
	tel, err := telemetry.Setup(cfg.Telemetry.Enabled, log)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}

	events, err := eventlog.Open(ctx, cfg.EventLog, log)
	if err != nil {
		_ = tel.Shutdown(ctx)
		return nil, fmt.Errorf("open event log: %w", err)
	}

	a := &app{cfg: cfg, logger: log, events: events, telemetry: tel}

	if err := cfg.CheckCredentials(); err != nil {
		return a, err
	}

	tr, err := transcriber.New(cfg, executor.New(), log)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	gen, err := generator.New(ctx, generator.Config{
		APIKey:      cfg.Credentials.GenerationKey,
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
	}, log)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	a.pipeline = pipeline.New(tr, gen, pipeline.Options{
		MinTranscriptChars: cfg.Pipeline.MinTranscriptChars,
		MaxKeywords:        cfg.Generation.MaxKeywords,
		Observers:          []pipeline.Observer{events.Observer()},
	}, log)
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.events.Close(); err != nil {
		a.logger.Warn(ctx, "Failed to close event log: %v", err)
	}
	if err := a.telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
		a.logger.Warn(ctx, "Failed to shutdown telemetry: %v", err)
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Processing,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

func isConfigMissing(err error) bool {
	return errors.Is(err, config.ErrConfigurationMissing)
}
