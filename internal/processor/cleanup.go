package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// moveToProcessing moves the recording from input to processing folder
func (p *implProcessor) moveToProcessing(ctx context.Context, audioPath string) (string, error) {
	destPath := filepath.Join(p.paths.Processing, filepath.Base(audioPath))

	p.logger.Info(ctx, "Moving to processing folder: %s -> %s", audioPath, destPath)

	if err := moveFile(audioPath, destPath); err != nil {
		return "", fmt.Errorf("move to processing: %w", err)
	}
	return destPath, nil
}

// moveToArchived moves a processed recording out of the processing folder
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	destPath := filepath.Join(p.paths.Archived, filepath.Base(path))

	p.logger.Info(ctx, "Archiving: %s -> %s", path, destPath)

	if err := moveFile(path, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// moveToFailed parks a recording whose run failed under archived/failed
func (p *implProcessor) moveToFailed(ctx context.Context, path string) error {
	destPath := filepath.Join(p.paths.Archived, "failed", filepath.Base(path))

	p.logger.Warn(ctx, "Moving failed recording: %s -> %s", path, destPath)

	if err := moveFile(path, destPath); err != nil {
		return fmt.Errorf("move to failed: %w", err)
	}
	return nil
}

// moveFile renames src to dst, copying when the rename crosses devices.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write destination: %w", err)
	}
	return out.Close()
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
