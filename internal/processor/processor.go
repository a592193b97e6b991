package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
)

// batchSession tags watch-mode runs in the event log.
const batchSession = "watch"

// Process orchestrates one inbox file: processing -> pipeline -> output -> archived.
func (p *implProcessor) Process(ctx context.Context, audioPath string) error {
	startTime := p.clock()
	originalFilename := filepath.Base(audioPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting lecture processing: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Claim the file so a second event for it is a no-op
	processingPath, err := p.moveToProcessing(ctx, audioPath)
	if err != nil {
		return err
	}

	// Step 2: Run the pipeline and write exports
	outDir, err := p.outputDir(stem(originalFilename))
	if err != nil {
		return err
	}
	result, files, err := p.run(pipeline.WithSessionID(ctx, batchSession), processingPath, originalFilename, outDir)
	if err != nil {
		if mvErr := p.moveToFailed(ctx, processingPath); mvErr != nil {
			p.logger.Warn(ctx, "Failed to move %s to failed folder: %v", processingPath, mvErr)
		}
		return fmt.Errorf("process %s: %w", originalFilename, err)
	}

	// Step 3: Move original recording to archived folder
	if err := p.moveToArchived(ctx, processingPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Sections: %d, keywords: %d", len(notes.Parse(result.Notes)), len(result.Keywords))
	for _, f := range files {
		p.logger.Info(ctx, "Output: %s", f)
	}
	p.logger.Info(ctx, "Processing time: %s", p.clock().Sub(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "========================================")

	return nil
}

func (p *implProcessor) ProcessFile(ctx context.Context, audioPath, outDir string) (*notes.LectureResult, []string, error) {
	return p.run(ctx, audioPath, filepath.Base(audioPath), outDir)
}

func (p *implProcessor) run(ctx context.Context, audioPath, displayName, outDir string) (*notes.LectureResult, []string, error) {
	result, err := p.pipeline.Run(ctx, audioPath, displayName)
	if err != nil {
		return nil, nil, err
	}

	files, err := export.WriteAll(result, outDir)
	if err != nil {
		return nil, nil, fmt.Errorf("write exports: %w", err)
	}
	return result, files, nil
}

// outputDir picks output/<name>, suffixing a timestamp when a previous run
// of the same file name already used it.
func (p *implProcessor) outputDir(name string) (string, error) {
	dir := filepath.Join(p.paths.Output, name)
	exists, err := pathExists(dir)
	if err != nil {
		return "", fmt.Errorf("check output dir: %w", err)
	}
	if exists {
		dir = filepath.Join(p.paths.Output, name+"-"+p.clock().Format("20060102-150405"))
	}
	return dir, nil
}

func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
