package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

// Processor runs recordings through the pipeline outside the web UI.
type Processor interface {
	// Process takes a file from the inbox through processing, writes its
	// exports under the output folder and archives the original.
	Process(ctx context.Context, audioPath string) error
	// ProcessFile runs one file in place and writes its exports into outDir.
	ProcessFile(ctx context.Context, audioPath, outDir string) (*notes.LectureResult, []string, error)
}
