package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

// Pipeline turns one audio file into a LectureResult. Stages run strictly in
// order: transcribe, extract keywords, generate notes. A result is returned
// only when every fatal stage succeeded.
//
// The audio file belongs to the caller, who must remove it after Run returns.
type Pipeline interface {
	Run(ctx context.Context, audioPath, displayName string) (*notes.LectureResult, error)
}
