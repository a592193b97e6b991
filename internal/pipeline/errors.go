package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrTranscriptionFailed     = errors.New("transcription failed")
	ErrInsufficientContent     = errors.New("insufficient content")
	ErrKeywordExtractionFailed = errors.New("keyword extraction failed")
	ErrNoteGenerationFailed    = errors.New("note generation failed")
	ErrProcessingFailed        = errors.New("processing failed")
)

// StageError records which stage aborted a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage carried by err, if any.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// UserMessage maps a pipeline error to a message safe to show to the user.
// Unexpected errors collapse into a generic processing failure.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientContent):
		return "The recording did not contain enough speech to build notes from. Try a longer or clearer recording."
	case errors.Is(err, ErrTranscriptionFailed):
		return "Transcription failed. The audio could not be converted to text."
	case errors.Is(err, ErrNoteGenerationFailed):
		return "Note generation failed. The transcript was produced but no notes came back."
	default:
		return "Processing failed. Please try again with a different file."
	}
}
