package transcriber

import "context"

// Transcriber turns a readable local audio file into transcript text.
// An empty string with a nil error means the engine heard nothing usable.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
