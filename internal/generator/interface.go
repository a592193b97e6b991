package generator

import (
	"context"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

// Generator wraps the generative model used for keyword extraction and
// study-notes generation.
type Generator interface {
	ExtractKeywords(ctx context.Context, transcript string, maxKeywords int) (notes.KeywordList, error)
	GenerateNotes(ctx context.Context, transcript string) (notes.Document, error)
}
