package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/generator"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/transcriber"
)

const (
	DefaultMinTranscriptChars = 50
	DefaultMaxKeywords        = 15
)

type Options struct {
	MinTranscriptChars int
	MaxKeywords        int
	Observers          []Observer
}

type implPipeline struct {
	transcriber transcriber.Transcriber
	generator   generator.Generator
	minChars    int
	maxKeywords int
	observers   []Observer
	metrics     *stageMetrics
	logger      logger.Logger
	clock       func() time.Time
	newRunID    func() string
}

// New creates a Pipeline. It holds no per-run state and may be shared by
// concurrent sessions.
func New(tr transcriber.Transcriber, gen generator.Generator, opts Options, log logger.Logger) Pipeline {
	if opts.MinTranscriptChars <= 0 {
		opts.MinTranscriptChars = DefaultMinTranscriptChars
	}
	if opts.MaxKeywords <= 0 {
		opts.MaxKeywords = DefaultMaxKeywords
	}

	return &implPipeline{
		transcriber: tr,
		generator:   gen,
		minChars:    opts.MinTranscriptChars,
		maxKeywords: opts.MaxKeywords,
		observers:   opts.Observers,
		metrics:     newStageMetrics(log),
		logger:      log,
		clock:       time.Now,
		newRunID:    newRunID,
	}
}
