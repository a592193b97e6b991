package processor

import (
	"time"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
)

type implProcessor struct {
	paths    config.PathsConfig
	pipeline pipeline.Pipeline
	logger   logger.Logger
	clock    func() time.Time
}

// New creates a new Processor instance
func New(paths config.PathsConfig, p pipeline.Pipeline, log logger.Logger) Processor {
	return &implProcessor{
		paths:    paths,
		pipeline: p,
		logger:   log,
		clock:    time.Now,
	}
}
