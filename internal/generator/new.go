package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type Config struct {
	APIKey      string
	Model       string
	Temperature float32

	// BaseURL overrides the Gemini endpoint (tests).
	BaseURL string
}

type implGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      logger.Logger
}

// New creates a Generator backed by the Gemini API.
func New(ctx context.Context, cfg Config, log logger.Logger) (Generator, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &implGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      log,
	}, nil
}
