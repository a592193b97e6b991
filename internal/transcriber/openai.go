package transcriber

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

const openAIDefaultModel = "whisper-1"

// OpenAIConfig configures the hosted speech-to-text client.
type OpenAIConfig struct {
	APIKey     string
	Model      string // whisper-1 (default), gpt-4o-transcribe, gpt-4o-mini-transcribe
	Language   string // ISO-639-1 hint, optional
	Timeout    time.Duration
	BaseURL    string       // Optional (tests)
	HTTPClient *http.Client // Optional (tests)
}

type openAITranscriber struct {
	client   openai.Client
	model    string
	language string
	logger   logger.Logger
}

// NewOpenAI creates a Transcriber backed by the OpenAI audio transcription API.
// The SDK's own retries are disabled: each stage calls the service once.
func NewOpenAI(cfg OpenAIConfig, log logger.Logger) Transcriber {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Minute
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &openAITranscriber{
		client:   openai.NewClient(opts...),
		model:    cfg.Model,
		language: cfg.Language,
		logger:   log,
	}
}

// Transcribe uploads the audio file and returns the recognised text.
func (t *openAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	t.logger.Info(ctx, "Transcribing %s with %s", filepath.Base(audioPath), t.model)

	params := openai.AudioTranscriptionNewParams{
		File:  f,
		Model: openai.AudioModel(t.model),
	}
	if t.language != "" {
		params.Language = openai.String(t.language)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai transcription: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	t.logger.Debug(ctx, "Transcription returned %d characters", len(text))
	return text, nil
}
