package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

// New builds the transcriber selected by transcription.provider.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcription.Provider {
	case "openai":
		return NewOpenAI(OpenAIConfig{
			APIKey:   cfg.Credentials.TranscriptionKey,
			Model:    cfg.Transcription.OpenAI.Model,
			Language: cfg.Transcription.OpenAI.Language,
			Timeout:  cfg.Transcription.OpenAI.Timeout,
		}, log), nil
	case "whisper":
		return NewWhisper(cfg.Transcription.Whisper, cfg.Paths.Temp, exec, log), nil
	default:
		return nil, fmt.Errorf("unknown transcription provider %q", cfg.Transcription.Provider)
	}
}
