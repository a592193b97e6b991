package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Transcription.Provider, "LECTURENOTES_TRANSCRIPTION_PROVIDER")
	overrideString(&cfg.Transcription.OpenAI.Model, "LECTURENOTES_OPENAI_MODEL")
	overrideString(&cfg.Transcription.OpenAI.Language, "LECTURENOTES_OPENAI_LANGUAGE")
	overrideDuration(&cfg.Transcription.OpenAI.Timeout, "LECTURENOTES_OPENAI_TIMEOUT")
	overrideString(&cfg.Transcription.Whisper.BinaryPath, "LECTURENOTES_WHISPER_BINARY_PATH")
	overrideString(&cfg.Transcription.Whisper.ModelPath, "LECTURENOTES_WHISPER_MODEL_PATH")
	overrideString(&cfg.Transcription.Whisper.Language, "LECTURENOTES_WHISPER_LANGUAGE")
	overrideInt(&cfg.Transcription.Whisper.Threads, "LECTURENOTES_WHISPER_THREADS")
	overrideString(&cfg.Generation.Model, "LECTURENOTES_GENERATION_MODEL")
	overrideInt(&cfg.Generation.MaxKeywords, "LECTURENOTES_MAX_KEYWORDS")
	overrideInt(&cfg.Pipeline.MinTranscriptChars, "LECTURENOTES_MIN_TRANSCRIPT_CHARS")
	overrideString(&cfg.Server.Host, "LECTURENOTES_SERVER_HOST")
	overrideInt(&cfg.Server.Port, "LECTURENOTES_SERVER_PORT")
	overrideString(&cfg.Session.Backend, "LECTURENOTES_SESSION_BACKEND")
	overrideString(&cfg.Session.RedisAddr, "LECTURENOTES_SESSION_REDIS_ADDR")
	overrideDuration(&cfg.Session.TTL, "LECTURENOTES_SESSION_TTL")
	overrideString(&cfg.Paths.Input, "LECTURENOTES_PATHS_INPUT")
	overrideString(&cfg.Paths.Output, "LECTURENOTES_PATHS_OUTPUT")
	overrideString(&cfg.Logging.Level, "LECTURENOTES_LOG_LEVEL")
	overrideString(&cfg.Logging.Format, "LECTURENOTES_LOG_FORMAT")
	overrideInt(&cfg.Performance.MaxConcurrent, "LECTURENOTES_MAX_CONCURRENT")
	overrideString(&cfg.EventLog.Path, "LECTURENOTES_EVENT_LOG_PATH")
	overrideString(&cfg.EventLog.RetentionMode, "LECTURENOTES_EVENT_LOG_RETENTION_MODE")
	overrideBool(&cfg.Telemetry.Enabled, "LECTURENOTES_TELEMETRY_ENABLED")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			*target = parsed
		}
	}
}

func overrideDuration(target *time.Duration, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			*target = parsed
		}
	}
}
