package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	Generation    GenerationConfig    `yaml:"generation"`
	Pipeline      PipelineConfig      `yaml:"pipeline"`
	Server        ServerConfig        `yaml:"server"`
	Session       SessionConfig       `yaml:"session"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	EventLog      EventLogConfig      `yaml:"event_log"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`

	// Credentials never come from the YAML file.
	Credentials Credentials `yaml:"-"`
}

type TranscriptionConfig struct {
	Provider string        `yaml:"provider"` // openai, whisper
	OpenAI   OpenAIConfig  `yaml:"openai"`
	Whisper  WhisperConfig `yaml:"whisper"`
}

type OpenAIConfig struct {
	Model    string        `yaml:"model"`
	Language string        `yaml:"language"`
	Timeout  time.Duration `yaml:"timeout"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type GenerationConfig struct {
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxKeywords int     `yaml:"max_keywords"`
}

type PipelineConfig struct {
	MinTranscriptChars int `yaml:"min_transcript_chars"`
}

type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
}

type SessionConfig struct {
	Backend   string        `yaml:"backend"` // memory, redis
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

type PathsConfig struct {
	Input      string `yaml:"input"`
	Processing string `yaml:"processing"`
	Output     string `yaml:"output"`
	Archived   string `yaml:"archived"`
	Temp       string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type EventLogConfig struct {
	Path          string `yaml:"path"`
	RetentionMode string `yaml:"retention_mode"` // ephemeral, session, persistent
	RetentionDays int    `yaml:"retention_days"`
}

type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns a configuration usable without a config file.
func Default() Config {
	return Config{
		Transcription: TranscriptionConfig{
			Provider: "openai",
			OpenAI: OpenAIConfig{
				Model:   "whisper-1",
				Timeout: 10 * time.Minute,
			},
			Whisper: WhisperConfig{
				BinaryPath: "whisper-cli",
				Language:   "en",
				Threads:    8,
			},
		},
		Generation: GenerationConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.3,
			MaxKeywords: 15,
		},
		Pipeline: PipelineConfig{
			MinTranscriptChars: 50,
		},
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8080,
			MaxUploadMB: 200,
		},
		Session: SessionConfig{
			Backend: "memory",
			TTL:     2 * time.Hour,
		},
		Paths: PathsConfig{
			Input:      "data/input",
			Processing: "data/processing",
			Output:     "data/output",
			Archived:   "data/archived",
			Temp:       "data/temp",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Performance: PerformanceConfig{
			MaxConcurrent: 2,
		},
		EventLog: EventLogConfig{
			Path:          "data/events.db",
			RetentionMode: "ephemeral",
			RetentionDays: 7,
		},
	}
}

// Load reads the YAML file at path (if any) over the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %w", err)
			}
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	cfg.Credentials = CredentialsFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Transcription.Provider {
	case "openai":
		if c.Transcription.OpenAI.Model == "" {
			return fmt.Errorf("transcription.openai.model is required")
		}
	case "whisper":
		if c.Transcription.Whisper.ModelPath == "" {
			return fmt.Errorf("transcription.whisper.model_path is required")
		}
		if c.Transcription.Whisper.BinaryPath == "" {
			return fmt.Errorf("transcription.whisper.binary_path is required")
		}
		if c.Transcription.Whisper.Language == "" {
			return fmt.Errorf("transcription.whisper.language is required")
		}
	default:
		return fmt.Errorf("transcription.provider must be one of openai|whisper")
	}

	if c.Generation.MaxKeywords < 0 {
		return fmt.Errorf("generation.max_keywords must be >= 0")
	}
	if c.Pipeline.MinTranscriptChars < 0 {
		return fmt.Errorf("pipeline.min_transcript_chars must be >= 0")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	switch c.Session.Backend {
	case "memory":
	case "redis":
		if c.Session.RedisAddr == "" {
			return fmt.Errorf("session.redis_addr is required when backend=redis")
		}
	default:
		return fmt.Errorf("session.backend must be one of memory|redis")
	}

	switch c.EventLog.RetentionMode {
	case "ephemeral":
	case "session", "persistent":
		if c.EventLog.Path == "" {
			return fmt.Errorf("event_log.path is required unless retention_mode=ephemeral")
		}
	default:
		return fmt.Errorf("event_log.retention_mode must be one of ephemeral|session|persistent")
	}

	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Paths.Processing == "" {
		c.Paths.Processing = "data/processing"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Transcription.Whisper.Threads == 0 {
		c.Transcription.Whisper.Threads = 8
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "gemini-2.5-flash"
	}
	if c.Generation.MaxKeywords == 0 {
		c.Generation.MaxKeywords = 15
	}
	if c.Pipeline.MinTranscriptChars == 0 {
		c.Pipeline.MinTranscriptChars = 50
	}
	if c.Server.MaxUploadMB <= 0 {
		c.Server.MaxUploadMB = 200
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = 2 * time.Hour
	}

	return nil
}
