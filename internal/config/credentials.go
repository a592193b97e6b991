package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	EnvTranscriptionKey = "OPENAI_API_KEY"
	EnvGenerationKey    = "GEMINI_API_KEY"
)

// ErrConfigurationMissing is returned when a required credential is absent.
var ErrConfigurationMissing = errors.New("configuration missing")

// Credentials holds the API keys for the two remote services.
type Credentials struct {
	TranscriptionKey string
	GenerationKey    string
}

// CredentialsFromEnv resolves both keys from the process environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		TranscriptionKey: strings.TrimSpace(os.Getenv(EnvTranscriptionKey)),
		GenerationKey:    strings.TrimSpace(os.Getenv(EnvGenerationKey)),
	}
}

// CheckCredentials reports which credentials the configured providers still need.
// The transcription key is only required for the remote transcription provider.
func (c *Config) CheckCredentials() error {
	var missing []string
	if c.Transcription.Provider == "openai" && c.Credentials.TranscriptionKey == "" {
		missing = append(missing, EnvTranscriptionKey)
	}
	if c.Credentials.GenerationKey == "" {
		missing = append(missing, EnvGenerationKey)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrConfigurationMissing, strings.Join(missing, ", "))
	}
	return nil
}
