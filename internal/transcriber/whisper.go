package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/pkg/executor"
)

type whisperTranscriber struct {
	cfg      config.WhisperConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a Transcriber that runs whisper.cpp locally. Input audio
// is first normalised to 16kHz mono WAV with ffmpeg.
func NewWhisper(cfg config.WhisperConfig, tempDir string, exec executor.Executor, log logger.Logger) Transcriber {
	return &whisperTranscriber{
		cfg:      cfg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := os.MkdirAll(w.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	workDir, err := os.MkdirTemp(w.tempDir, "whisper-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer w.removeAll(ctx, workDir)

	wavPath, err := w.extractAudio(ctx, audioPath, workDir)
	if err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}

	txtPath, err := w.runWhisper(ctx, workDir, wavPath)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	return joinTranscriptLines(string(data)), nil
}

// extractAudio converts the upload to 16kHz mono PCM WAV, the input format
// whisper.cpp expects.
func (w *whisperTranscriber) extractAudio(ctx context.Context, audioPath, workDir string) (string, error) {
	wavPath := filepath.Join(workDir, "audio.wav")

	w.logger.Info(ctx, "Normalising audio for whisper: %s", audioPath)

	args := []string{
		"-i", audioPath,
		"-vn",          // drop any video stream (mp4 uploads)
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // mono
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := w.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg: %w", err)
	}
	return wavPath, nil
}

// runWhisper runs inside workDir and writes <prefix>.txt next to the WAV.
func (w *whisperTranscriber) runWhisper(ctx context.Context, workDir, wavPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	w.logger.Info(ctx, "Starting whisper transcription with %d threads", w.cfg.Threads)

	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.ExecuteInDir(ctx, workDir, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}
	return outputPrefix + ".txt", nil
}

func (w *whisperTranscriber) removeAll(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		w.logger.Warn(ctx, "Failed to cleanup whisper work dir %s: %v", dir, err)
	}
}

// joinTranscriptLines flattens whisper's one-segment-per-line output.
func joinTranscriptLines(raw string) string {
	var parts []string
	for _, line := range strings.Split(raw, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
