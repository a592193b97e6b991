package transcriber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
)

type fakeExecutor struct {
	calls      [][]string
	transcript string
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if i := slices.Index(args, "--output-file"); i >= 0 {
		if err := os.WriteFile(args[i+1]+".txt", []byte(f.transcript), 0644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, _ string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func TestWhisperTranscribe(t *testing.T) {
	tmp := t.TempDir()
	exec := &fakeExecutor{transcript: " Welcome to lecture five.\n\n Today: graphs. \n"}
	cfg := config.WhisperConfig{
		BinaryPath: "whisper-cli",
		ModelPath:  "models/base.bin",
		Language:   "en",
		Threads:    4,
	}

	tr := NewWhisper(cfg, filepath.Join(tmp, "temp"), exec, logger.Discard())
	text, err := tr.Transcribe(context.Background(), "/uploads/lecture.m4a")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "Welcome to lecture five. Today: graphs." {
		t.Errorf("Transcribe() = %q", text)
	}

	if len(exec.calls) != 2 {
		t.Fatalf("expected ffmpeg + whisper calls, got %d", len(exec.calls))
	}
	if exec.calls[0][0] != "ffmpeg" || !slices.Contains(exec.calls[0], "/uploads/lecture.m4a") {
		t.Errorf("unexpected ffmpeg call: %v", exec.calls[0])
	}
	if exec.calls[1][0] != "whisper-cli" || !slices.Contains(exec.calls[1], "-otxt") {
		t.Errorf("unexpected whisper call: %v", exec.calls[1])
	}
	if slices.Contains(exec.calls[1], "--prompt") {
		t.Error("empty prompt should not be passed")
	}

	entries, err := os.ReadDir(filepath.Join(tmp, "temp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir not cleaned up: %v", entries)
	}
}

func TestOpenAITranscribe(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  hello from the lecture hall  "})
	}))
	defer server.Close()

	audio := filepath.Join(t.TempDir(), "talk.mp3")
	if err := os.WriteFile(audio, []byte("ID3fake"), 0644); err != nil {
		t.Fatal(err)
	}

	tr := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL}, logger.Discard())
	text, err := tr.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "hello from the lecture hall" {
		t.Errorf("Transcribe() = %q", text)
	}
	if gotModel != openAIDefaultModel {
		t.Errorf("model = %q, want %q", gotModel, openAIDefaultModel)
	}
}

func TestOpenAITranscribeServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer server.Close()

	audio := filepath.Join(t.TempDir(), "talk.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	tr := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL}, logger.Discard())
	if _, err := tr.Transcribe(context.Background(), audio); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected exactly one request, got %d", calls)
	}
}

func TestOpenAITranscribeMissingFile(t *testing.T) {
	tr := NewOpenAI(OpenAIConfig{APIKey: "k"}, logger.Discard())
	_, err := tr.Transcribe(context.Background(), "/does/not/exist.mp3")
	if err == nil || !strings.Contains(err.Error(), "open audio") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Transcription.Provider = "whisper"
	tr, err := New(&cfg, &fakeExecutor{}, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tr.(*whisperTranscriber); !ok {
		t.Errorf("expected whisper transcriber, got %T", tr)
	}

	cfg.Transcription.Provider = "nope"
	if _, err := New(&cfg, &fakeExecutor{}, logger.Discard()); err == nil {
		t.Error("expected error for unknown provider")
	}
}
