package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

func sampleResult() *notes.LectureResult {
	return &notes.LectureResult{
		Transcript: "today we talk about sorting algorithms and their costs in practice",
		Keywords:   notes.KeywordList{"sorting", "complexity"},
		Notes:      "# Sorting\nTheory: Order elements by a key.\nExample: **Merge sort** on 8 numbers.\n## Costs\n- O(n log n)\n- stable",
		FileInfo:   notes.FileInfo{Name: "lecture.mp3", WordCount: 11, EstimatedReadingMinutes: 1},
	}
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name string
		want Format
		ok   bool
	}{
		{"notes.txt", FormatText, true},
		{"notes.md", FormatMarkdown, true},
		{"notes.docx", FormatDocx, true},
		{"notes.pdf", "", false},
	}

	for _, tt := range tests {
		got, ok := FormatFromName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FormatFromName(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	result := sampleResult()

	paths, err := WriteAll(result, dir)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 artefacts, got %d", len(paths))
	}

	txt, err := os.ReadFile(filepath.Join(dir, PlainTextName))
	if err != nil {
		t.Fatal(err)
	}
	if string(txt) != string(result.Notes) {
		t.Errorf("notes.txt should hold the raw notes, got %q", txt)
	}

	md, err := os.ReadFile(filepath.Join(dir, MarkdownName))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(md, []byte("## Sorting\n\n**Theory:** Order elements by a key.")) {
		t.Errorf("unexpected markdown export: %q", md)
	}

	docxData, err := os.ReadFile(filepath.Join(dir, DocxName))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(docxData, []byte("PK")) {
		t.Error("notes.docx is not a zip container")
	}
}
