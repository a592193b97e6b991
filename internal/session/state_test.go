package session

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

func sampleResult() *notes.LectureResult {
	return &notes.LectureResult{
		Transcript: "a lecture about graphs",
		Keywords:   notes.KeywordList{"graph"},
		Notes:      "## Graphs\n\nTheory: nodes and edges",
		FileInfo:   notes.FileInfo{Name: "graphs.mp3", WordCount: 4, EstimatedReadingMinutes: 1},
	}
}

func TestNewStateStartsOnUpload(t *testing.T) {
	s := NewState()
	if s.Page() != PageUpload || s.Result() != nil {
		t.Fatalf("new state = %v/%v, want upload/nil", s.Page(), s.Result())
	}
}

func TestStateCycle(t *testing.T) {
	s := NewState()
	result := sampleResult()

	if err := s.Complete(result); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if s.Page() != PageResults || s.Result() != result {
		t.Fatalf("after Complete: page=%s result=%v", s.Page(), s.Result())
	}
	if s.View() != PageResults {
		t.Error("View() should stay on results when a result is stored")
	}

	if err := s.NewScan(); err != nil {
		t.Fatalf("NewScan() error = %v", err)
	}
	if s.Page() != PageUpload || s.Result() != nil {
		t.Fatalf("after NewScan: page=%s result=%v", s.Page(), s.Result())
	}

	// The cycle repeats.
	if err := s.Complete(sampleResult()); err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}
}

func TestInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *State) error
		prep func(s *State)
	}{
		{"complete without result", func(s *State) error { return s.Complete(nil) }, nil},
		{"new scan from upload", func(s *State) error { return s.NewScan() }, nil},
		{"complete from results", func(s *State) error { return s.Complete(sampleResult()) }, func(s *State) { _ = s.Complete(sampleResult()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			if tt.prep != nil {
				tt.prep(s)
			}
			before := s.Snapshot()
			if err := tt.run(s); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
				t.Errorf("state changed on rejected transition (-before +after):\n%s", diff)
			}
		})
	}
}

func TestViewGuardsEmptyResults(t *testing.T) {
	s := &State{page: PageResults}
	if got := s.View(); got != PageUpload {
		t.Fatalf("View() = %s, want upload", got)
	}
	if s.Page() != PageUpload {
		t.Error("guard should move the state back to upload")
	}
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name     string
		snap     Snapshot
		wantPage Page
		wantNil  bool
	}{
		{"results with result", Snapshot{Page: PageResults, Result: sampleResult()}, PageResults, false},
		{"results without result", Snapshot{Page: PageResults}, PageUpload, true},
		{"upload drops stray result", Snapshot{Page: PageUpload, Result: sampleResult()}, PageUpload, true},
		{"unknown page", Snapshot{Page: "settings"}, PageUpload, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Restore(tt.snap)
			if s.Page() != tt.wantPage {
				t.Errorf("Page() = %s, want %s", s.Page(), tt.wantPage)
			}
			if (s.Result() == nil) != tt.wantNil {
				t.Errorf("Result() nil = %v, want %v", s.Result() == nil, tt.wantNil)
			}
		})
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := NewState()
	if err := s.Complete(sampleResult()); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(s.Snapshot(), Restore(snap).Snapshot()); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}
}
