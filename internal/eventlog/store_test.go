package eventlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
)

func runEvents(runID, sessionID string, at time.Time) []pipeline.Event {
	return []pipeline.Event{
		{RunID: runID, SessionID: sessionID, Kind: pipeline.StageStarted, Stage: pipeline.StageTranscribe, At: at},
		{RunID: runID, SessionID: sessionID, Kind: pipeline.StageFailed, Stage: pipeline.StageTranscribe, Error: "stage transcribe: insufficient content", Duration: 2 * time.Second, At: at.Add(2 * time.Second)},
	}
}

func openTestStore(t *testing.T, mode string) *Store {
	t.Helper()
	cfg := config.EventLogConfig{Path: filepath.Join(t.TempDir(), "events.db"), RetentionMode: mode, RetentionDays: 1}
	s, err := Open(context.Background(), cfg, logger.Discard())
	if err != nil {
		t.Fatalf("open event log: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAppendAndList(t *testing.T) {
	for _, mode := range []string{RetentionEphemeral, RetentionSession, RetentionPersistent} {
		t.Run(mode, func(t *testing.T) {
			ctx := context.Background()
			s := openTestStore(t, mode)
			at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

			want := runEvents("run-1", "sess-1", at)
			for _, ev := range append(want, runEvents("run-2", "sess-2", at)...) {
				if err := s.Append(ctx, ev); err != nil {
					t.Fatalf("append: %v", err)
				}
			}

			got, err := s.ListRunEvents(ctx, "run-1")
			if err != nil {
				t.Fatalf("list run events: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("run events mismatch (-want +got):\n%s", diff)
			}

			got, err = s.ListSessionEvents(ctx, "sess-1", 10)
			if err != nil {
				t.Fatalf("list session events: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("session events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSessionEventsLimitKeepsLatest(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, RetentionPersistent)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, ev := range append(runEvents("old", "sess", at), runEvents("new", "sess", at.Add(time.Minute))...) {
		if err := s.Append(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListSessionEvents(ctx, "sess", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].RunID != "new" || got[0].Kind != pipeline.StageStarted {
		t.Fatalf("expected the newest run in order, got %+v", got)
	}
}

func TestPruneByDays(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, RetentionPersistent)

	old := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, ev := range runEvents("old-run", "sess", old) {
		if err := s.Append(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	recent := old.Add(48 * time.Hour)
	for _, ev := range runEvents("new-run", "sess", recent) {
		if err := s.Append(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	s.clock = func() time.Time { return recent.Add(time.Hour) }
	if err := s.Prune(ctx); err != nil {
		t.Fatalf("prune: %v", err)
	}

	if got, _ := s.ListRunEvents(ctx, "old-run"); len(got) != 0 {
		t.Errorf("expected old run pruned, got %d events", len(got))
	}
	if got, _ := s.ListRunEvents(ctx, "new-run"); len(got) != 2 {
		t.Errorf("expected new run kept, got %d events", len(got))
	}
}

func TestSessionRetentionResetsOnOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "events.db")
	cfg := config.EventLogConfig{Path: path, RetentionMode: RetentionSession}

	first, err := Open(ctx, cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	for _, ev := range runEvents("run", "sess", time.Now().UTC()) {
		if err := first.Append(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	_ = first.Close()

	second, err := Open(ctx, cfg, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = second.Close() })

	if got, _ := second.ListRunEvents(ctx, "run"); len(got) != 0 {
		t.Errorf("session retention should start empty, got %d events", len(got))
	}
}

func TestObserverRecordsPipelineEvents(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, RetentionEphemeral)

	obs := s.Observer()
	for _, ev := range runEvents("run", "sess", time.Now().UTC()) {
		obs.OnEvent(ctx, ev)
	}

	got, err := s.ListSessionEvents(ctx, "sess", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
}
