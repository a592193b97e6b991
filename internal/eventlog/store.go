// Package eventlog records pipeline stage events so a session's run timeline
// can be inspected after the fact.
package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nguyentantai21042004/lecture-notes/internal/config"
	"github.com/nguyentantai21042004/lecture-notes/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
)

const (
	RetentionEphemeral  = "ephemeral"
	RetentionSession    = "session"
	RetentionPersistent = "persistent"

	// memoryLimit bounds the in-process buffer used in ephemeral mode.
	memoryLimit = 1000
)

// Store is a SQLite-backed timeline of pipeline events. In ephemeral mode
// nothing touches disk and the most recent events are kept in memory.
type Store struct {
	db    *sql.DB
	cfg   config.EventLogConfig
	log   logger.Logger
	clock func() time.Time

	mu     sync.Mutex
	memory []pipeline.Event
}

// Open initializes the event log according to config.
func Open(ctx context.Context, cfg config.EventLogConfig, log logger.Logger) (*Store, error) {
	s := &Store{cfg: cfg, log: log, clock: time.Now}
	if cfg.RetentionMode == RetentionEphemeral {
		return s, nil
	}

	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s.db = db

	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if cfg.RetentionMode == RetentionSession {
		// Session retention only spans one process lifetime.
		if err := s.truncate(ctx); err != nil {
			log.Warn(ctx, "Event log reset on start failed: %v", err)
		}
	}
	if err := s.Prune(ctx); err != nil {
		log.Warn(ctx, "Event log prune on start failed: %v", err)
	}

	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    session_id TEXT,
    started_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    session_id TEXT,
    kind TEXT NOT NULL,
    stage TEXT NOT NULL,
    error TEXT,
    duration_ns INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    FOREIGN KEY(run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, id);
CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, id);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *Store) truncate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM events; DELETE FROM runs;`)
	return err
}

// Close releases underlying resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append writes one event, creating its run row on first sight.
func (s *Store) Append(ctx context.Context, ev pipeline.Event) error {
	if ev.At.IsZero() {
		ev.At = s.clock().UTC()
	}

	if s.db == nil {
		s.mu.Lock()
		s.memory = append(s.memory, ev)
		if over := len(s.memory) - memoryLimit; over > 0 {
			s.memory = append(s.memory[:0:0], s.memory[over:]...)
		}
		s.mu.Unlock()
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs(run_id, session_id, started_at) VALUES(?, ?, ?)
		 ON CONFLICT(run_id) DO NOTHING`,
		ev.RunID, ev.SessionID, ev.At.UnixNano()); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO events(run_id, session_id, kind, stage, error, duration_ns, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?)`,
		ev.RunID, ev.SessionID, string(ev.Kind), string(ev.Stage), ev.Error, int64(ev.Duration), ev.At.UnixNano()); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return tx.Commit()
}

// ListRunEvents returns a run's events in emission order.
func (s *Store) ListRunEvents(ctx context.Context, runID string) ([]pipeline.Event, error) {
	if s.db == nil {
		return s.filterMemory(func(ev pipeline.Event) bool { return ev.RunID == runID }, 0), nil
	}
	return s.query(ctx,
		`SELECT run_id, session_id, kind, stage, error, duration_ns, created_at
		 FROM events WHERE run_id = ? ORDER BY id ASC`, runID)
}

// ListSessionEvents returns up to limit of a session's most recent events,
// oldest first.
func (s *Store) ListSessionEvents(ctx context.Context, sessionID string, limit int) ([]pipeline.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	if s.db == nil {
		return s.filterMemory(func(ev pipeline.Event) bool { return ev.SessionID == sessionID }, limit), nil
	}
	return s.query(ctx,
		`SELECT run_id, session_id, kind, stage, error, duration_ns, created_at FROM (
		     SELECT * FROM events WHERE session_id = ? ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`, sessionID, limit)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]pipeline.Event, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []pipeline.Event
	for rows.Next() {
		var (
			ev         pipeline.Event
			kind       string
			stage      string
			sessionID  sql.NullString
			errText    sql.NullString
			durationNs int64
			createdNs  int64
		)
		if err := rows.Scan(&ev.RunID, &sessionID, &kind, &stage, &errText, &durationNs, &createdNs); err != nil {
			return nil, err
		}
		ev.SessionID = sessionID.String
		ev.Kind = pipeline.EventKind(kind)
		ev.Stage = pipeline.Stage(stage)
		ev.Error = errText.String
		ev.Duration = time.Duration(durationNs)
		ev.At = time.Unix(0, createdNs).UTC()
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *Store) filterMemory(keep func(pipeline.Event) bool, limit int) []pipeline.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []pipeline.Event
	for _, ev := range s.memory {
		if keep(ev) {
			out = append(out, ev)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Prune drops runs older than the retention window, with their events.
func (s *Store) Prune(ctx context.Context) error {
	if s.db == nil || s.cfg.RetentionDays <= 0 {
		return nil
	}

	cutoff := s.clock().Add(-time.Duration(s.cfg.RetentionDays) * 24 * time.Hour).UnixNano()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM events WHERE run_id IN (SELECT run_id FROM runs WHERE started_at < ?)`, cutoff); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff); err != nil {
		return err
	}
	return tx.Commit()
}

// Observer adapts the store to pipeline.Observer. Write failures are logged
// and never fail the run.
func (s *Store) Observer() pipeline.Observer {
	return pipeline.ObserverFunc(func(ctx context.Context, ev pipeline.Event) {
		if err := s.Append(context.WithoutCancel(ctx), ev); err != nil {
			s.log.Warn(ctx, "Failed to record %s/%s for run %s: %v", ev.Stage, ev.Kind, ev.RunID, err)
		}
	})
}
