package pipeline

import (
	"context"
	"time"
)

// Stage names one remote-call step of a run.
type Stage string

const (
	StageTranscribe      Stage = "transcribe"
	StageExtractKeywords Stage = "extract_keywords"
	StageGenerateNotes   Stage = "generate_notes"
)

// Stages lists the run order.
var Stages = []Stage{StageTranscribe, StageExtractKeywords, StageGenerateNotes}

type EventKind string

const (
	StageStarted   EventKind = "stage_started"
	StageCompleted EventKind = "stage_completed"
	StageFailed    EventKind = "stage_failed"
)

// Event is emitted around every stage of a run.
type Event struct {
	RunID     string        `json:"run_id"`
	SessionID string        `json:"session_id,omitempty"`
	Kind      EventKind     `json:"kind"`
	Stage     Stage         `json:"stage"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	At        time.Time     `json:"at"`
}

// Observer receives events synchronously, in emission order.
type Observer interface {
	OnEvent(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) OnEvent(ctx context.Context, ev Event) { f(ctx, ev) }

type sessionKey struct{}

// WithSessionID tags events emitted during ctx's runs with id.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionIDFrom returns the id stored by WithSessionID.
func SessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
