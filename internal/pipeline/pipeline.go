package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

const (
	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

// run tracks the stage in flight so a recovered panic can be attributed.
type run struct {
	id        string
	sessionID string
	stage     Stage
	started   time.Time
}

func (p *implPipeline) Run(ctx context.Context, audioPath, displayName string) (result *notes.LectureResult, err error) {
	r := &run{id: p.newRunID(), sessionID: SessionIDFrom(ctx)}

	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error(ctx, "Run %s panicked in stage %s: %v\n%s", r.id, r.stage, rec, debug.Stack())
			err = &StageError{Stage: r.stage, Err: fmt.Errorf("%w: unexpected panic", ErrProcessingFailed)}
			elapsed := p.clock().Sub(r.started)
			p.metrics.recordStage(ctx, r.stage, outcomeFailed, elapsed.Seconds())
			p.emit(ctx, r, StageFailed, err, elapsed)
			result = nil
		}
		if err != nil {
			p.metrics.recordRun(ctx, outcomeFailed)
			return
		}
		p.metrics.recordRun(ctx, outcomeOK)
	}()

	p.logger.Info(ctx, "Run %s started for %s", r.id, displayName)

	var transcript notes.Transcript
	if err := p.stage(ctx, r, StageTranscribe, func() error {
		text, err := p.transcribe(ctx, audioPath)
		transcript = text
		return err
	}); err != nil {
		return nil, err
	}

	var warnings []string

	keywords := notes.KeywordList{}
	if err := p.stage(ctx, r, StageExtractKeywords, func() error {
		list, err := p.generator.ExtractKeywords(ctx, string(transcript), p.maxKeywords)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrKeywordExtractionFailed, err)
		}
		if len(list) > p.maxKeywords {
			list = list[:p.maxKeywords]
		}
		if list != nil {
			keywords = list
		}
		return nil
	}); err != nil {
		p.logger.Warn(ctx, "Run %s continuing without keywords: %v", r.id, err)
		warnings = append(warnings, "Key concepts could not be extracted for this lecture.")
	}

	var doc notes.Document
	if err := p.stage(ctx, r, StageGenerateNotes, func() error {
		d, err := p.generator.GenerateNotes(ctx, string(transcript))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNoteGenerationFailed, err)
		}
		if strings.TrimSpace(string(d)) == "" {
			return fmt.Errorf("%w: empty notes document", ErrNoteGenerationFailed)
		}
		doc = d
		return nil
	}); err != nil {
		return nil, err
	}

	if _, perr := notes.ParseStrict(doc); errors.Is(perr, notes.ErrUnparseableDocument) {
		p.logger.Warn(ctx, "Run %s: notes have no section headings (grammar %s)", r.id, notes.GrammarVersion)
		warnings = append(warnings, "The generated notes had no section headings and are shown as a single section.")
	}

	result = &notes.LectureResult{
		Transcript: transcript,
		Keywords:   keywords,
		Notes:      doc,
		FileInfo:   notes.NewFileInfo(displayName, transcript),
		Warnings:   warnings,
		CreatedAt:  p.clock().UTC(),
	}

	p.logger.Info(ctx, "Run %s completed: %d words, %d keywords", r.id, result.FileInfo.WordCount, len(keywords))
	return result, nil
}

func (p *implPipeline) transcribe(ctx context.Context, audioPath string) (notes.Transcript, error) {
	text, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranscriptionFailed, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrTranscriptionFailed)
	}
	if n := utf8.RuneCountInString(text); n < p.minChars {
		return "", fmt.Errorf("%w: transcript has %d characters, need at least %d", ErrInsufficientContent, n, p.minChars)
	}
	return notes.Transcript(text), nil
}

// stage runs fn bracketed by started/completed/failed events. Errors come
// back wrapped in a StageError.
func (p *implPipeline) stage(ctx context.Context, r *run, stage Stage, fn func() error) error {
	r.stage = stage
	r.started = p.clock()
	p.emit(ctx, r, StageStarted, nil, 0)

	err := fn()
	elapsed := p.clock().Sub(r.started)

	if err != nil {
		err = &StageError{Stage: stage, Err: err}
		p.logger.Error(ctx, "Run %s: %v", r.id, err)
		p.metrics.recordStage(ctx, stage, outcomeFailed, elapsed.Seconds())
		p.emit(ctx, r, StageFailed, err, elapsed)
		return err
	}

	p.logger.Debug(ctx, "Run %s: stage %s took %s", r.id, stage, elapsed)
	p.metrics.recordStage(ctx, stage, outcomeOK, elapsed.Seconds())
	p.emit(ctx, r, StageCompleted, nil, elapsed)
	return nil
}

func (p *implPipeline) emit(ctx context.Context, r *run, kind EventKind, err error, elapsed time.Duration) {
	ev := Event{
		RunID:     r.id,
		SessionID: r.sessionID,
		Kind:      kind,
		Stage:     r.stage,
		Duration:  elapsed,
		At:        p.clock().UTC(),
	}
	if err != nil {
		ev.Error = err.Error()
	}
	for _, o := range p.observers {
		o.OnEvent(ctx, ev)
	}
}
