// Package session holds the per-user page state machine and the stores that
// keep it between requests.
package session

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

type Page string

const (
	PageUpload  Page = "upload"
	PageResults Page = "results"
)

var (
	ErrInvalidTransition = errors.New("invalid page transition")
	ErrNotFound          = errors.New("session not found")
)

// State is owned by exactly one session. It starts on the upload page with
// no result, and only the transitions below change it:
//
//	Upload  --Complete(result)--> Results
//	Results --NewScan()---------> Upload (result cleared)
//	Results --View() w/o result-> Upload
type State struct {
	page   Page
	result *notes.LectureResult
}

func NewState() *State {
	return &State{page: PageUpload}
}

func (s *State) Page() Page {
	return s.page
}

// Result returns the stored result, or nil on the upload page.
func (s *State) Result() *notes.LectureResult {
	return s.result
}

// Complete attaches the result of a successful pipeline run and moves to
// the results page.
func (s *State) Complete(result *notes.LectureResult) error {
	if result == nil {
		return fmt.Errorf("%w: complete without result", ErrInvalidTransition)
	}
	if s.page != PageUpload {
		return fmt.Errorf("%w: complete from %s", ErrInvalidTransition, s.page)
	}
	s.page = PageResults
	s.result = result
	return nil
}

// NewScan discards the current result and returns to the upload page.
func (s *State) NewScan() error {
	if s.page != PageResults {
		return fmt.Errorf("%w: new scan from %s", ErrInvalidTransition, s.page)
	}
	s.page = PageUpload
	s.result = nil
	return nil
}

// View resolves the page to render. A results page without a result falls
// back to upload so an empty results view is never shown.
func (s *State) View() Page {
	if s.page == PageResults && s.result == nil {
		s.page = PageUpload
	}
	return s.page
}

// Snapshot is the serialisable form of a State.
type Snapshot struct {
	Page   Page                 `json:"page"`
	Result *notes.LectureResult `json:"result,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{Page: s.page, Result: s.result}
}

// Restore rebuilds a State from a snapshot. Unknown pages reset to upload.
func Restore(snap Snapshot) *State {
	s := &State{page: snap.Page, result: snap.Result}
	switch s.page {
	case PageUpload:
		s.result = nil
	case PageResults:
		s.View()
	default:
		s.page = PageUpload
		s.result = nil
	}
	return s
}
