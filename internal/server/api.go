package server

import (
	"net/http"

	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-notes/internal/session"
)

// SessionResponse is the JSON view of the caller's session.
type SessionResponse struct {
	SessionID  string            `json:"session_id"`
	Page       session.Page      `json:"page"`
	FileInfo   *notes.FileInfo   `json:"file_info,omitempty"`
	Keywords   notes.KeywordList `json:"keywords,omitempty"`
	Preamble   string            `json:"preamble,omitempty"`
	Sections   []notes.Section   `json:"sections,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
	Transcript notes.Transcript  `json:"transcript,omitempty"`
}

func (s *Server) handleSessionJSON(w http.ResponseWriter, r *http.Request) {
	id, state, err := s.loadSession(w, r)
	if err != nil {
		s.logger.Error(r.Context(), "Session lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	resp := SessionResponse{SessionID: id, Page: state.View()}
	if result := state.Result(); result != nil {
		info := result.FileInfo
		resp.FileInfo = &info
		resp.Keywords = result.Keywords
		resp.Preamble = notes.Preamble(result.Notes)
		resp.Sections = notes.Parse(result.Notes)
		resp.Warnings = result.Warnings
		resp.Transcript = result.Transcript
	}
	writeJSON(w, http.StatusOK, resp)
}

// EventsResponse lists the caller's recorded stage events, oldest first.
type EventsResponse struct {
	SessionID string           `json:"session_id"`
	Events    []pipeline.Event `json:"events"`
}

func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	id, _, err := s.loadSession(w, r)
	if err != nil {
		s.logger.Error(r.Context(), "Session lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "session unavailable")
		return
	}

	resp := EventsResponse{SessionID: id, Events: []pipeline.Event{}}
	if s.cfg.Events != nil {
		events, err := s.cfg.Events.ListSessionEvents(r.Context(), id, 100)
		if err != nil {
			s.logger.Error(r.Context(), "Failed to list events for %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "event log unavailable")
			return
		}
		if events != nil {
			resp.Events = events
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
