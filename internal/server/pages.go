package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes/internal/audio"
	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
	"github.com/nguyentantai21042004/lecture-notes/internal/pipeline"
	"github.com/nguyentantai21042004/lecture-notes/internal/session"
)

type pageData struct {
	Page       session.Page
	Title      string
	Error      string
	SetupError string
	Accept     string
	Result     *notes.LectureResult
	Preamble   string
	Sections   []notes.Section
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id, state, err := s.loadSession(w, r)
	if err != nil {
		s.sessionError(w, r, err)
		return
	}

	page := state.View()
	if err := s.saveSession(r.Context(), id, state); err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	if page == session.PageResults {
		s.render(w, r, http.StatusOK, s.resultsData(state.Result()))
		return
	}
	s.render(w, r, http.StatusOK, s.uploadData(""))
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	id, state, err := s.loadSession(w, r)
	if err != nil {
		s.sessionError(w, r, err)
		return
	}

	if state.View() != session.PageResults {
		_ = s.saveSession(r.Context(), id, state)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, s.resultsData(state.Result()))
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, state, err := s.loadSession(w, r)
	if err != nil {
		s.sessionError(w, r, err)
		return
	}
	if s.cfg.SetupError != nil {
		s.render(w, r, http.StatusServiceUnavailable, s.uploadData(""))
		return
	}
	if state.View() == session.PageResults {
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadMB<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.render(w, r, http.StatusRequestEntityTooLarge,
				s.uploadData(fmt.Sprintf("The file is larger than the %d MB upload limit.", s.cfg.MaxUploadMB)))
			return
		}
		s.render(w, r, http.StatusBadRequest, s.uploadData("The upload could not be read."))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.render(w, r, http.StatusBadRequest, s.uploadData("Choose an audio file to upload."))
		return
	}
	defer file.Close()

	if !audio.IsSupported(header.Filename) {
		s.render(w, r, http.StatusUnsupportedMediaType,
			s.uploadData("Unsupported file type. Upload one of: "+strings.Join(audio.Extensions, ", ")+"."))
		return
	}

	tmpPath, err := s.saveUpload(file, filepath.Ext(header.Filename))
	if err != nil {
		s.logger.Error(ctx, "Failed to store upload %s: %v", header.Filename, err)
		s.render(w, r, http.StatusInternalServerError, s.uploadData(pipeline.UserMessage(err)))
		return
	}
	defer s.cleanupTempFile(ctx, tmpPath)

	displayName := filepath.Base(header.Filename)
	s.logger.Info(ctx, "Session %s uploaded %s (%d bytes)", id, displayName, header.Size)

	result, err := s.cfg.Pipeline.Run(pipeline.WithSessionID(ctx, id), tmpPath, displayName)
	if err != nil {
		stage, _ := pipeline.FailedStage(err)
		s.logger.Error(ctx, "Session %s: pipeline failed at %s: %v", id, stage, err)
		s.render(w, r, statusForError(err), s.uploadData(pipeline.UserMessage(err)))
		return
	}

	if err := state.Complete(result); err != nil {
		s.logger.Error(ctx, "Session %s: %v", id, err)
		s.render(w, r, http.StatusConflict, s.uploadData(pipeline.UserMessage(err)))
		return
	}
	if err := s.saveSession(ctx, id, state); err != nil {
		s.render(w, r, http.StatusInternalServerError, s.uploadData(pipeline.UserMessage(err)))
		return
	}

	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

func (s *Server) handleNewScan(w http.ResponseWriter, r *http.Request) {
	id, state, err := s.loadSession(w, r)
	if err != nil {
		s.sessionError(w, r, err)
		return
	}

	if err := state.NewScan(); err != nil && !errors.Is(err, session.ErrInvalidTransition) {
		s.sessionError(w, r, err)
		return
	}
	if err := s.saveSession(r.Context(), id, state); err != nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// saveUpload copies the upload into TempDir. The caller removes the file.
func (s *Server) saveUpload(src io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.cfg.TempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	dst, err := os.CreateTemp(s.cfg.TempDir, "upload-*"+strings.ToLower(ext))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return dst.Name(), nil
}

func (s *Server) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInsufficientContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipeline.ErrTranscriptionFailed), errors.Is(err, pipeline.ErrNoteGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) uploadData(msg string) pageData {
	d := pageData{Page: session.PageUpload, Error: msg, Accept: audio.Accept()}
	if s.cfg.SetupError != nil {
		d.SetupError = "The service is not configured: " + s.cfg.SetupError.Error()
	}
	return d
}

func (s *Server) resultsData(result *notes.LectureResult) pageData {
	return pageData{
		Page:     session.PageResults,
		Title:    result.FileInfo.Name,
		Result:   result,
		Preamble: notes.Preamble(result.Notes),
		Sections: notes.Parse(result.Notes),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error(r.Context(), "Failed to render %s page: %v", data.Page, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (s *Server) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "Session lookup failed: %v", err)
	http.Error(w, "session unavailable", http.StatusInternalServerError)
}
