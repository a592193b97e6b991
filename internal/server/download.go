package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/nguyentantai21042004/lecture-notes/internal/export"
	"github.com/nguyentantai21042004/lecture-notes/internal/notes"
)

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	format, ok := export.FormatFromName(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown export "+name)
		return
	}

	_, state, err := s.loadSession(w, r)
	if err != nil {
		s.sessionError(w, r, err)
		return
	}
	result := state.Result()
	if result == nil {
		writeError(w, http.StatusNotFound, "no notes to download yet")
		return
	}

	var body []byte
	switch format {
	case export.FormatText:
		body = export.PlainText(result)
	case export.FormatMarkdown:
		body = export.Markdown(result)
	case export.FormatDocx:
		body, err = s.renderDocx(result)
		if err != nil {
			s.logger.Error(r.Context(), "Failed to build %s: %v", name, err)
			writeError(w, http.StatusInternalServerError, "could not build the document")
			return
		}
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// renderDocx builds the document through a temp file, which is always removed.
func (s *Server) renderDocx(result *notes.LectureResult) ([]byte, error) {
	if err := os.MkdirAll(s.cfg.TempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	f, err := os.CreateTemp(s.cfg.TempDir, "export-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := export.WriteDocx(result, path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
