package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/lecture-notes/internal/session"
)

const sessionCookie = "lecturenotes_session"

// loadSession resolves the caller's session, issuing a new id when the
// cookie is missing or malformed. Unknown or expired ids start fresh.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (string, *session.State, error) {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			id = c.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
		return id, session.NewState(), nil
	}

	state, err := s.cfg.Sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return id, session.NewState(), nil
	}
	if err != nil {
		return "", nil, err
	}
	return id, state, nil
}

func (s *Server) saveSession(ctx context.Context, id string, state *session.State) error {
	if err := s.cfg.Sessions.Save(ctx, id, state); err != nil {
		s.logger.Error(ctx, "Failed to save session %s: %v", id, err)
		return err
	}
	return nil
}
