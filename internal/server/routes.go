package server

import (
	"encoding/json"
	"net/http"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("POST /new-scan", s.handleNewScan)
	mux.HandleFunc("GET /download/{name}", s.handleDownload)
	mux.HandleFunc("GET /api/session", s.handleSessionJSON)
	mux.HandleFunc("GET /api/session/events", s.handleSessionEvents)
	mux.HandleFunc("GET /health", s.handleHealth)
	if s.cfg.Metrics != nil {
		mux.Handle("GET /metrics", s.cfg.Metrics)
	}
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Setup  string `json:"setup,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if s.cfg.SetupError != nil {
		resp.Status = "degraded"
		resp.Setup = s.cfg.SetupError.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
