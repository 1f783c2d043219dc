package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// handleUV returns the combined result. Mock data is still a 200; only
// unexpected failures produce a 500, with a mock body so clients can render.
func (s *Server) handleUV(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.Load(r.Context())
	if err != nil {
		s.logger.Error("load uv data failed", "error", err, "request_id", requestIDFrom(r.Context()))
		s.writeJSON(w, http.StatusInternalServerError, s.svc.ErrorResult(err, errorChain(err)))
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	points, err := s.svc.LatestByStation(r.Context())
	if err != nil {
		s.logger.Error("load map data failed", "error", err, "request_id", requestIDFrom(r.Context()))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, points)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// errorChain lists err and every error it wraps, outermost first, one per line.
func errorChain(err error) string {
	var lines []string
	for e := err; e != nil; e = errors.Unwrap(e) {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}
