package api

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string, cause error) {
	if cause != nil {
		s.log.Warn().Err(cause).Str("path", r.URL.Path).Msg(message)
	}
	writeJSON(w, status, errorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}
