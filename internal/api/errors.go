package api

import (
	"encoding/json"
	"net/http"

	"github.com/classkit/wordcloud/pkg/errors"
)

// errorEnvelope is the JSON error response body.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusForCode maps domain error codes to HTTP status codes.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidWord,
		errors.ErrCodeInvalidTheme,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidViz,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeSessionNotFound,
		errors.ErrCodeSubmissionNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNotOwner:
		return http.StatusForbidden
	case errors.ErrCodeSessionEnded,
		errors.ErrCodeSubmissionLimit:
		return http.StatusConflict
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as a JSON envelope with the mapped status.
// Internal errors keep their detail out of the response body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)

	message := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		message = "internal error"
	}

	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    string(code),
		Message: message,
	}})
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
