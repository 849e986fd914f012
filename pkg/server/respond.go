package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/posterforge/pkg/errors"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Param   string      `json:"param,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidParameter, errors.ErrCodeConfiguration,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeNetwork, errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorCode picks the code that decides the status. A RENDER_ERROR caused
// by a bad parameter is the client's fault, so the innermost input code wins.
func errorCode(err error) errors.Code {
	for _, c := range []errors.Code{errors.ErrCodeInvalidParameter, errors.ErrCodeConfiguration} {
		if errors.Is(err, c) {
			return c
		}
	}
	if c := errors.GetCode(err); c != "" {
		return c
	}
	return errors.ErrCodeInternal
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errorCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
	}
	writeJSON(w, status, errorBody{
		Code:    code,
		Message: errors.UserMessage(err),
		Param:   errors.Param(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
