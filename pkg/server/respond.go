package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/rectile/pkg/errors"
)

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"pdf":  "application/pdf",
	"json": "application/json",
	"dot":  "text/vnd.graphviz; charset=utf-8",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code.Class() {
	case errors.ClassInput:
		return http.StatusBadRequest
	case errors.ClassGeneration:
		return http.StatusUnprocessableEntity
	case errors.ClassUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
		msg = "internal server error"
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: msg, RequestID: RequestID(r.Context())})
}
