package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/auteur/pkg/errors"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch {
	case errors.IsNotFound(&errors.Error{Code: code}):
		return http.StatusNotFound
	case errors.IsInvalid(&errors.Error{Code: code}):
		return http.StatusBadRequest
	}
	switch code {
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeGeneration, errors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func boardNotFound(id string) error {
	return errors.New(errors.ErrCodeBoardNotFound, "board %s not found", id)
}

// contentTypes maps pipeline formats to response content types.
var contentTypes = map[string]string{
	"svg":      "image/svg+xml",
	"overview": "image/svg+xml",
	"html":     "text/html; charset=utf-8",
	"json":     "application/json",
	"dot":      "text/vnd.graphviz",
	"png":      "image/png",
	"pdf":      "application/pdf",
}
