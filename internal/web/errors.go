package web

// errors.go turns handler errors into responses. The technical error is
// logged with the request id; the client gets the mapped user message as a
// JSON body or, for htmx requests, an HTML fragment.

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/crmimport/internal/core"
	"github.com/JonMunkholm/crmimport/internal/logging"
	"github.com/JonMunkholm/crmimport/internal/web/templates"
)

// ErrorResponse is the JSON body of an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

func newErrorResponse(msg core.UserMessage) ErrorResponse {
	return ErrorResponse{Error: msg.Message, Message: msg.Message, Action: msg.Action, Code: msg.Code}
}

// statusFor picks the HTTP status for an error returned by the importer.
func statusFor(err error) int {
	var be *core.BatchError
	switch {
	case errors.Is(err, core.ErrImportInProgress):
		return http.StatusConflict
	case errors.Is(err, core.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrParse),
		errors.Is(err, core.ErrEmptyFile),
		errors.Is(err, core.ErrNoDataRows),
		errors.Is(err, core.ErrNoFile):
		return http.StatusBadRequest
	case errors.As(err, &be):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the user-facing message in the format the
// client asked for.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if isHTMX(r) {
		renderHTML(w, r, statusCode, templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code))
		return
	}
	writeJSON(w, statusCode, newErrorResponse(userMsg))
}

// isHTMX checks if the request is an htmx request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsHTML reports whether the response should be an HTML fragment: htmx
// requests, and clients that accept HTML but not JSON.
func wantsHTML(r *http.Request) bool {
	if isHTMX(r) {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}
