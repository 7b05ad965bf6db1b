package web

// errors.go provides unified error response handling for the web layer.
//
// All errors are logged with full technical details server-side and returned
// to clients as user-friendly JSON messages with action suggestions. The flow:
//
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err) or respondErrorStatus for an explicit code
//  3. Error is mapped via importer.MapError to get a user-friendly message
//  4. Technical error + context is logged with request ID for correlation

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Yahia89/meditrans/internal/importer"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError maps err to an HTTP status and writes the JSON error response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	s.respondErrorStatus(w, r, err, statusForError(err))
}

// respondErrorStatus writes the JSON error response with an explicit status.
func (s *Server) respondErrorStatus(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := importer.MapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusForError picks the HTTP status for the engine's sentinel errors.
func statusForError(err error) int {
	switch {
	case errors.Is(err, importer.ErrTemplateNotFound),
		errors.Is(err, importer.ErrSessionNotFound),
		errors.Is(err, importer.ErrRowOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, importer.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, importer.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, importer.ErrUnsupportedFormat),
		errors.Is(err, importer.ErrEmptyFile),
		errors.Is(err, importer.ErrNoValidRows),
		errors.Is(err, importer.ErrUnknownAttribute):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
