package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/redact"
)

// Envelope is the uniform success response body: {"success": true, "data": ...}.
// Paginated listings add a meta block.
type Envelope struct {
	Success bool      `json:"success"`
	Meta    *PageMeta `json:"meta,omitempty"`
	Data    any       `json:"data"`
}

// PageMeta is the pagination block for list responses. Pages is
// ceil(Total/Limit) computed over the same filter that produced the rows.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ErrorEnvelope is the uniform error response body:
// {"success": false, "message": ...}. No internal detail is ever included.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RespondWithData writes a success envelope with the given status and payload.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondWithPage writes a success envelope carrying pagination metadata.
func RespondWithPage(w http.ResponseWriter, r *http.Request, status int, meta PageMeta, data any) {
	writeJSON(w, status, Envelope{Success: true, Meta: &meta, Data: data})
}

// RespondWithError writes an error envelope with the given status and
// user-facing message. The trace ID from the request context is logged for
// correlation but never sent to the client.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", GetTraceID(r.Context()),
		"path", r.URL.Path,
		"method", r.Method)

	writeJSON(w, status, ErrorEnvelope{Success: false, Message: message})
}

// RespondWithErrorAndLog writes an error envelope and logs the underlying
// error. The client sees only the sanitized message; the redacted cause goes
// to the logs, at ERROR level for 5xx and DEBUG otherwise.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	writeJSON(w, status, ErrorEnvelope{Success: false, Message: userMessage})
}

// writeJSON encodes the body with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}
