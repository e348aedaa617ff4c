package apperrors

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the response shape shared by every endpoint. Data carries the
// created/updated record, the listed records, or null.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Handler writes error responses and logs them
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// WriteError maps err to its HTTP status and writes a failure envelope
func (h *Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := HTTPStatus(err)
	requestID := r.Header.Get("X-Request-ID")

	h.logger.Warn("request failed",
		zap.Int("status_code", statusCode),
		zap.String("error_code", string(CodeOf(err))),
		zap.String("message", err.Error()),
		zap.String("request_id", requestID),
	)

	writeJSON(w, statusCode, Envelope{
		Success: false,
		Message: err.Error(),
		Data:    nil,
	})
}

// WriteSuccess writes a success envelope with the given message and data
func (h *Handler) WriteSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
