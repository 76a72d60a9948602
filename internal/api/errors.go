package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

// Error codes as constants
const (
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// writeError writes an ErrorResponse with the request's ID.
func writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID := requestIDFrom(r)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	respondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// statusOf maps a store error to an HTTP status and error code.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, types.ErrInvalidData), errors.Is(err, types.ErrInvalidID):
		return http.StatusBadRequest, ErrCodeValidationFailed
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, types.ErrIngredientInUse):
		return http.StatusConflict, ErrCodeConflict
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// writeStoreError answers a failed store call. Internal failures are logged
// and their cause is not exposed.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.Error("store call failed",
			zap.String("request_id", requestIDFrom(r)),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, r, status, code, "Internal server error", true, nil)
		return
	}

	var details map[string]any
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		details = map[string]any{"field": ve.Field, "reason": ve.Reason}
	}
	writeError(w, r, status, code, err.Error(), false, details)
}

// writeNotFound answers a read that found nothing.
func writeNotFound(w http.ResponseWriter, r *http.Request, err error) {
	writeError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error(), false, nil)
}
