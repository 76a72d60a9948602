package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mesh-intelligence/recipecost/pkg/types"
)

func bareServer(limit rate.Limit, burst int) *Server {
	cfg := DefaultConfig()
	cfg.RateLimit = limit
	cfg.RateLimitBurst = burst
	return &Server{config: cfg, rateLimiter: rate.NewLimiter(limit, burst), log: zap.NewNop()}
}

func TestRequestIDMiddleware(t *testing.T) {
	provided := uuid.New().String()
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "generates when missing"},
		{name: "keeps valid id", header: provided, keep: true},
		{name: "replaces invalid id", header: "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := bareServer(100, 200)
			var captured string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				captured = requestIDFrom(r)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			_, err := uuid.Parse(captured)
			require.NoError(t, err)
			assert.Equal(t, captured, rec.Header().Get("X-Request-Id"))
			if tt.keep {
				assert.Equal(t, tt.header, captured)
			} else {
				assert.NotEqual(t, tt.header, captured)
			}
		})
	}
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	s := bareServer(0, 0)
	called := false
	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, ErrCodeRateLimitExceeded, resp.Code)
	assert.True(t, resp.Retryable)
}

func TestRateLimitMiddlewareAllows(t *testing.T) {
	s := bareServer(10, 1)
	handler := s.rateLimitMiddleware(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := bareServer(100, 200)
	handler := s.requestIDMiddleware(s.panicRecoveryMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, ErrCodeInternalError, resp.Code)
	assert.Equal(t, rec.Header().Get("X-Request-Id"), resp.RequestID)
}

func TestResponseWriterKeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusBadRequest)
	_, err := rw.Write([]byte("ok"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rw.Status())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &types.ValidationError{Field: "name", Reason: "empty"}, http.StatusBadRequest, ErrCodeValidationFailed},
		{"invalid id", fmt.Errorf("x: %w", types.ErrInvalidID), http.StatusBadRequest, ErrCodeValidationFailed},
		{"recipe not found", fmt.Errorf("updating: %w", types.ErrRecipeNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"step not found", types.ErrStepNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"in use", types.ErrIngredientInUse, http.StatusConflict, ErrCodeConflict},
		{"dangling", types.ErrDanglingIngredient, http.StatusInternalServerError, ErrCodeInternalError},
		{"other", errors.New("disk full"), http.StatusInternalServerError, ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := statusOf(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestWriteStoreErrorHidesInternalCause(t *testing.T) {
	s := bareServer(100, 200)
	rec := httptest.NewRecorder()
	s.writeStoreError(rec, httptest.NewRequest(http.MethodGet, "/test", nil), errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.NotContains(t, resp.Message, "connection refused")
	assert.True(t, resp.Retryable)
}
