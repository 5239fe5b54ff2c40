package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewErrorHandler(t *testing.T) {
	handler := NewErrorHandler(testLogger(), true)
	assert.NotNil(t, handler)
	assert.True(t, handler.includeStack)
	assert.NotNil(t, handler.logger)
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "api error with domain code",
			err:        ErrUploadNotFound,
			wantStatus: http.StatusNotFound,
			wantType:   TypeUploadNotFound,
		},
		{
			name:       "no comparison data",
			err:        ErrNoComparisonData,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeNoComparisonData,
		},
		{
			name:       "table load failure",
			err:        ErrTableLoad("orders.csv", fmt.Errorf("bad header")),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeTableLoadFailed,
		},
		{
			name:       "generic not found text",
			err:        fmt.Errorf("report for 2024 not found"),
			wantStatus: http.StatusNotFound,
			wantType:   TypeNotFound,
		},
		{
			name:       "unknown error becomes internal",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewErrorHandler(testLogger(), false)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

			handler.HandleError(w, r, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
			assert.Equal(t, tt.wantType, problem["type"])
			assert.Equal(t, float64(tt.wantStatus), problem["status"])
		})
	}
}

func TestErrorHandler_HandleError_NilError(t *testing.T) {
	handler := NewErrorHandler(testLogger(), false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	handler.HandleError(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestErrorHandler_ContextErrors(t *testing.T) {
	handler := NewErrorHandler(testLogger(), false)

	for _, err := range []error{context.DeadlineExceeded, context.Canceled} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/comparison", nil)

		handler.HandleError(w, r, err)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)

		var problem map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
		assert.Equal(t, TypeTimeout, problem["type"])
	}
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	handler := NewErrorHandler(testLogger(), true)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/sku", nil)

	handler.HandlePanic(w, r, "unexpected nil")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, TypeInternal, problem["type"])
	assert.Equal(t, "unexpected nil", problem["panic"])
	assert.Contains(t, problem, "stack")
}

func TestErrorHandler_Middleware_RecoversPanic(t *testing.T) {
	handler := NewErrorHandler(testLogger(), false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)

	handler.Middleware(next).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorHandler_NotFound(t *testing.T) {
	handler := NewErrorHandler(testLogger(), false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/nope", nil)

	handler.NotFound(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, TypeNotFound, problem["type"])
}

func TestErrorHandler_MethodNotAllowed(t *testing.T) {
	handler := NewErrorHandler(testLogger(), false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/dashboard", nil)

	handler.MethodNotAllowed(w, r)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
