package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		apiError *APIError
		want     string
	}{
		{
			name: "simple message",
			apiError: &APIError{
				StatusCode: http.StatusBadRequest,
				ErrorCode:  "INVALID_REQUEST",
				Message:    "Invalid request format",
			},
			want: "Invalid request format",
		},
		{
			name: "empty message",
			apiError: &APIError{
				StatusCode: http.StatusInternalServerError,
				ErrorCode:  "INTERNAL_ERROR",
				Message:    "",
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.apiError.Error()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAPIError_Render(t *testing.T) {
	tests := []struct {
		name       string
		apiError   *APIError
		wantStatus int
	}{
		{
			name:       "bad request error",
			apiError:   ErrInvalidRequest,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "upload not found",
			apiError:   ErrUploadNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no comparison data",
			apiError:   ErrNoComparisonData,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)

			err := render.Render(w, r, tt.apiError)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestNew(t *testing.T) {
	got := New(http.StatusNotFound, "NOT_FOUND", "thing missing")
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
	assert.Equal(t, "NOT_FOUND", got.ErrorCode)
	assert.Equal(t, "thing missing", got.Message)
	assert.Nil(t, got.Details)
}

func TestNewWithDetails(t *testing.T) {
	details := map[string]string{"field": "sku"}
	got := NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "bad sku", details)
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Equal(t, details, got.Details)
}

func TestErrValidation(t *testing.T) {
	got := ErrValidation("month1", "must be between 1 and 12")
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", got.ErrorCode)

	ve, ok := got.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "month1", ve.Field)
	assert.Equal(t, "must be between 1 and 12", ve.Message)
}

func TestNotFoundError(t *testing.T) {
	got := NotFoundError("order export")
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
	assert.Equal(t, "order export not found", got.Message)
	assert.Equal(t, "order export", got.Details)
}

func TestErrTableLoad(t *testing.T) {
	cause := fmt.Errorf("missing header row")
	got := ErrTableLoad("orders.csv", cause)
	assert.Equal(t, http.StatusUnprocessableEntity, got.StatusCode)
	assert.Equal(t, "TABLE_LOAD_FAILED", got.ErrorCode)
	assert.Contains(t, got.Message, "orders.csv")
	assert.Equal(t, "missing header row", got.Details)
}

func TestFileSystemError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	got := FileSystemError("directory scan", cause)
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
	assert.Contains(t, got.Message, "directory scan")
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, ErrRateLimitExceeded)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", resp.Error.ErrorCode)
}

func TestNewValidationErrors(t *testing.T) {
	got := NewValidationErrors([]ValidationError{
		{Field: "year1", Message: "required"},
		{Field: "year2", Message: "required"},
	})
	assert.Equal(t, http.StatusBadRequest, got.StatusCode)

	ves, ok := got.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, ves.Errors, 2)
}

func TestErrPanic(t *testing.T) {
	got := ErrPanic("boom")
	assert.Equal(t, http.StatusInternalServerError, got.StatusCode)

	rec, ok := got.Details.(PanicRecovery)
	require.True(t, ok)
	assert.Equal(t, "boom", rec.Message)
}
