package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorEnvelope(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	rec := httptest.NewRecorder()

	err := NewError("invalid_metadata", "metadata\nis invalid", http.StatusUnprocessableEntity).
		WithDetails(map[string]any{"fields": []string{"Title"}})
	WriteError(ctx, rec, err)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{
		"error": "invalid_metadata",
		"message": "metadata is invalid",
		"status": 422,
		"request_id": "req-1",
		"fields": ["Title"]
	}`, rec.Body.String())
}

func TestNewErrorDefaults(t *testing.T) {
	t.Parallel()

	err := NewError(strings.Repeat("x", 100), "boom", 0)
	require.Equal(t, http.StatusInternalServerError, err.Status)
	require.Len(t, err.Code, 80)
	require.Contains(t, err.Error(), "boom")

	details := map[string]any{"a": 1}
	withDetails := err.WithDetails(details)
	details["a"] = 2
	require.Equal(t, 1, withDetails.Details["a"])
}
