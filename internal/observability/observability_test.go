package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestNewLoggerWritesStructuredJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger("debug", &buf)
	logger.Debug("rendered", zap.Int("tags", 12))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	require.Equal(t, "DEBUG", entries[0]["severity"])
	require.Equal(t, "rendered", entries[0]["message"])
	require.EqualValues(t, 12, entries[0]["tags"])
	require.Contains(t, entries[0], "timestamp")
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger("verbose", &buf)
	logger.Debug("hidden")
	logger.Info("shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	require.Equal(t, "shown", entries[0]["message"])
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	require.Same(t, noopLogger, FromContext(context.Background()))

	logger := zap.NewExample()
	require.Same(t, logger, FromContext(WithLogger(context.Background(), logger)))
	require.Same(t, noopLogger, FromContext(WithLogger(context.Background(), nil)))
}

func TestRequestLoggerRecordsStatusAndRoute(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(InjectLogger(NewLogger("info", &buf)), Trace, RequestLogger)
	r.Get("/_meta/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_meta/unknown", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	require.Equal(t, "WARN", entries[0]["severity"])
	require.Equal(t, "/_meta/{slug}", entries[0]["route"])
	require.EqualValues(t, 404, entries[0]["status"])
	require.EqualValues(t, 7, entries[0]["bytes"])
	require.Equal(t, "GET", entries[0]["method"])
}

func TestRecoveryWritesJSONError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := InjectLogger(NewLogger("info", &buf))(Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"internal_server_error"`)
	require.Contains(t, buf.String(), "panic recovered")
}
