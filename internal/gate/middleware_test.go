package gate_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gatehouse/internal/gate"

	"github.com/stretchr/testify/require"
)

func TestLogRequest_PassesResponseThrough(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, "hello")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://gateway.test/x", nil)

	gate.LogRequest(inner).ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, "expected wrapped status to pass through")
	require.Equal(t, "hello", rec.Body.String(), "expected wrapped body to pass through")
}

func TestResponseWriterWrapper_DefaultsToOK(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	wrapper := &gate.ResponseWriterWrapper{ResponseWriter: rec}

	_, err := wrapper.Write([]byte("implicit"))
	require.NoError(t, err, "writing through wrapper")
	require.Equal(t, http.StatusOK, wrapper.WrittenResponseCode, "expected implicit status to be recorded as 200")
}

func TestRecoverer_ConvertsPanicTo500(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://gateway.test/x", nil)

	gate.Recoverer(inner).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code, "expected panic to become a 500")
}
