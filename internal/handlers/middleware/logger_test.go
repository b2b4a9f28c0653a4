package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozyrev/folio/internal/logger"
)

// recordingSink captures log calls for assertions
type recordingSink struct {
	msgs []string
	args [][]any
}

func (s *recordingSink) Info(msg string, args ...any) {
	s.msgs = append(s.msgs, msg)
	s.args = append(s.args, args)
}

func (s *recordingSink) Warn(msg string, args ...any) {
	s.msgs = append(s.msgs, msg)
	s.args = append(s.args, args)
}

func Test_LoggerMiddleware(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	handler := LoggerMiddleware(sink)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Len(t, sink.msgs, 1, "exactly one line per request")
	assert.Equal(t, "got HTTP request", sink.msgs[0])

	logged := sink.args[0]
	assert.Contains(t, logged, "status")
	assert.Contains(t, logged, http.StatusTeapot)
	assert.Contains(t, logged, "size")
	assert.Contains(t, logged, len("short and stout"))
}

// The real logger must satisfy the middleware's sink interface
func Test_LoggerMiddleware_AcceptsPackageLogger(t *testing.T) {
	t.Parallel()

	handler := LoggerMiddleware(logger.NewNoOp())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
