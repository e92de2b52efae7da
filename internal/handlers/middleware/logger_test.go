package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	msg  string
	args []any
}

func (l *recordingLogger) Info(msg string, args ...any) {
	l.msg = msg
	l.args = args
}

func Test_LoggerMiddleware(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	l := &recordingLogger{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/teapot", nil)

	LoggerMiddleware(l)(handler).ServeHTTP(w, r)

	require.Equal(t, "got HTTP request", l.msg)

	logged := map[any]any{}
	for i := 0; i+1 < len(l.args); i += 2 {
		logged[l.args[i]] = l.args[i+1]
	}

	assert.Equal(t, http.MethodGet, logged["method"])
	assert.Equal(t, "/teapot", logged["uri"])
	assert.Equal(t, http.StatusTeapot, logged["status"])
	assert.Equal(t, len("short and stout"), logged["size"])
}
