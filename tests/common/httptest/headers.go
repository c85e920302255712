//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

const requestIDHeader = "X-Request-ID"

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertRequestID checks the response carries a request id and returns it.
func AssertRequestID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	id := w.Header().Get(requestIDHeader)
	assert.NotEmpty(t, id, "response has no %s header", requestIDHeader)
	return id
}

// AssertRateLimitHeaders checks the advertised limit and remaining count.
func AssertRateLimitHeaders(t *testing.T, w *httptest.ResponseRecorder, limit, remaining int64) {
	t.Helper()
	AssertHeaders(t, w, map[string]string{
		"X-RateLimit-Limit":     strconv.FormatInt(limit, 10),
		"X-RateLimit-Remaining": strconv.FormatInt(remaining, 10),
	})
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}
