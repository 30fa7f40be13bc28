package httpmw

import (
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
}

func TestWithRecover_APIReturnsJSON(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") }),
		WithRequestID,
		WithRecover(logger),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "panic_recovered", hook.LastEntry().Message)
	assert.Equal(t, "kaboom", hook.LastEntry().Data["panic"])
	assert.NotEmpty(t, hook.LastEntry().Data["request_id"])
}

func TestWithRecover_PageReturnsText(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := WithRecover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kaboom") }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestWithAccessLog_RecordsStatusAndBytes(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}),
		WithAccessLog(logger),
		WithRequestID,
	)

	req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "http_request", entry.Message)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, len("short and stout"), entry.Data["bytes"])
	assert.Equal(t, "POST", entry.Data["method"])
	assert.Equal(t, "/tasks", entry.Data["path"])
	assert.Equal(t, "10.0.0.1", entry.Data["remote_ip"])
}
