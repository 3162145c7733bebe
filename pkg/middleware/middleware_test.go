package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/hcdash/pkg/httpapi"
	"github.com/jacksonlee411/hcdash/pkg/session"
)

var testHeaders = session.Headers{User: "X-User-ID", Role: "X-User-Role", NIP: "X-User-NIP"}

func TestWithSession(t *testing.T) {
	var got session.Session
	var ok bool
	h := WithSession(testHeaders)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-User-ID", "u-7")
	req.Header.Set("X-User-Role", " Manager ")
	req.Header.Set("X-User-NIP", "1987001")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.True(t, ok)
	require.Equal(t, session.Session{UserID: "u-7", Role: session.RoleManager, NIP: "1987001"}, got)
}

func TestWithSession_Anonymous(t *testing.T) {
	var got session.Session
	h := WithSession(testHeaders)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = session.FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.True(t, got.Anonymous())
}

func TestCors_Preflight(t *testing.T) {
	h := Cors([]string{"http://dash.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/directory/api/profiles", nil)
	req.Header.Set("Origin", "http://dash.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "http://dash.test", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/directory/api/profiles", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_MemoryStore(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestsPerPeriod: 2, Store: NewMemoryStore()})(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			var env httpapi.ErrorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			require.Equal(t, "RATE_LIMITED", env.Code)
		}
	}
	require.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := NewRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)

	h := RateLimit(RateLimitConfig{RequestsPerPeriod: 1, Store: store})(okHandler())
	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
}
