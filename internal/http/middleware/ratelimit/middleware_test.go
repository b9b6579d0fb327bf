package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"painel-social/internal/logx"
)

type stubLimiter struct {
	allow bool
	keys  []string
}

func (s *stubLimiter) Allow(key string) bool {
	s.keys = append(s.keys, key)
	return s.allow
}

func TestMiddleware_AllowedRequestReachesNext(t *testing.T) {
	t.Parallel()

	nextCalled := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled++
		w.WriteHeader(http.StatusCreated)
	})

	lim := &stubLimiter{allow: true}
	h := New(logx.Nop(), nil, lim).Handler()(next)

	r := httptest.NewRequest(http.MethodPost, "http://painel/api/session", nil)
	r.RemoteAddr = "10.0.0.7:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, nextCalled)
	require.Equal(t, []string{"10.0.0.7"}, lim.keys)
}

func TestMiddleware_Rejected_429WithCounterAndMessage(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "login_denied_total", Help: "denied"})

	h := New(logx.Nop(), counter, &stubLimiter{allow: false}).Handler()(next)

	r := httptest.NewRequest(http.MethodPost, "http://painel/api/session", nil)
	r.RemoteAddr = "10.0.0.7:5678"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"error":"muitas tentativas, aguarde um momento"}`, w.Body.String())
	require.Equal(t, float64(1), testutil.ToFloat64(counter))
}

func TestMiddleware_RetryAfterFollowsBucketRate(t *testing.T) {
	t.Parallel()

	clk := newFakeClock(time.Unix(0, 0))
	lim := NewTokenBucket(clk, Config{Rate: 0.2, Burst: 1}) // один токен раз в 5 секунд
	h := New(logx.Nop(), nil, lim).Handler()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "http://painel/api/session", nil)
		r.RemoteAddr = "10.0.0.8:1000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	require.Equal(t, http.StatusOK, do().Code)
	w := do()
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "5", w.Header().Get("Retry-After"))
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1.2.3.4:80":     "1.2.3.4",
		"[::1]:8080":     "::1",
		"not-a-hostport": "not-a-hostport",
		"":               "unknown",
	}
	for addr, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "http://painel/", nil)
		r.RemoteAddr = addr
		require.Equal(t, want, ClientIP(r), "addr %q", addr)
	}
}
