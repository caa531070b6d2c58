package shareit

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/gateway/config"
	"github.com/Astemirdum/shareit/pkg/auth"
	"github.com/Astemirdum/shareit/pkg/circuit_breaker"
)

func upstreamConfig(t *testing.T, srv *httptest.Server) config.ShareitHTTPServer {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, port, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	return config.ShareitHTTPServer{Host: host, Port: port}
}

func newContext(method, target, body string) echo.Context {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestService_Forward(t *testing.T) {
	t.Parallel()
	var (
		got     *http.Request
		gotBody []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		got = r
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"nope"}`))
	}))
	defer srv.Close()

	s := NewService(zap.NewExample(), upstreamConfig(t, srv))
	c := newContext(http.MethodPatch, "/bookings/5?approved=true", "ignored")
	c.SetRequest(c.Request().WithContext(auth.SetAuthContext(c.Request().Context(), 7)))

	data, code, err := s.Forward(c, []byte(`{"x":1}`))
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, code)
	require.Equal(t, `{"message":"nope"}`, string(data))
	require.Equal(t, circuit_breaker.Closed, s.cb.State())

	require.Equal(t, http.MethodPatch, got.Method)
	require.Equal(t, "/bookings/5", got.URL.Path)
	require.Equal(t, "true", got.URL.Query().Get("approved"))
	require.Equal(t, "7", got.Header.Get(auth.XSharerUserIDHeader))
	require.Equal(t, `{"x":1}`, string(gotBody))
}

func TestService_Forward_OpensOnServerErrors(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"db internal"}`))
	}))
	defer srv.Close()

	cb := circuit_breaker.New(2, time.Minute, 0.5, 1)
	s := NewService(zap.NewExample(), upstreamConfig(t, srv), WithCircuitBreaker(cb))

	data, code, err := s.Forward(newContext(http.MethodGet, "/items", ""), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, `{"message":"db internal"}`, string(data))
	require.Equal(t, circuit_breaker.Open, cb.State())

	_, code, err = s.Forward(newContext(http.MethodGet, "/items", ""), nil)
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
	require.Equal(t, http.StatusServiceUnavailable, code)
}

func TestService_Forward_Unreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := upstreamConfig(t, srv)
	srv.Close()

	s := NewService(zap.NewExample(), cfg, WithClient(&http.Client{Timeout: time.Second}))
	_, code, err := s.Forward(newContext(http.MethodGet, "/users", ""), nil)
	require.Error(t, err)
	require.Equal(t, http.StatusServiceUnavailable, code)
}
