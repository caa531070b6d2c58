package shareit

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/gateway/config"
	"github.com/Astemirdum/shareit/pkg/auth"
	"github.com/Astemirdum/shareit/pkg/circuit_breaker"
)

var errUpstream = errors.New("shareit server failure")

type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.ShareitHTTPServer
	cb     circuit_breaker.CircuitBreaker
}

type Option func(s *Service)

func WithClient(client *http.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

func WithCircuitBreaker(cb circuit_breaker.CircuitBreaker) Option {
	return func(s *Service) {
		s.cb = cb
	}
}

func NewService(log *zap.Logger, cfg config.ShareitHTTPServer, opts ...Option) *Service {
	s := &Service{
		log:    log.Named("shareit"),
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg,
		cb:     circuit_breaker.New(100, time.Second, 0.2, 2),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Forward relays the request to the server and returns its body and status as is.
// A nil body forwards the request without one.
func (s *Service) Forward(c echo.Context, body []byte) ([]byte, int, error) {
	var (
		data []byte
		code int
	)
	err := s.cb.Call(func() error {
		var err error
		data, code, err = s.proxy(c, body)
		if err != nil {
			return err
		}
		if code >= http.StatusInternalServerError {
			return errUpstream
		}
		return nil
	})
	switch {
	case err == nil, errors.Is(err, errUpstream):
		return data, code, nil
	case errors.Is(err, circuit_breaker.ErrOpenCB):
		return nil, http.StatusServiceUnavailable, err
	}
	s.log.Warn("forward", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	return nil, http.StatusServiceUnavailable, err
}

func (s *Service) proxy(c echo.Context, body []byte) (data []byte, statusCode int, err error) {
	in := c.Request()
	ur := *in.URL
	ur.Scheme = "http"
	ur.Host = s.cfg.Addr()

	reqBody := io.Reader(http.NoBody)
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(in.Context(), in.Method, ur.String(), reqBody)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	req.Header = in.Header.Clone()
	req.Header.Del(echo.HeaderContentLength)
	auth.SetAuthHeader(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, http.StatusServiceUnavailable, err
	}
	defer resp.Body.Close()

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, http.StatusBadGateway, err
	}
	return data, resp.StatusCode, nil
}
