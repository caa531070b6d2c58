package metrics

import (
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shareit",
		Name:      "http_requests_total",
		Help:      "Handled HTTP requests by route and status.",
	}, []string{"service", "method", "path", "status"})

	BookingTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shareit",
		Name:      "booking_transitions_total",
		Help:      "Bookings that reached a status.",
	}, []string{"status"})
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(HTTPRequests, BookingTransitions)
	})
}

func IncBookingTransition(status string) {
	BookingTransitions.WithLabelValues(status).Inc()
}

// Middleware counts requests by route template so path ids do not blow up cardinality.
func Middleware(service string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
			HTTPRequests.WithLabelValues(service, c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
