package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/gateway/internal/model"
	"github.com/Astemirdum/shareit/pkg/auth"
	"github.com/Astemirdum/shareit/pkg/metrics"
	md "github.com/Astemirdum/shareit/pkg/middleware"
	"github.com/Astemirdum/shareit/pkg/validate"
)

type Handler struct {
	shareitSvc ShareitService
	log        *zap.Logger
	now        func() time.Time
}

type Option func(h *Handler)

func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

func New(svc ShareitService, log *zap.Logger, opts ...Option) *Handler {
	h := &Handler{
		shareitSvc: svc,
		log:        log.Named("handler"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Validator = validate.NewCustomValidator(
		validate.WithStructRule(model.BookingPeriodRule(h.now), model.BookingCreate{}),
	)

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", metrics.Handler())

	api := e.Group("",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		metrics.Middleware("gateway"),
		md.NewRateLimiter(apiRPS),
	)

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.Proxy)
	users.GET("/:userId", h.ProxyWithID("userId"))
	users.PATCH("/:userId", h.UpdateUser)
	users.DELETE("/:userId", h.ProxyWithID("userId"))

	items := api.Group("/items", md.SharerUserID, positiveUserID)
	items.POST("", h.CreateItem)
	items.GET("", h.Proxy)
	items.GET("/search", h.Proxy)
	items.GET("/:itemId", h.ProxyWithID("itemId"))
	items.PATCH("/:itemId", h.UpdateItem)
	items.POST("/:itemId/comment", h.AddComment)

	bookings := api.Group("/bookings", md.SharerUserID, positiveUserID)
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListBookings)
	bookings.GET("/owner", h.ListBookings)
	bookings.GET("/:bookingId", h.ProxyWithID("bookingId"))
	bookings.PATCH("/:bookingId", h.UpdateBookingStatus)

	requests := api.Group("/requests", md.SharerUserID, positiveUserID)
	requests.POST("", h.CreateRequest)
	requests.GET("", h.Proxy)
	requests.GET("/all", h.ListOtherRequests)
	requests.GET("/:requestId", h.ProxyWithID("requestId"))

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Proxy forwards a request that carries no body to check.
func (h *Handler) Proxy(c echo.Context) error {
	return h.forward(c, nil)
}

func (h *Handler) ProxyWithID(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := pathID(c, name); err != nil {
			return err
		}
		return h.forward(c, nil)
	}
}

func (h *Handler) forward(c echo.Context, body []byte) error {
	data, code, err := h.shareitSvc.Forward(c, body)
	if err != nil {
		return echo.NewHTTPError(code, err.Error())
	}
	if len(data) == 0 {
		return c.NoContent(code)
	}
	return c.JSONBlob(code, data)
}

// decode reads the raw body into v and validates it, the raw body is what gets forwarded.
func decode(c echo.Context, v interface{}) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := json.Unmarshal(body, v); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(v); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return body, nil
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return id, nil
}

func positiveUserID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := auth.GetUserID(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, md.MsgMissingUserHeader)
		}
		if id <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, md.MsgInvalidUserHeader)
		}
		return next(c)
	}
}
