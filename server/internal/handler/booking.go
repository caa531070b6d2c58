package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/server/internal/model"
)

func (h *Handler) CreateBooking(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	booking, err := h.bookingSvc.CreateBooking(c.Request().Context(), req, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved must be true or false")
	}
	booking, err := h.bookingSvc.UpdateBookingStatus(c.Request().Context(), bookingID, approved, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) GetBooking(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "bookingId")
	if err != nil {
		return err
	}
	booking, err := h.bookingSvc.GetBooking(c.Request().Context(), bookingID, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *Handler) ListBookings(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookingSvc.ListBookings(c.Request().Context(), uid, state(c))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *Handler) ListOwnerBookings(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookingSvc.ListOwnerBookings(c.Request().Context(), uid, state(c))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, bookings)
}

func state(c echo.Context) string {
	if s := c.QueryParam("state"); s != "" {
		return s
	}
	return string(model.StateAll)
}
