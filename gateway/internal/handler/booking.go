package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/gateway/internal/model"
)

func (h *Handler) CreateBooking(c echo.Context) error {
	var req model.BookingCreate
	body, err := decode(c, &req)
	if err != nil {
		return err
	}
	return h.forward(c, body)
}

func (h *Handler) UpdateBookingStatus(c echo.Context) error {
	if _, err := pathID(c, "bookingId"); err != nil {
		return err
	}
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "approved must be true or false")
	}
	return h.forward(c, nil)
}

// ListBookings serves both the booker and the owner listing.
func (h *Handler) ListBookings(c echo.Context) error {
	if state := c.QueryParam("state"); state != "" && !model.ValidState(state) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown state: "+state)
	}
	return h.forward(c, nil)
}
