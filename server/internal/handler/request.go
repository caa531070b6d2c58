package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/server/internal/model"
)

const (
	defaultFrom = 0
	defaultSize = 10
)

func (h *Handler) CreateRequest(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.ItemRequestCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	request, err := h.requestSvc.CreateRequest(c.Request().Context(), req, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, request)
}

func (h *Handler) ListOwnRequests(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	requests, err := h.requestSvc.ListOwnRequests(c.Request().Context(), uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *Handler) ListOtherRequests(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	from, err := queryInt(c, "from", defaultFrom)
	if err != nil {
		return err
	}
	size, err := queryInt(c, "size", defaultSize)
	if err != nil {
		return err
	}
	requests, err := h.requestSvc.ListOtherRequests(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *Handler) GetRequest(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return err
	}
	request, err := h.requestSvc.GetRequest(c.Request().Context(), requestID, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, request)
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
