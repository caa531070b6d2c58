package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/gateway/internal/model"
)

func (h *Handler) CreateRequest(c echo.Context) error {
	var req model.ItemRequestCreate
	body, err := decode(c, &req)
	if err != nil {
		return err
	}
	return h.forward(c, body)
}

func (h *Handler) ListOtherRequests(c echo.Context) error {
	paging := model.DefaultPaging()
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &paging); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from and size must be integers")
	}
	if err := c.Validate(paging); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return h.forward(c, nil)
}
