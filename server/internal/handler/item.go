package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/server/internal/model"
)

func (h *Handler) CreateItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	var req model.ItemCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.itemSvc.CreateItem(c.Request().Context(), req, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var patch model.ItemUpdate
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.itemSvc.UpdateItem(c.Request().Context(), itemID, patch, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) GetItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	item, err := h.itemSvc.GetItem(c.Request().Context(), itemID, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) ListOwnItems(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	items, err := h.itemSvc.ListOwnItems(c.Request().Context(), uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) SearchItems(c echo.Context) error {
	items, err := h.itemSvc.SearchItems(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddComment(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var req model.CommentCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	comment, err := h.itemSvc.AddComment(c.Request().Context(), itemID, req, uid)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}
