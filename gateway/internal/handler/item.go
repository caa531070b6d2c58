package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/gateway/internal/model"
)

func (h *Handler) CreateItem(c echo.Context) error {
	var req model.ItemCreate
	body, err := decode(c, &req)
	if err != nil {
		return err
	}
	return h.forward(c, body)
}

func (h *Handler) UpdateItem(c echo.Context) error {
	if _, err := pathID(c, "itemId"); err != nil {
		return err
	}
	var req model.ItemUpdate
	body, err := decode(c, &req)
	if err != nil {
		return err
	}
	return h.forward(c, body)
}

func (h *Handler) AddComment(c echo.Context) error {
	if _, err := pathID(c, "itemId"); err != nil {
		return err
	}
	var req model.CommentCreate
	body, err := decode(c, &req)
	if err != nil {
		return err
	}
	return h.forward(c, body)
}
