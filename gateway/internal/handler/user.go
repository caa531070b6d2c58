package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/gateway/internal/model"
)

func (h *Handler) CreateUser(c echo.Context) error {
	var req model.UserCreate
	body, err := decode(c, &req)
	if err != nil {
		return err
	}
	return h.forward(c, body)
}

func (h *Handler) UpdateUser(c echo.Context) error {
	if _, err := pathID(c, "userId"); err != nil {
		return err
	}
	var req model.UserUpdate
	body, err := decode(c, &req)
	if err != nil {
		return err
	}
	return h.forward(c, body)
}
