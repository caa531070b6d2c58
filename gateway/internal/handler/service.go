package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Astemirdum/shareit/gateway/internal/service/shareit"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ ShareitService = (*shareit.Service)(nil)

type ShareitService interface {
	Forward(c echo.Context, body []byte) ([]byte, int, error)
}
