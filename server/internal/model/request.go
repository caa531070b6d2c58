package model

import (
	"github.com/Astemirdum/shareit/pkg/datetime"
)

type ItemRequest struct {
	ID          int64             `json:"id"`
	Description string            `json:"description"`
	RequesterID int64             `json:"-"`
	Created     datetime.DateTime `json:"created"`
	Items       []Item            `json:"items"`
}

type ItemRequestCreate struct {
	Description string `json:"description"`
}

type NewItemRequest struct {
	Description string
	RequesterID int64
	Created     datetime.DateTime
}
