package model

import (
	"github.com/Astemirdum/shareit/pkg/datetime"
)

type Item struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Available   bool   `json:"available" db:"available"`
	OwnerID     int64  `json:"-" db:"owner_id"`
	RequestID   *int64 `json:"requestId" db:"request_id"`
}

type ItemCreate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type ItemUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (u ItemUpdate) Apply(item Item) Item {
	if u.Name != nil && *u.Name != "" {
		item.Name = *u.Name
	}
	if u.Description != nil && *u.Description != "" {
		item.Description = *u.Description
	}
	if u.Available != nil {
		item.Available = *u.Available
	}
	return item
}

// ItemView is an item with the booking summaries shown to its owner and its comments.
type ItemView struct {
	Item
	LastBooking *BookingSummary `json:"lastBooking"`
	NextBooking *BookingSummary `json:"nextBooking"`
	Comments    []Comment       `json:"comments"`
}

type Comment struct {
	ID         int64             `json:"id"`
	Text       string            `json:"text"`
	ItemID     int64             `json:"-"`
	AuthorName string            `json:"authorName"`
	Created    datetime.DateTime `json:"created"`
}

type CommentCreate struct {
	Text string `json:"text"`
}

type NewComment struct {
	Text     string
	ItemID   int64
	AuthorID int64
	Created  datetime.DateTime
}
