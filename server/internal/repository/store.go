package repository

import (
	"context"
	"time"

	"github.com/Astemirdum/shareit/server/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=store.go -destination=mocks/mock.go

// Transactor runs fn in one transaction. Repository calls made with the ctx passed to fn
// join it, nested calls reuse the outer transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUser(ctx context.Context, user model.User) (model.User, error)
	GetUser(ctx context.Context, userID int64) (model.User, error)
	ExistsUser(ctx context.Context, userID int64) (bool, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item model.Item) (model.Item, error)
	UpdateItem(ctx context.Context, item model.Item) (model.Item, error)
	// GetItem locks the row FOR SHARE when called inside a transaction.
	GetItem(ctx context.Context, itemID int64) (model.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error)
	SearchItems(ctx context.Context, text string) ([]model.Item, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking model.NewBooking) (model.Booking, error)
	// GetBooking locks the row FOR UPDATE when called inside a transaction.
	GetBooking(ctx context.Context, bookingID int64) (model.Booking, error)
	ExistsBooking(ctx context.Context, bookingID int64) (bool, error)
	// UpdateBookingStatus writes to only if the stored status is still from.
	UpdateBookingStatus(ctx context.Context, bookingID int64, from, to model.Status) error
	ListBookingsByBooker(ctx context.Context, bookerID int64, filter model.BookingFilter) ([]model.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64, statuses ...model.Status) ([]model.Booking, error)
	ListBookingsByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	HasStartedApprovedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment model.NewComment) (model.Comment, error)
	ListCommentsByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request model.NewItemRequest) (model.ItemRequest, error)
	GetRequest(ctx context.Context, requestID int64) (model.ItemRequest, error)
	ExistsRequest(ctx context.Context, requestID int64) (bool, error)
	ListRequestsByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ListRequestsExcept(ctx context.Context, requesterID int64, offset, limit uint64) ([]model.ItemRequest, error)
}
