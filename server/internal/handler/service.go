package handler

import (
	"context"
	"time"

	"github.com/Astemirdum/shareit/server/internal/model"
	"github.com/Astemirdum/shareit/server/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookingService interface {
	CreateBooking(ctx context.Context, req model.CreateBookingRequest, userID int64) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID int64, approved bool, userID int64) (model.Booking, error)
	GetBooking(ctx context.Context, bookingID, userID int64) (model.Booking, error)
	ListBookings(ctx context.Context, userID int64, state string) ([]model.Booking, error)
	ListOwnerBookings(ctx context.Context, ownerID int64, state string) ([]model.Booking, error)
	HasStartedApprovedBooking(ctx context.Context, userID, itemID int64, now time.Time) (bool, error)
}

type UserService interface {
	CreateUser(ctx context.Context, req model.UserCreate) (model.User, error)
	UpdateUser(ctx context.Context, userID int64, patch model.UserUpdate) (model.User, error)
	GetUser(ctx context.Context, userID int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, req model.ItemCreate, ownerID int64) (model.Item, error)
	UpdateItem(ctx context.Context, itemID int64, patch model.ItemUpdate, userID int64) (model.Item, error)
	GetItem(ctx context.Context, itemID, userID int64) (model.ItemView, error)
	ListOwnItems(ctx context.Context, ownerID int64) ([]model.ItemView, error)
	SearchItems(ctx context.Context, text string) ([]model.Item, error)
	AddComment(ctx context.Context, itemID int64, req model.CommentCreate, userID int64) (model.Comment, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, req model.ItemRequestCreate, userID int64) (model.ItemRequest, error)
	ListOwnRequests(ctx context.Context, userID int64) ([]model.ItemRequest, error)
	ListOtherRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error)
	GetRequest(ctx context.Context, requestID, userID int64) (model.ItemRequest, error)
}

var (
	_ BookingService = (*service.Service)(nil)
	_ UserService    = (*service.Service)(nil)
	_ ItemService    = (*service.Service)(nil)
	_ RequestService = (*service.Service)(nil)
)
