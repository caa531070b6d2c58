package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

func (s *Service) CreateItem(ctx context.Context, req model.ItemCreate, ownerID int64) (model.Item, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return model.Item{}, err
	}
	if req.Available == nil {
		return model.Item{}, errs.New(errs.ErrValidation, "item availability is required")
	}
	if req.RequestID != nil {
		ok, err := s.repo.ExistsRequest(ctx, *req.RequestID)
		if err != nil {
			return model.Item{}, errors.Wrap(err, "exists request")
		}
		if !ok {
			return model.Item{}, errs.New(errs.ErrNotFound, "request with id = %d not found", *req.RequestID)
		}
	}
	return s.repo.CreateItem(ctx, model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	})
}

func (s *Service) UpdateItem(ctx context.Context, itemID int64, patch model.ItemUpdate, userID int64) (model.Item, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return model.Item{}, err
	}
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return model.Item{}, err
	}
	if item.OwnerID != userID {
		return model.Item{}, errs.New(errs.ErrPermissionDenied, "user with id = %d is not the owner of item with id = %d", userID, itemID)
	}
	return s.repo.UpdateItem(ctx, patch.Apply(item))
}

// GetItem shows booking summaries only when userID owns the item.
func (s *Service) GetItem(ctx context.Context, itemID, userID int64) (model.ItemView, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return model.ItemView{}, err
	}
	views, err := s.itemViews(ctx, []model.Item{item}, item.OwnerID == userID)
	if err != nil {
		return model.ItemView{}, err
	}
	return views[0], nil
}

func (s *Service) ListOwnItems(ctx context.Context, ownerID int64) ([]model.ItemView, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.itemViews(ctx, items, true)
}

func (s *Service) SearchItems(ctx context.Context, text string) ([]model.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []model.Item{}, nil
	}
	return s.repo.SearchItems(ctx, text)
}

func (s *Service) itemViews(ctx context.Context, items []model.Item, withBookings bool) ([]model.ItemView, error) {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	var (
		bookings []model.Booking
		comments []model.Comment
	)
	g, gctx := errgroup.WithContext(ctx)
	if withBookings {
		g.Go(func() error {
			var err error
			bookings, err = s.repo.ListBookingsByItems(gctx, ids)
			return err
		})
	}
	g.Go(func() error {
		var err error
		comments, err = s.repo.ListCommentsByItems(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bookingsByItem := make(map[int64][]model.Booking, len(items))
	for _, b := range bookings {
		bookingsByItem[b.Item.ID] = append(bookingsByItem[b.Item.ID], b)
	}
	commentsByItem := make(map[int64][]model.Comment, len(items))
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := s.now()
	views := make([]model.ItemView, 0, len(items))
	for _, item := range items {
		view := model.ItemView{
			Item:     item,
			Comments: commentsByItem[item.ID],
		}
		if view.Comments == nil {
			view.Comments = []model.Comment{}
		}
		if withBookings {
			view.LastBooking = model.LastBooking(bookingsByItem[item.ID], now)
			view.NextBooking = model.NextBooking(bookingsByItem[item.ID], now)
		}
		views = append(views, view)
	}
	return views, nil
}

// HasStartedApprovedBooking reports whether userID has an approved booking of itemID that started before now.
func (s *Service) HasStartedApprovedBooking(ctx context.Context, userID, itemID int64, now time.Time) (bool, error) {
	return s.repo.HasStartedApprovedBooking(ctx, userID, itemID, now)
}

func (s *Service) AddComment(ctx context.Context, itemID int64, req model.CommentCreate, userID int64) (model.Comment, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return model.Comment{}, err
	}
	if _, err := s.getItem(ctx, itemID); err != nil {
		return model.Comment{}, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return model.Comment{}, errs.New(errs.ErrValidation, "comment text is required")
	}
	now := s.now()
	ok, err := s.HasStartedApprovedBooking(ctx, userID, itemID, now)
	if err != nil {
		return model.Comment{}, errors.Wrap(err, "check booking")
	}
	if !ok {
		return model.Comment{}, errs.New(errs.ErrNeverBooked, "user %d never booked item %d", userID, itemID)
	}
	return s.repo.CreateComment(ctx, model.NewComment{
		Text:     req.Text,
		ItemID:   itemID,
		AuthorID: userID,
		Created:  datetime.DateTime{Time: now},
	})
}
