package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/pkg/kafka"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
	"github.com/Astemirdum/shareit/server/internal/repository"
)

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	events kafka.Publisher
	now    func() time.Time
}

type Option func(s *Service)

// WithClock replaces the wall clock used for state filters, summaries and created stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.Repository, events kafka.Publisher, log *zap.Logger, opts ...Option) *Service {
	if events == nil {
		events = kafka.NopPublisher{}
	}
	s := &Service{
		log:    log.Named("service"),
		repo:   repo,
		events: events,
		now:    datetime.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) checkUser(ctx context.Context, userID int64) error {
	ok, err := s.repo.ExistsUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "exists user")
	}
	if !ok {
		return errs.New(errs.ErrNotFound, "user with id = %d not found", userID)
	}
	return nil
}

func (s *Service) getUser(ctx context.Context, userID int64) (model.User, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.New(errs.ErrNotFound, "user with id = %d not found", userID)
		}
		return model.User{}, errors.Wrap(err, "get user")
	}
	return user, nil
}

func (s *Service) getItem(ctx context.Context, itemID int64) (model.Item, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Item{}, errs.New(errs.ErrNotFound, "item with id = %d not found", itemID)
		}
		return model.Item{}, errors.Wrap(err, "get item")
	}
	return item, nil
}

func (s *Service) getBooking(ctx context.Context, bookingID int64) (model.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Booking{}, errs.New(errs.ErrNotFound, "booking with id = %d not found", bookingID)
		}
		return model.Booking{}, errors.Wrap(err, "get booking")
	}
	return booking, nil
}
