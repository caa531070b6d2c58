package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/pkg/kafka"
	"github.com/Astemirdum/shareit/pkg/metrics"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

func (s *Service) CreateBooking(ctx context.Context, req model.CreateBookingRequest, userID int64) (model.Booking, error) {
	var booking model.Booking
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		if err := s.checkUser(ctx, userID); err != nil {
			return err
		}
		item, err := s.getItem(ctx, req.ItemID)
		if err != nil {
			return err
		}
		if !item.Available {
			return errs.New(errs.ErrNotAvailable, "item with id = %d is not available for booking", item.ID)
		}
		if item.OwnerID == userID {
			return errs.New(errs.ErrNotFound, "owner can not book own item with id = %d", item.ID)
		}
		if req.Start == nil || req.End == nil {
			return errs.New(errs.ErrValidation, "booking start and end are required")
		}
		if !req.End.After(req.Start.Time) {
			return errs.New(errs.ErrValidation, "booking end %s must be after start %s", req.End, req.Start)
		}
		booking, err = s.repo.CreateBooking(ctx, model.NewBooking{
			ItemID:   item.ID,
			BookerID: userID,
			Start:    req.Start.Time,
			End:      req.End.Time,
			Status:   model.StatusWaiting,
		})
		return err
	})
	if err != nil {
		return model.Booking{}, err
	}

	s.log.Debug("booking created", zap.Int64("booking_id", booking.ID), zap.Int64("item_id", booking.Item.ID))
	s.bookingChanged(booking)
	return booking, nil
}

func (s *Service) UpdateBookingStatus(ctx context.Context, bookingID int64, approved bool, userID int64) (model.Booking, error) {
	var booking model.Booking
	err := s.repo.InTx(ctx, func(ctx context.Context) error {
		current, err := s.getBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := s.checkUser(ctx, userID); err != nil {
			return err
		}
		if current.Item.OwnerID != userID {
			return errs.New(errs.ErrPermissionDenied, "user with id = %d is not the owner of item with id = %d", userID, current.Item.ID)
		}
		next, ok := current.Status.Resolve(approved)
		if !ok {
			return errs.New(errs.ErrValidation, "cannot change status of booking with id = %d from %s", bookingID, current.Status)
		}
		if err := s.repo.UpdateBookingStatus(ctx, bookingID, current.Status, next); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errs.New(errs.ErrValidation, "cannot change status of booking with id = %d from %s", bookingID, current.Status)
			}
			return err
		}
		current.Status = next
		booking = current
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}

	s.log.Debug("booking status changed", zap.Int64("booking_id", booking.ID), zap.String("status", string(booking.Status)))
	s.bookingChanged(booking)
	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, bookingID, userID int64) (model.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return model.Booking{}, err
	}
	if err := s.checkUser(ctx, userID); err != nil {
		return model.Booking{}, err
	}
	if booking.Booker.ID != userID && booking.Item.OwnerID != userID {
		return model.Booking{}, errs.New(errs.ErrNotFound, "booking with id = %d not found for user with id = %d", bookingID, userID)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, userID int64, state string) ([]model.Booking, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	st, err := parseState(state)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBookingsByBooker(ctx, userID, model.NewBookingFilter(st, s.now()))
}

func (s *Service) ListOwnerBookings(ctx context.Context, ownerID int64, state string) ([]model.Booking, error) {
	if err := s.checkUser(ctx, ownerID); err != nil {
		return nil, err
	}
	st, err := parseState(state)
	if err != nil {
		return nil, err
	}
	filter := model.NewBookingFilter(st, s.now())
	bookings, err := s.repo.ListBookingsByOwner(ctx, ownerID, filter.Statuses...)
	if err != nil {
		return nil, err
	}
	return filter.Apply(bookings), nil
}

func parseState(state string) (model.State, error) {
	st, ok := model.ParseState(state)
	if !ok {
		return "", errs.New(errs.ErrValidation, "Unknown state: %s", state)
	}
	return st, nil
}

func (s *Service) bookingChanged(b model.Booking) {
	metrics.IncBookingTransition(string(b.Status))
	err := s.events.Publish(kafka.BookingEvent{
		EventID:   uuid.New(),
		BookingID: b.ID,
		ItemID:    b.Item.ID,
		BookerID:  b.Booker.ID,
		Status:    string(b.Status),
		Timestamp: s.now(),
	})
	if err != nil {
		s.log.Warn("publish booking event", zap.Int64("booking_id", b.ID), zap.Error(err))
	}
}
