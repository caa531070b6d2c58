package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

const (
	ownerID  int64 = 1
	bookerID int64 = 2
	otherID  int64 = 3
	itemID   int64 = 10
)

func TestService_CreateBooking(t *testing.T) {
	t.Parallel()
	start := now.Add(24 * time.Hour)
	end := now.Add(48 * time.Hour)
	availableItem := model.Item{ID: itemID, Name: "drill", Available: true, OwnerID: ownerID}

	type mockBehavior func(f *fixture, req model.CreateBookingRequest)

	tests := []struct {
		name         string
		userID       int64
		req          model.CreateBookingRequest
		mockBehavior mockBehavior
		wantKind     error
		wantMsg      string
	}{
		{
			name:   "ok",
			userID: bookerID,
			req:    model.CreateBookingRequest{ItemID: itemID, Start: dt(start), End: dt(end)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)
				f.items.EXPECT().GetItem(gomock.Any(), itemID).Return(availableItem, nil)
				f.bookings.EXPECT().
					CreateBooking(gomock.Any(), model.NewBooking{
						ItemID:   itemID,
						BookerID: bookerID,
						Start:    start,
						End:      end,
						Status:   model.StatusWaiting,
					}).
					Return(newBooking(5, model.StatusWaiting, ownerID, bookerID, start, end), nil)
			},
		},
		{
			name:   "user not found",
			userID: 99,
			req:    model.CreateBookingRequest{ItemID: itemID, Start: dt(start), End: dt(end)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), int64(99)).Return(false, nil)
			},
			wantKind: errs.ErrNotFound,
			wantMsg:  "user with id = 99 not found",
		},
		{
			name:   "item not found",
			userID: bookerID,
			req:    model.CreateBookingRequest{ItemID: 77, Start: dt(start), End: dt(end)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)
				f.items.EXPECT().GetItem(gomock.Any(), int64(77)).Return(model.Item{}, errs.ErrNotFound)
			},
			wantKind: errs.ErrNotFound,
			wantMsg:  "item with id = 77 not found",
		},
		{
			name:   "item not available",
			userID: bookerID,
			req:    model.CreateBookingRequest{ItemID: itemID, Start: dt(start), End: dt(end)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)
				f.items.EXPECT().GetItem(gomock.Any(), itemID).
					Return(model.Item{ID: itemID, Available: false, OwnerID: ownerID}, nil)
			},
			wantKind: errs.ErrNotAvailable,
		},
		{
			name:   "owner books own item",
			userID: ownerID,
			req:    model.CreateBookingRequest{ItemID: itemID, Start: dt(start), End: dt(end)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
				f.items.EXPECT().GetItem(gomock.Any(), itemID).Return(availableItem, nil)
			},
			wantKind: errs.ErrNotFound,
		},
		{
			name:   "end equals start",
			userID: bookerID,
			req:    model.CreateBookingRequest{ItemID: itemID, Start: dt(start), End: dt(start)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)
				f.items.EXPECT().GetItem(gomock.Any(), itemID).Return(availableItem, nil)
			},
			wantKind: errs.ErrValidation,
		},
		{
			name:   "end before start",
			userID: bookerID,
			req:    model.CreateBookingRequest{ItemID: itemID, Start: dt(end), End: dt(start)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)
				f.items.EXPECT().GetItem(gomock.Any(), itemID).Return(availableItem, nil)
			},
			wantKind: errs.ErrValidation,
		},
		{
			name:   "unavailable wins over own item",
			userID: ownerID,
			req:    model.CreateBookingRequest{ItemID: itemID, Start: dt(start), End: dt(start)},
			mockBehavior: func(f *fixture, req model.CreateBookingRequest) {
				f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
				f.items.EXPECT().GetItem(gomock.Any(), itemID).
					Return(model.Item{ID: itemID, Available: false, OwnerID: ownerID}, nil)
			},
			wantKind: errs.ErrNotAvailable,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			tt.mockBehavior(f, tt.req)

			got, err := f.svc.CreateBooking(context.Background(), tt.req, tt.userID)
			if tt.wantKind != nil {
				require.ErrorIs(t, err, tt.wantKind)
				if tt.wantMsg != "" {
					require.EqualError(t, err, tt.wantMsg)
				}
				require.Empty(t, f.events.events)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.StatusWaiting, got.Status)
			require.Equal(t, bookerID, got.Booker.ID)
			require.Len(t, f.events.events, 1)
			require.Equal(t, "WAITING", f.events.events[0].Status)
			require.Equal(t, int64(5), f.events.events[0].BookingID)
		})
	}
}

func TestService_UpdateBookingStatus(t *testing.T) {
	t.Parallel()
	start := now.Add(24 * time.Hour)
	end := now.Add(48 * time.Hour)
	waiting := newBooking(5, model.StatusWaiting, ownerID, bookerID, start, end)
	approved := newBooking(5, model.StatusApproved, ownerID, bookerID, start, end)
	rejected := newBooking(5, model.StatusRejected, ownerID, bookerID, start, end)

	type mockBehavior func(f *fixture)

	tests := []struct {
		name         string
		userID       int64
		approved     bool
		mockBehavior mockBehavior
		wantStatus   model.Status
		wantKind     error
	}{
		{
			name:     "approve",
			userID:   ownerID,
			approved: true,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(waiting, nil)
				f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
				f.bookings.EXPECT().UpdateBookingStatus(gomock.Any(), int64(5), model.StatusWaiting, model.StatusApproved).Return(nil)
			},
			wantStatus: model.StatusApproved,
		},
		{
			name:     "reject",
			userID:   ownerID,
			approved: false,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(waiting, nil)
				f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
				f.bookings.EXPECT().UpdateBookingStatus(gomock.Any(), int64(5), model.StatusWaiting, model.StatusRejected).Return(nil)
			},
			wantStatus: model.StatusRejected,
		},
		{
			name:     "booking not found",
			userID:   ownerID,
			approved: true,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(model.Booking{}, errs.ErrNotFound)
			},
			wantKind: errs.ErrNotFound,
		},
		{
			name:     "user not found",
			userID:   99,
			approved: true,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(waiting, nil)
				f.users.EXPECT().ExistsUser(gomock.Any(), int64(99)).Return(false, nil)
			},
			wantKind: errs.ErrNotFound,
		},
		{
			name:     "booker is not owner",
			userID:   bookerID,
			approved: true,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(waiting, nil)
				f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)
			},
			wantKind: errs.ErrPermissionDenied,
		},
		{
			name:     "already approved",
			userID:   ownerID,
			approved: true,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(approved, nil)
				f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
			},
			wantKind: errs.ErrValidation,
		},
		{
			name:     "rejected can not be approved",
			userID:   ownerID,
			approved: true,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(rejected, nil)
				f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
			},
			wantKind: errs.ErrValidation,
		},
		{
			name:     "lost concurrent transition",
			userID:   ownerID,
			approved: true,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(waiting, nil)
				f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
				f.bookings.EXPECT().UpdateBookingStatus(gomock.Any(), int64(5), model.StatusWaiting, model.StatusApproved).Return(errs.ErrNotFound)
			},
			wantKind: errs.ErrValidation,
		},
		{
			name:     "store failure",
			userID:   ownerID,
			approved: false,
			mockBehavior: func(f *fixture) {
				f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(model.Booking{}, errors.New("db internal"))
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			tt.mockBehavior(f)

			got, err := f.svc.UpdateBookingStatus(context.Background(), 5, tt.approved, tt.userID)
			if tt.wantStatus == "" {
				require.Error(t, err)
				if tt.wantKind != nil {
					require.ErrorIs(t, err, tt.wantKind)
				}
				require.Empty(t, f.events.events)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, got.Status)
			require.Len(t, f.events.events, 1)
			require.Equal(t, string(tt.wantStatus), f.events.events[0].Status)
		})
	}
}

func TestService_GetBooking(t *testing.T) {
	t.Parallel()
	b := newBooking(5, model.StatusWaiting, ownerID, bookerID, now.Add(time.Hour), now.Add(2*time.Hour))
	tests := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{name: "booker", userID: bookerID},
		{name: "owner", userID: ownerID},
		{name: "stranger", userID: otherID, wantErr: errs.ErrNotFound},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.bookings.EXPECT().GetBooking(gomock.Any(), int64(5)).Return(b, nil)
			f.users.EXPECT().ExistsUser(gomock.Any(), tt.userID).Return(true, nil)

			got, err := f.svc.GetBooking(context.Background(), 5, tt.userID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, b, got)
		})
	}
}

func TestService_ListBookings(t *testing.T) {
	t.Parallel()

	t.Run("unknown state", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)

		_, err := f.svc.ListBookings(context.Background(), bookerID, "FOO")
		require.ErrorIs(t, err, errs.ErrValidation)
		require.EqualError(t, err, "Unknown state: FOO")
	})

	t.Run("state is case sensitive", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)

		_, err := f.svc.ListBookings(context.Background(), bookerID, "future")
		require.EqualError(t, err, "Unknown state: future")
	})

	t.Run("user checked before state", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.users.EXPECT().ExistsUser(gomock.Any(), int64(99)).Return(false, nil)

		_, err := f.svc.ListBookings(context.Background(), 99, "FOO")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("future filter pushed to store", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		want := []model.Booking{newBooking(5, model.StatusApproved, ownerID, bookerID, now.Add(time.Hour), now.Add(2*time.Hour))}
		f.users.EXPECT().ExistsUser(gomock.Any(), bookerID).Return(true, nil)
		f.bookings.EXPECT().
			ListBookingsByBooker(gomock.Any(), bookerID, model.NewBookingFilter(model.StateFuture, now)).
			Return(want, nil)

		got, err := f.svc.ListBookings(context.Background(), bookerID, "FUTURE")
		require.NoError(t, err)
		require.Equal(t, want, got)
	})
}

func TestService_ListOwnerBookings(t *testing.T) {
	t.Parallel()
	hour := time.Hour
	all := []model.Booking{
		newBooking(4, model.StatusWaiting, ownerID, bookerID, now.Add(48*hour), now.Add(72*hour)),
		newBooking(3, model.StatusApproved, ownerID, bookerID, now.Add(-hour), now.Add(hour)),
		newBooking(2, model.StatusRejected, ownerID, otherID, now.Add(-2*hour), now.Add(2*hour)),
		newBooking(1, model.StatusApproved, ownerID, otherID, now.Add(-72*hour), now.Add(-48*hour)),
	}
	tests := []struct {
		state    string
		statuses []model.Status
		stored   []model.Booking
		wantIDs  []int64
	}{
		{state: "CURRENT", stored: all, wantIDs: []int64{3, 2}},
		{state: "PAST", statuses: []model.Status{model.StatusApproved}, stored: []model.Booking{all[1], all[3]}, wantIDs: []int64{1}},
		{state: "FUTURE", statuses: []model.Status{model.StatusApproved, model.StatusWaiting}, stored: []model.Booking{all[0], all[1], all[3]}, wantIDs: []int64{4}},
		{state: "WAITING", statuses: []model.Status{model.StatusWaiting}, stored: []model.Booking{all[0]}, wantIDs: []int64{4}},
		{state: "ALL", stored: all, wantIDs: []int64{4, 3, 2, 1}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.state, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)
			f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
			statuses := make([]interface{}, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				statuses = append(statuses, s)
			}
			f.bookings.EXPECT().ListBookingsByOwner(gomock.Any(), ownerID, statuses...).Return(tt.stored, nil)

			got, err := f.svc.ListOwnerBookings(context.Background(), ownerID, tt.state)
			require.NoError(t, err)
			ids := make([]int64, 0, len(got))
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			require.Equal(t, tt.wantIDs, ids)
		})
	}
}
