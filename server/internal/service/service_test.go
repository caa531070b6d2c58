package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/pkg/kafka"
	"github.com/Astemirdum/shareit/server/internal/model"
	repo_mocks "github.com/Astemirdum/shareit/server/internal/repository/mocks"
	"github.com/Astemirdum/shareit/server/internal/service"
)

var now = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type repoMock struct {
	*repo_mocks.MockTransactor
	*repo_mocks.MockUserRepository
	*repo_mocks.MockItemRepository
	*repo_mocks.MockBookingRepository
	*repo_mocks.MockCommentRepository
	*repo_mocks.MockRequestRepository
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.BookingEvent
}

func (p *recordingPublisher) Publish(ev kafka.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	users    *repo_mocks.MockUserRepository
	items    *repo_mocks.MockItemRepository
	bookings *repo_mocks.MockBookingRepository
	comments *repo_mocks.MockCommentRepository
	requests *repo_mocks.MockRequestRepository
	events   *recordingPublisher
	svc      *service.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c := gomock.NewController(t)
	tx := repo_mocks.NewMockTransactor(c)
	tx.EXPECT().
		InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	f := &fixture{
		users:    repo_mocks.NewMockUserRepository(c),
		items:    repo_mocks.NewMockItemRepository(c),
		bookings: repo_mocks.NewMockBookingRepository(c),
		comments: repo_mocks.NewMockCommentRepository(c),
		requests: repo_mocks.NewMockRequestRepository(c),
		events:   &recordingPublisher{},
	}
	repo := repoMock{
		MockTransactor:        tx,
		MockUserRepository:    f.users,
		MockItemRepository:    f.items,
		MockBookingRepository: f.bookings,
		MockCommentRepository: f.comments,
		MockRequestRepository: f.requests,
	}
	f.svc = service.NewService(repo, f.events, zap.NewExample().Named("test"),
		service.WithClock(func() time.Time { return now }))
	return f
}

func dt(t time.Time) *datetime.DateTime {
	d := datetime.New(t)
	return &d
}

func newBooking(id int64, status model.Status, ownerID, bookerID int64, start, end time.Time) model.Booking {
	return model.Booking{
		ID:     id,
		Start:  datetime.New(start),
		End:    datetime.New(end),
		Status: status,
		Item:   model.Item{ID: 10, Name: "drill", Description: "cordless", Available: true, OwnerID: ownerID},
		Booker: model.User{ID: bookerID, Name: "booker", Email: "booker@mail.com"},
	}
}
