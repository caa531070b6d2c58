package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

func TestService_ListOtherRequests(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	reqID := int64(4)
	requests := []model.ItemRequest{
		{ID: reqID, Description: "need a drill", RequesterID: otherID, Created: datetime.New(now), Items: []model.Item{}},
		{ID: 3, Description: "need a saw", RequesterID: otherID, Created: datetime.New(now), Items: []model.Item{}},
	}
	answer := model.Item{ID: itemID, Name: "drill", Available: true, OwnerID: ownerID, RequestID: &reqID}

	f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
	f.requests.EXPECT().ListRequestsExcept(gomock.Any(), ownerID, uint64(0), uint64(10)).Return(requests, nil)
	f.items.EXPECT().ListItemsByRequests(gomock.Any(), []int64{4, 3}).Return([]model.Item{answer}, nil)

	got, err := f.svc.ListOtherRequests(context.Background(), ownerID, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, []model.Item{answer}, got[0].Items)
	require.Equal(t, []model.Item{}, got[1].Items)
}

func TestService_GetRequest_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.users.EXPECT().ExistsUser(gomock.Any(), ownerID).Return(true, nil)
	f.requests.EXPECT().GetRequest(gomock.Any(), int64(8)).Return(model.ItemRequest{}, errs.ErrNotFound)

	_, err := f.svc.GetRequest(context.Background(), 8, ownerID)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.EqualError(t, err, "request with id = 8 not found")
}

func TestService_CreateUser_Conflict(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.users.EXPECT().
		CreateUser(gomock.Any(), model.User{Name: "ann", Email: "ann@mail.com"}).
		Return(model.User{}, errs.ErrConflict)

	_, err := f.svc.CreateUser(context.Background(), model.UserCreate{Name: "ann", Email: "ann@mail.com"})
	require.ErrorIs(t, err, errs.ErrConflict)
}
