package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

func (s *Service) CreateRequest(ctx context.Context, req model.ItemRequestCreate, userID int64) (model.ItemRequest, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return model.ItemRequest{}, err
	}
	return s.repo.CreateRequest(ctx, model.NewItemRequest{
		Description: req.Description,
		RequesterID: userID,
		Created:     datetime.DateTime{Time: s.now()},
	})
}

func (s *Service) ListOwnRequests(ctx context.Context, userID int64) ([]model.ItemRequest, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.repo.ListRequestsByRequester(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

func (s *Service) ListOtherRequests(ctx context.Context, userID int64, from, size int) ([]model.ItemRequest, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}
	if from < 0 || size < 1 {
		return nil, errs.New(errs.ErrValidation, "invalid paging from = %d, size = %d", from, size)
	}
	requests, err := s.repo.ListRequestsExcept(ctx, userID, uint64(from), uint64(size))
	if err != nil {
		return nil, err
	}
	return s.withAnswers(ctx, requests)
}

func (s *Service) GetRequest(ctx context.Context, requestID, userID int64) (model.ItemRequest, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return model.ItemRequest{}, err
	}
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.ItemRequest{}, errs.New(errs.ErrNotFound, "request with id = %d not found", requestID)
		}
		return model.ItemRequest{}, err
	}
	requests, err := s.withAnswers(ctx, []model.ItemRequest{request})
	if err != nil {
		return model.ItemRequest{}, err
	}
	return requests[0], nil
}

func (s *Service) withAnswers(ctx context.Context, requests []model.ItemRequest) ([]model.ItemRequest, error) {
	if len(requests) == 0 {
		return requests, nil
	}
	ids := make([]int64, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	items, err := s.repo.ListItemsByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]model.Item, len(requests))
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
		}
	}
	for i := range requests {
		if answers, ok := byRequest[requests[i].ID]; ok {
			requests[i].Items = answers
		} else {
			requests[i].Items = []model.Item{}
		}
	}
	return requests, nil
}
