package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

func (s *Service) CreateUser(ctx context.Context, req model.UserCreate) (model.User, error) {
	user, err := s.repo.CreateUser(ctx, model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return model.User{}, errs.New(errs.ErrConflict, "user with email %s already exists", req.Email)
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, userID int64, patch model.UserUpdate) (model.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	updated := patch.Apply(user)
	if updated == user {
		return user, nil
	}
	user, err = s.repo.UpdateUser(ctx, updated)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return model.User{}, errs.New(errs.ErrConflict, "user with email %s already exists", updated.Email)
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, userID int64) (model.User, error) {
	return s.getUser(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.New(errs.ErrNotFound, "user with id = %d not found", userID)
		}
		return err
	}
	return nil
}
