package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

var userColumns = []string{"id", "name", "email"}

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("name", "email").
		Values(user.Name, user.Email).
		Suffix("returning id, name, email").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	return r.scanUser(ctx, "CreateUser", q, args)
}

func (r *repository) UpdateUser(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Update(usersTableName).
		Set("name", user.Name).
		Set("email", user.Email).
		Where(sq.Eq{"id": user.ID}).
		Suffix("returning id, name, email").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	return r.scanUser(ctx, "UpdateUser", q, args)
}

func (r *repository) GetUser(ctx context.Context, userID int64) (model.User, error) {
	q, args, err := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	return r.scanUser(ctx, "GetUser", q, args)
}

func (r *repository) scanUser(ctx context.Context, op, q string, args []any) (model.User, error) {
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, errs.ErrConflict
		}
		return model.User{}, err
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return model.User{}, errs.ErrNotFound
		case isUniqueViolation(err):
			return model.User{}, errs.ErrConflict
		}
		r.log.Error(op, zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.User{}, err
	}
	return user, nil
}

func (r *repository) ExistsUser(ctx context.Context, userID int64) (bool, error) {
	return r.exists(ctx, usersTableName, userID)
}

func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	q, args, err := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (r *repository) DeleteUser(ctx context.Context, userID int64) error {
	q, args, err := qb.Delete(usersTableName).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.conn(ctx).Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
