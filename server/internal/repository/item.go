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

var itemColumns = []string{"id", "name", "description", "available", "owner_id", "request_id"}

const itemReturning = "returning id, name, description, available, owner_id, request_id"

func (r *repository) CreateItem(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := qb.Insert(itemsTableName).
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(item.Name, item.Description, item.Available, item.OwnerID, item.RequestID).
		Suffix(itemReturning).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	return r.scanItem(ctx, "CreateItem", q, args)
}

func (r *repository) UpdateItem(ctx context.Context, item model.Item) (model.Item, error) {
	q, args, err := qb.Update(itemsTableName).
		Set("name", item.Name).
		Set("description", item.Description).
		Set("available", item.Available).
		Where(sq.Eq{"id": item.ID}).
		Suffix(itemReturning).
		ToSql()
	if err != nil {
		return model.Item{}, err
	}
	return r.scanItem(ctx, "UpdateItem", q, args)
}

func (r *repository) GetItem(ctx context.Context, itemID int64) (model.Item, error) {
	b := qb.Select(itemColumns...).
		From(itemsTableName).
		Where(sq.Eq{"id": itemID})
	if _, ok := txFromContext(ctx); ok {
		b = b.Suffix("for share")
	}
	q, args, err := b.ToSql()
	if err != nil {
		return model.Item{}, err
	}
	return r.scanItem(ctx, "GetItem", q, args)
}

func (r *repository) scanItem(ctx context.Context, op, q string, args []any) (model.Item, error) {
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return model.Item{}, err
	}
	defer rows.Close()

	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Item{}, errs.ErrNotFound
		}
		r.log.Error(op, zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Item{}, err
	}
	return item, nil
}

func (r *repository) ListItemsByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	return r.listItems(ctx, sq.Eq{"owner_id": ownerID})
}

func (r *repository) ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	if len(requestIDs) == 0 {
		return []model.Item{}, nil
	}
	return r.listItems(ctx, sq.Eq{"request_id": requestIDs})
}

func (r *repository) SearchItems(ctx context.Context, text string) ([]model.Item, error) {
	pattern := "%" + text + "%"
	return r.listItems(ctx, sq.And{
		sq.Eq{"available": true},
		sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		},
	})
}

func (r *repository) listItems(ctx context.Context, pred sq.Sqlizer) ([]model.Item, error) {
	q, args, err := qb.Select(itemColumns...).
		From(itemsTableName).
		Where(pred).
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

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}
