package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

type requestRow struct {
	ID          int64     `db:"id"`
	Description string    `db:"description"`
	RequesterID int64     `db:"requester_id"`
	Created     time.Time `db:"created"`
}

func (r requestRow) toModel() model.ItemRequest {
	return model.ItemRequest{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		Created:     datetime.DateTime{Time: r.Created},
		Items:       []model.Item{},
	}
}

var requestColumns = []string{"id", "description", "requester_id", "created"}

func (r *repository) CreateRequest(ctx context.Context, request model.NewItemRequest) (model.ItemRequest, error) {
	q, args, err := qb.Insert(requestsTableName).
		Columns("description", "requester_id", "created").
		Values(request.Description, request.RequesterID, request.Created.Time).
		Suffix("returning id, description, requester_id, created").
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return model.ItemRequest{}, err
	}
	defer rows.Close()

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[requestRow])
	if err != nil {
		return model.ItemRequest{}, err
	}
	return row.toModel(), nil
}

func (r *repository) GetRequest(ctx context.Context, requestID int64) (model.ItemRequest, error) {
	q, args, err := qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return model.ItemRequest{}, err
	}
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return model.ItemRequest{}, err
	}
	defer rows.Close()

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[requestRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ItemRequest{}, errs.ErrNotFound
		}
		return model.ItemRequest{}, err
	}
	return row.toModel(), nil
}

func (r *repository) ExistsRequest(ctx context.Context, requestID int64) (bool, error) {
	return r.exists(ctx, requestsTableName, requestID)
}

func (r *repository) ListRequestsByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	return r.listRequests(ctx, qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.Eq{"requester_id": requesterID}).
		OrderBy("created desc", "id desc"))
}

func (r *repository) ListRequestsExcept(ctx context.Context, requesterID int64, offset, limit uint64) ([]model.ItemRequest, error) {
	return r.listRequests(ctx, qb.Select(requestColumns...).
		From(requestsTableName).
		Where(sq.NotEq{"requester_id": requesterID}).
		OrderBy("created desc", "id desc").
		Offset(offset).
		Limit(limit))
}

func (r *repository) listRequests(ctx context.Context, b sq.SelectBuilder) ([]model.ItemRequest, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[requestRow])
	if err != nil {
		return nil, err
	}
	requests := make([]model.ItemRequest, 0, len(list))
	for _, row := range list {
		requests = append(requests, row.toModel())
	}
	return requests, nil
}
