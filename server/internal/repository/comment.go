package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/server/internal/model"
)

type commentRow struct {
	ID         int64     `db:"id"`
	Text       string    `db:"text"`
	ItemID     int64     `db:"item_id"`
	AuthorName string    `db:"author_name"`
	Created    time.Time `db:"created"`
}

func (c commentRow) toModel() model.Comment {
	return model.Comment{
		ID:         c.ID,
		Text:       c.Text,
		ItemID:     c.ItemID,
		AuthorName: c.AuthorName,
		Created:    datetime.DateTime{Time: c.Created},
	}
}

func (r *repository) CreateComment(ctx context.Context, comment model.NewComment) (model.Comment, error) {
	q := `
with c as (
	insert into comments (text, item_id, author_id, created)
	values (@text, @item_id, @author_id, @created)
	returning id, text, item_id, author_id, created
)
select c.id, c.text, c.item_id, u.name as author_name, c.created
from c join users u on u.id = c.author_id`
	args := pgx.NamedArgs{
		"text":      comment.Text,
		"item_id":   comment.ItemID,
		"author_id": comment.AuthorID,
		"created":   comment.Created.Time,
	}
	rows, err := r.conn(ctx).Query(ctx, q, args)
	if err != nil {
		return model.Comment{}, err
	}
	defer rows.Close()

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[commentRow])
	if err != nil {
		r.log.Error("CreateComment", zap.Any("args", args), zap.Error(err))
		return model.Comment{}, err
	}
	return row.toModel(), nil
}

func (r *repository) ListCommentsByItems(ctx context.Context, itemIDs []int64) ([]model.Comment, error) {
	if len(itemIDs) == 0 {
		return []model.Comment{}, nil
	}
	q := `
select c.id, c.text, c.item_id, u.name as author_name, c.created
from comments c join users u on u.id = c.author_id
where c.item_id = any(@item_ids)
order by c.id`
	rows, err := r.conn(ctx).Query(ctx, q, pgx.NamedArgs{"item_ids": itemIDs})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[commentRow])
	if err != nil {
		return nil, err
	}
	comments := make([]model.Comment, 0, len(list))
	for _, row := range list {
		comments = append(comments, row.toModel())
	}
	return comments, nil
}
