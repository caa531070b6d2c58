package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/shareit/pkg/datetime"
	"github.com/Astemirdum/shareit/server/internal/errs"
	"github.com/Astemirdum/shareit/server/internal/model"
)

type bookingRow struct {
	ID              int64     `db:"id"`
	Start           time.Time `db:"start_date"`
	End             time.Time `db:"end_date"`
	Status          string    `db:"status"`
	ItemID          int64     `db:"item_id"`
	ItemName        string    `db:"item_name"`
	ItemDescription string    `db:"item_description"`
	ItemAvailable   bool      `db:"item_available"`
	ItemOwnerID     int64     `db:"item_owner_id"`
	ItemRequestID   *int64    `db:"item_request_id"`
	BookerID        int64     `db:"booker_id"`
	BookerName      string    `db:"booker_name"`
	BookerEmail     string    `db:"booker_email"`
}

func (b bookingRow) toModel() model.Booking {
	return model.Booking{
		ID:     b.ID,
		Start:  datetime.DateTime{Time: b.Start},
		End:    datetime.DateTime{Time: b.End},
		Status: model.Status(b.Status),
		Item: model.Item{
			ID:          b.ItemID,
			Name:        b.ItemName,
			Description: b.ItemDescription,
			Available:   b.ItemAvailable,
			OwnerID:     b.ItemOwnerID,
			RequestID:   b.ItemRequestID,
		},
		Booker: model.User{
			ID:    b.BookerID,
			Name:  b.BookerName,
			Email: b.BookerEmail,
		},
	}
}

func selectBookings() sq.SelectBuilder {
	return qb.Select(
		"b.id", "b.start_date", "b.end_date", "b.status",
		"i.id as item_id", "i.name as item_name", "i.description as item_description",
		"i.available as item_available", "i.owner_id as item_owner_id", "i.request_id as item_request_id",
		"u.id as booker_id", "u.name as booker_name", "u.email as booker_email",
	).
		From(bookingsTableName + " b").
		Join(fmt.Sprintf("%s i on i.id = b.item_id", itemsTableName)).
		Join(fmt.Sprintf("%s u on u.id = b.booker_id", usersTableName))
}

func (r *repository) CreateBooking(ctx context.Context, booking model.NewBooking) (model.Booking, error) {
	q, args, err := qb.Insert(bookingsTableName).
		Columns("start_date", "end_date", "item_id", "booker_id", "status").
		Values(booking.Start, booking.End, booking.ItemID, booking.BookerID, string(booking.Status)).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	var id int64
	if err := r.conn(ctx).QueryRow(ctx, q, args...).Scan(&id); err != nil {
		r.log.Error("CreateBooking", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return model.Booking{}, err
	}
	return r.GetBooking(ctx, id)
}

func (r *repository) GetBooking(ctx context.Context, bookingID int64) (model.Booking, error) {
	b := selectBookings().Where(sq.Eq{"b.id": bookingID})
	if _, ok := txFromContext(ctx); ok {
		b = b.Suffix("for update of b")
	}
	q, args, err := b.ToSql()
	if err != nil {
		return model.Booking{}, err
	}
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return model.Booking{}, err
	}
	defer rows.Close()

	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[bookingRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, errs.ErrNotFound
		}
		return model.Booking{}, err
	}
	return row.toModel(), nil
}

func (r *repository) ExistsBooking(ctx context.Context, bookingID int64) (bool, error) {
	return r.exists(ctx, bookingsTableName, bookingID)
}

func (r *repository) UpdateBookingStatus(ctx context.Context, bookingID int64, from, to model.Status) error {
	q := `
update bookings
	set status = @to
where id = @id and status = @from`
	args := pgx.NamedArgs{
		"id":   bookingID,
		"from": string(from),
		"to":   string(to),
	}
	tag, err := r.conn(ctx).Exec(ctx, q, args)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) ListBookingsByBooker(ctx context.Context, bookerID int64, filter model.BookingFilter) ([]model.Booking, error) {
	b := selectBookings().Where(sq.Eq{"b.booker_id": bookerID})
	b = applyBookingFilter(b, filter).OrderBy("b.start_date desc")
	return r.listBookings(ctx, b)
}

func (r *repository) ListBookingsByOwner(ctx context.Context, ownerID int64, statuses ...model.Status) ([]model.Booking, error) {
	b := selectBookings().Where(sq.Eq{"i.owner_id": ownerID})
	b = applyBookingFilter(b, model.BookingFilter{Statuses: statuses}).OrderBy("b.start_date desc")
	return r.listBookings(ctx, b)
}

func (r *repository) ListBookingsByItems(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return []model.Booking{}, nil
	}
	b := selectBookings().
		Where(sq.Eq{"b.item_id": itemIDs}).
		OrderBy("b.start_date")
	return r.listBookings(ctx, b)
}

func (r *repository) HasStartedApprovedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	q := `
select exists (
	select 1 from bookings
	where booker_id = @booker_id and item_id = @item_id and status = @status and start_date < @now
)`
	args := pgx.NamedArgs{
		"booker_id": bookerID,
		"item_id":   itemID,
		"status":    string(model.StatusApproved),
		"now":       now,
	}
	var ok bool
	if err := r.conn(ctx).QueryRow(ctx, q, args).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func applyBookingFilter(b sq.SelectBuilder, f model.BookingFilter) sq.SelectBuilder {
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		b = b.Where(sq.Eq{"b.status": statuses})
	}
	if f.StartAtOrBefore != nil {
		b = b.Where(sq.LtOrEq{"b.start_date": *f.StartAtOrBefore})
	}
	if f.StartAfter != nil {
		b = b.Where(sq.Gt{"b.start_date": *f.StartAfter})
	}
	if f.EndAfter != nil {
		b = b.Where(sq.Gt{"b.end_date": *f.EndAfter})
	}
	if f.EndBefore != nil {
		b = b.Where(sq.Lt{"b.end_date": *f.EndBefore})
	}
	return b
}

func (r *repository) listBookings(ctx context.Context, b sq.SelectBuilder) ([]model.Booking, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list, err := pgx.CollectRows(rows, pgx.RowToStructByName[bookingRow])
	if err != nil {
		r.log.Error("listBookings", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return nil, err
	}
	bookings := make([]model.Booking, 0, len(list))
	for _, row := range list {
		bookings = append(bookings, row.toModel())
	}
	return bookings, nil
}
