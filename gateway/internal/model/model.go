package model

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Astemirdum/shareit/pkg/datetime"
)

type BookingCreate struct {
	ItemID *int64             `json:"itemId" validate:"required"`
	Start  *datetime.DateTime `json:"start" validate:"required"`
	End    *datetime.DateTime `json:"end" validate:"required"`
}

// BookingPeriodRule checks that the period lies in the future and start comes before end.
func BookingPeriodRule(now func() time.Time) validator.StructLevelFunc {
	return func(sl validator.StructLevel) {
		b, ok := sl.Current().Interface().(BookingCreate)
		if !ok || b.Start == nil || b.End == nil {
			return
		}
		current := datetime.Naive(now())
		if b.Start.Before(current.Truncate(time.Second)) {
			sl.ReportError(b.Start, "Start", "start", "notpast", "")
		}
		if !b.End.After(current) {
			sl.ReportError(b.End, "End", "end", "future", "")
		}
		if !b.Start.Before(b.End.Time) {
			sl.ReportError(b.End, "End", "end", "gtfield", "Start")
		}
	}
}

type UserCreate struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UserUpdate struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ItemCreate struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type ItemUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Available   *bool   `json:"available"`
}

type CommentCreate struct {
	Text string `json:"text" validate:"required"`
}

type ItemRequestCreate struct {
	Description string `json:"description" validate:"required"`
}

type Paging struct {
	From int `query:"from" validate:"gte=0"`
	Size int `query:"size" validate:"gte=1"`
}

func DefaultPaging() Paging {
	return Paging{From: 0, Size: 10}
}

var states = map[string]struct{}{
	"ALL":      {},
	"CURRENT":  {},
	"PAST":     {},
	"FUTURE":   {},
	"WAITING":  {},
	"REJECTED": {},
}

func ValidState(s string) bool {
	_, ok := states[s]
	return ok
}
