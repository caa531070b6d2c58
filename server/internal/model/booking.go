package model

import (
	"slices"
	"time"

	"github.com/Astemirdum/shareit/pkg/datetime"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// transitions is the only place that defines how a booking status may change.
var transitions = map[Status]map[bool]Status{
	StatusWaiting: {
		true:  StatusApproved,
		false: StatusRejected,
	},
}

// Resolve returns the status reached from s by the owner's decision.
func (s Status) Resolve(approved bool) (Status, bool) {
	next, ok := transitions[s][approved]
	return next, ok
}

func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState matches s exactly, an empty s means ALL.
func ParseState(s string) (State, bool) {
	if s == "" {
		return StateAll, true
	}
	_, ok := states[State(s)]
	return State(s), ok
}

type Booking struct {
	ID     int64             `json:"id"`
	Start  datetime.DateTime `json:"start"`
	End    datetime.DateTime `json:"end"`
	Status Status            `json:"status"`
	Item   Item              `json:"item"`
	Booker User              `json:"booker"`
}

type CreateBookingRequest struct {
	ItemID int64              `json:"itemId"`
	Start  *datetime.DateTime `json:"start"`
	End    *datetime.DateTime `json:"end"`
}

type NewBooking struct {
	ItemID   int64
	BookerID int64
	Start    time.Time
	End      time.Time
	Status   Status
}

type BookingSummary struct {
	ID       int64             `json:"id"`
	BookerID int64             `json:"bookerId"`
	Start    datetime.DateTime `json:"start"`
	End      datetime.DateTime `json:"end"`
}

func (b Booking) Summary() *BookingSummary {
	return &BookingSummary{
		ID:       b.ID,
		BookerID: b.Booker.ID,
		Start:    b.Start,
		End:      b.End,
	}
}

// BookingFilter selects bookings by status and time window. Nil bounds are not applied.
type BookingFilter struct {
	Statuses        []Status
	StartAtOrBefore *time.Time
	StartAfter      *time.Time
	EndAfter        *time.Time
	EndBefore       *time.Time
}

// NewBookingFilter translates a state into the filter evaluated at now.
func NewBookingFilter(state State, now time.Time) BookingFilter {
	switch state {
	case StateCurrent:
		return BookingFilter{StartAtOrBefore: &now, EndAfter: &now}
	case StatePast:
		return BookingFilter{Statuses: []Status{StatusApproved}, EndBefore: &now}
	case StateFuture:
		return BookingFilter{Statuses: []Status{StatusApproved, StatusWaiting}, StartAfter: &now}
	case StateWaiting:
		return BookingFilter{Statuses: []Status{StatusWaiting}}
	case StateRejected:
		return BookingFilter{Statuses: []Status{StatusRejected}}
	}
	return BookingFilter{}
}

func (f BookingFilter) Match(b Booking) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, b.Status) {
		return false
	}
	if f.StartAtOrBefore != nil && b.Start.After(*f.StartAtOrBefore) {
		return false
	}
	if f.StartAfter != nil && !b.Start.After(*f.StartAfter) {
		return false
	}
	if f.EndAfter != nil && !b.End.After(*f.EndAfter) {
		return false
	}
	if f.EndBefore != nil && !b.End.Before(*f.EndBefore) {
		return false
	}
	return true
}

// Apply keeps the order of bookings.
func (f BookingFilter) Apply(bookings []Booking) []Booking {
	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}

// LastBooking is the approved booking with the latest start before now.
func LastBooking(bookings []Booking, now time.Time) *BookingSummary {
	var last *Booking
	for i := range bookings {
		b := &bookings[i]
		if b.Status != StatusApproved || !b.Start.Before(now) {
			continue
		}
		if last == nil || b.Start.After(last.Start.Time) {
			last = b
		}
	}
	if last == nil {
		return nil
	}
	return last.Summary()
}

// NextBooking is the approved booking with the earliest start after now.
func NextBooking(bookings []Booking, now time.Time) *BookingSummary {
	var next *Booking
	for i := range bookings {
		b := &bookings[i]
		if b.Status != StatusApproved || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start.Time) {
			next = b
		}
	}
	if next == nil {
		return nil
	}
	return next.Summary()
}
