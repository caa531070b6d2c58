package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrNotAvailable     = errors.New("not available")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
	ErrNeverBooked      = errors.New("never booked")
)

// Error carries a caller facing message and unwraps to one of the kinds above.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.kind
}

func New(kind error, format string, args ...any) error {
	return &Error{
		kind: kind,
		msg:  fmt.Sprintf(format, args...),
	}
}
