// Package datetime holds the zone-less timestamp used on the wire and in storage.
package datetime

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
)

const Layout = "2006-01-02T15:04:05"

// DateTime is a local wall-clock timestamp without zone, kept as UTC internally.
type DateTime struct {
	time.Time
}

func New(t time.Time) DateTime {
	return DateTime{Time: Naive(t)}
}

func Parse(s string) (DateTime, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return DateTime{}, errors.Wrapf(err, "parse datetime %q", s)
	}
	return DateTime{Time: t.Truncate(time.Microsecond)}, nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(Layout)+2)
	b = append(b, '"')
	b = d.AppendFormat(b, Layout)
	b = append(b, '"')
	return b, nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.Errorf("datetime must be a string, got %s", b)
	}
	v, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d DateTime) String() string {
	return d.Format(Layout)
}

// Now returns the current local wall clock as a zone-less value.
func Now() time.Time {
	return Naive(time.Now())
}

// Naive drops the zone of t keeping its wall clock, at microsecond precision.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC).
		Truncate(time.Microsecond)
}
