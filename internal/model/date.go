package model

import (
	"fmt"
	"time"
)

// DateLayout is the storage and display format of every date field.
const DateLayout = "2006-01-02"

// Date is a calendar day without time or zone.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string. Out-of-range days such as 2024-02-30
// are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Equal reports whether both dates name the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}
