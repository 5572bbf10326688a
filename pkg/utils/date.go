package utils

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format of a calendar day.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// CanonicalDay maps t to midnight UTC of the calendar day t falls on in loc.
// Every stored booking date and every range query goes through it, so two
// instants on the same local day always compare equal.
func CanonicalDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay accepts either a bare "2006-01-02" day, taken as written, or an
// RFC 3339 timestamp, whose day is read in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}

	if day, err := time.Parse(DateLayout, value); err == nil {
		return day, nil
	}

	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return CanonicalDay(ts, loc), nil
}

// DayWindow returns the half-open range [start, end) covering one canonical day.
func DayWindow(day time.Time) (time.Time, time.Time) {
	start := CanonicalDay(day, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// MonthWindow returns the half-open range [start, end) covering a calendar month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// FormatDay renders a canonical day in DateLayout.
func FormatDay(day time.Time) string {
	return day.UTC().Format(DateLayout)
}
