package day

import (
	"errors"
	"time"
)

var (
	ErrInvalidDay   = errors.New("day: not a calendar date")
	ErrInvalidRange = errors.New("day: end date is before start date")
)

// Format is the wire representation of a calendar date.
const Format = "2006-01-02"

// Day is a single calendar date, always midnight UTC.
type Day struct {
	t time.Time
}

// Parse reads an ISO-8601 date ("2024-06-01").
func Parse(s string) (Day, error) {
	t, err := time.Parse(Format, s)
	if err != nil {
		return Day{}, ErrInvalidDay
	}
	return FromTime(t), nil
}

// FromTime truncates a timestamp to its UTC calendar date.
func FromTime(t time.Time) Day {
	t = t.UTC()
	return Day{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Day) String() string { return d.t.Format(Format) }

func (d Day) Time() time.Time { return d.t }

func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) Next() Day { return Day{t: d.t.AddDate(0, 0, 1)} }

func (d Day) Before(other Day) bool { return d.t.Before(other.t) }

func (d Day) After(other Day) bool { return d.t.After(other.t) }

func (d Day) Equal(other Day) bool { return d.t.Equal(other.t) }

// Range is an inclusive interval of calendar dates. A one-day range has
// Start == End.
type Range struct {
	Start Day
	End   Day
}

func NewRange(start, end Day) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, ErrInvalidRange
	}
	if end.Before(start) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// Days expands the range into its individual dates, in order.
func (r Range) Days() []Day {
	var out []Day
	for d := r.Start; !d.After(r.End); d = d.Next() {
		out = append(out, d)
	}
	return out
}

// Len is the number of dates covered, inclusive on both ends.
func (r Range) Len() int {
	return int(r.End.t.Sub(r.Start.t).Hours()/24) + 1
}

func (r Range) Contains(d Day) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Diff returns the dates present in a but absent from b, preserving a's order.
func Diff(a, b []Day) []Day {
	seen := make(map[Day]struct{}, len(b))
	for _, d := range b {
		seen[d] = struct{}{}
	}
	var out []Day
	for _, d := range a {
		if _, ok := seen[d]; !ok {
			out = append(out, d)
		}
	}
	return out
}
