package clock

import (
	"math"
	"time"
)

// Clock supplies "now" and day arithmetic in one configured zone. All due
// dates, holds and fines are derived from it, never from time.Now directly.
type Clock interface {
	Now() time.Time
	Today() time.Time
	AddDays(t time.Time, days int) time.Time
}

type clock struct {
	loc *time.Location
}

func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &clock{loc: loc}
}

func (c *clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns the current date truncated to midnight in the clock's zone.
func (c *clock) Today() time.Time {
	return Midnight(c.Now())
}

func (c *clock) AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// Midnight truncates t to the start of its calendar day, keeping the zone.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole calendar days from a to b
// (negative when b is before a). Both are compared at midnight, so the
// result is an epoch-day difference, immune to DST offsets.
func DaysBetween(a, b time.Time) int {
	am := Midnight(a)
	bm := Midnight(b)
	return int(math.Round(bm.Sub(am).Hours() / 24))
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time                          { return f.T }
func (f Fixed) Today() time.Time                        { return Midnight(f.T) }
func (f Fixed) AddDays(t time.Time, days int) time.Time { return t.AddDate(0, 0, days) }
