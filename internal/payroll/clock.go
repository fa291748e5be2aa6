package payroll

import "time"

// The gym operates on Singapore time, a fixed UTC+8 offset with no DST.
// Every day/week/month boundary in the payroll code goes through one Clock
// so the same reference instant always yields the same window.
var sgt = time.FixedZone("SGT", 8*60*60)

type Clock struct {
	now func() time.Time
	loc *time.Location
}

func NewClock() *Clock {
	return &Clock{now: time.Now, loc: sgt}
}

// NewClockAt pins the clock to a fixed instant. Used by tests and by
// handlers that compute windows for a caller-supplied reference date.
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now, loc: sgt}
}

func (c *Clock) Now() time.Time {
	return c.now()
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// DayBounds returns the half-open UTC interval [start, end) covering the
// SGT calendar day containing t.
func (c *Clock) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// WeekBounds returns the half-open UTC interval covering the SGT week
// containing t, running Monday 00:00 through the following Monday 00:00.
func (c *Clock) WeekBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	daysSinceMonday := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day()-daysSinceMonday, 0, 0, 0, 0, c.loc)
	return monday.UTC(), monday.AddDate(0, 0, 7).UTC()
}

// MonthBounds returns the half-open UTC interval covering the SGT calendar
// month containing t.
func (c *Clock) MonthBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, c.loc)
	return first.UTC(), first.AddDate(0, 1, 0).UTC()
}

// MonthsElapsed returns how many months of the SGT calendar year containing
// t have started, January = 1. Feeds the year-to-date projection.
func (c *Clock) MonthsElapsed(t time.Time) int {
	return int(t.In(c.loc).Month())
}
