package analytics

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Calendar maps instants to calendar days and hours in the store timezone
type Calendar struct {
	loc *time.Location
}

// NewCalendar creates a calendar for an IANA timezone name, UTC when empty
func NewCalendar(timezone string) (*Calendar, error) {
	if timezone == "" {
		return &Calendar{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid analytics timezone %q: %w", timezone, err)
	}
	return &Calendar{loc: loc}, nil
}

// Location returns the store timezone
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Timezone returns the IANA name of the store timezone
func (c *Calendar) Timezone() string {
	return c.loc.String()
}

// Day returns the local calendar day of t as midnight UTC, the form date columns use
func (c *Calendar) Day(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Hour returns the local hour of day (0-23) of t
func (c *Calendar) Hour(t time.Time) int {
	return t.In(c.loc).Hour()
}

// Bounds returns the instants [start, end) covered by a calendar day
func (c *Calendar) Bounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, c.loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, c.loc)
	return start, end
}

// DateOf converts a calendar day into the date column type
func DateOf(day time.Time) datatypes.Date {
	y, m, d := day.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
