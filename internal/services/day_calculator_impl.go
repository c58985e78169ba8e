package services

import (
	"errors"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// startDateLayouts are tried in order. Zone-less layouts are read in the calculator's location.
var startDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var errUnrecognizedDate = errors.New("unrecognized date format")

// DefaultDayCalculator counts calendar days in a fixed location
type DefaultDayCalculator struct {
	now func() time.Time
	loc *time.Location
}

// NewDayCalculator creates a calculator. now defaults to time.Now and loc to time.Local.
func NewDayCalculator(now func() time.Time, loc *time.Location) DayCalculator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &DefaultDayCalculator{now: now, loc: loc}
}

// DaysSince reduces both the start date and today to their calendar dates and returns
// the absolute difference in days. Comparing UTC midnights keeps DST shifts from
// producing 23- or 25-hour days. The subtraction is done on Unix seconds because a
// time.Duration saturates at roughly 292 years.
func (c *DefaultDayCalculator) DaysSince(start string) (int, error) {
	startDate, err := c.parse(start)
	if err != nil {
		return 0, err
	}

	diff := calendarDate(c.now().In(c.loc)).Unix() - calendarDate(startDate).Unix()
	if diff < 0 {
		diff = -diff
	}
	return int(diff / secondsPerDay), nil
}

func (c *DefaultDayCalculator) parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range startDateLayouts {
		if t, err := time.ParseInLocation(layout, value, c.loc); err == nil {
			return t.In(c.loc), nil
		}
	}
	return time.Time{}, errUnrecognizedDate
}

// calendarDate maps t to UTC midnight of its wall-clock date
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoadLocation resolves a configured IANA zone name. An empty name means the process local zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
