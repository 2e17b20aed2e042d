package feiertage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidMoment is returned when a textual date or time cannot be parsed.
var ErrInvalidMoment = errors.New("invalid moment")

// Layouts accepted for wall clock date-times without zone.
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseMoment parses s into a calendar date. Accepted forms are
//
//	2023-10-03                 calendar date
//	2023-10-03T12:00:00        wall clock date-time, taken as is
//	2023-10-03T01:30:00+02:00  zoned instant (RFC 3339), converted to loc
//	@1696291200                seconds since the Unix epoch, converted to loc
func ParseMoment(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	if rest, ok := strings.CutPrefix(s, "@"); ok {
		sec, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return Date{}, fmt.Errorf("%w %q: bad epoch seconds: %v", ErrInvalidMoment, s, err)
		}
		return DateOf(time.Unix(sec, 0).In(loc)), nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return DateOf(t), nil
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateOf(t.In(loc)), nil
	}
	return Date{}, fmt.Errorf("%w %q: expected YYYY-MM-DD, YYYY-MM-DDThh:mm:ss, RFC 3339 or @<unix seconds>", ErrInvalidMoment, s)
}

// ParseMoment parses s like the package level ParseMoment using the cache's
// location.
func (c *Cache) ParseMoment(s string) (Date, error) {
	return ParseMoment(s, c.loc)
}

// IsHolidayDate reports whether d is a holiday in r.
func (c *Cache) IsHolidayDate(d Date, r Region) bool {
	return c.Holidays(d.Year, r).Contains(d)
}

// IsHoliday reports whether the instant t falls on a holiday in r, using
// the calendar date of t in the cache's location.
func (c *Cache) IsHoliday(t time.Time, r Region) bool {
	return c.IsHolidayDate(DateOf(t.In(c.loc)), r)
}

// IsHolidayLocal reports whether the wall clock date of t is a holiday in
// r. The location of t is not converted.
func (c *Cache) IsHolidayLocal(t time.Time, r Region) bool {
	return c.IsHolidayDate(DateOf(t), r)
}

// IsHolidayUnix reports whether the instant sec seconds after the Unix
// epoch falls on a holiday in r.
func (c *Cache) IsHolidayUnix(sec int64, r Region) bool {
	return c.IsHoliday(time.Unix(sec, 0), r)
}

// IsHolidayString parses s with ParseMoment and reports whether the
// resulting date is a holiday in r.
func (c *Cache) IsHolidayString(s string, r Region) (bool, error) {
	d, err := c.ParseMoment(s)
	if err != nil {
		return false, err
	}
	return c.IsHolidayDate(d, r), nil
}
