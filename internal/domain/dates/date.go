// Package dates parses YYYY-MM-DD transaction dates and memoizes the
// result.
//
// Dates are day-granular and carry no timezone. The only arithmetic the
// feature code needs is the signed day count between two dates.
//
// Example usage:
//
//	cache := dates.NewCache(dates.DefaultCapacity)
//	d, err := cache.Parse("2024-03-15")
//	if err != nil {
//		return err // *dates.DateFormatError
//	}
//	days := d.Sub(other)
package dates

import (
	"fmt"
	"time"
)

// Layout is the only accepted input format.
const Layout = "2006-01-02"

const day = 24 * time.Hour

// Date is a calendar day.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns a normalized Date.
func NewDate(year int, month time.Month, dayOfMonth int) Date {
	y, m, d := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Year returns the year.
func (d Date) Year() int { return d.y }

// Month returns the month.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month, 1-31.
func (d Date) Day() int { return d.d }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.time().Format(Layout) }

// Before reports whether d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// Sub returns the number of days from x to d (d - x).
func (d Date) Sub(x Date) int {
	return int(d.time().Sub(x.time()) / day)
}

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// DaysBetween returns |b - a| in days.
func DaysBetween(a, b Date) int {
	n := b.Sub(a)
	if n < 0 {
		return -n
	}
	return n
}

// DateFormatError reports a date string that is not a valid YYYY-MM-DD
// calendar date.
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYY-MM-DD: %v", e.Value, e.Err)
}

func (e *DateFormatError) Unwrap() error { return e.Err }

// Parse parses s without caching.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, &DateFormatError{Value: s, Err: err}
	}
	y, m, d := t.Date()
	return Date{y, m, d}, nil
}
