package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinBirthYear is the earliest accepted birth year.
const MinBirthYear = 1800

// Date is a calendar date without time or zone.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses YYYY-MM-DD, MM/DD/YYYY or DD.MM.YYYY and validates the result.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, NewFieldError("date", "is required")
	}

	var sep string
	var order [3]int // positions of year, month, day
	switch {
	case strings.Contains(s, "-"):
		sep, order = "-", [3]int{0, 1, 2}
	case strings.Contains(s, "/"):
		sep, order = "/", [3]int{2, 0, 1}
	case strings.Contains(s, "."):
		sep, order = ".", [3]int{2, 1, 0}
	default:
		return Date{}, NewFieldError("date", "%q is not a date, use YYYY-MM-DD", s)
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return Date{}, NewFieldError("date", "%q is not a date, use YYYY-MM-DD", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Date{}, NewFieldError("date", "%q is not numeric", p)
		}
		nums[i] = n
	}

	d := Date{Year: nums[order[0]], Month: nums[order[1]], Day: nums[order[2]]}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate checks the month range and the day against the month length.
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return NewFieldError("month", "must be between 1 and 12, got %d", d.Month)
	}
	if d.Year < 1 {
		return NewFieldError("year", "must be positive, got %d", d.Year)
	}
	if last := DaysIn(d.Year, d.Month); d.Day < 1 || d.Day > last {
		return NewFieldError("day", "must be between 1 and %d for %04d-%02d, got %d", last, d.Year, d.Month, d.Day)
	}
	return nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// AgeOn returns the whole years elapsed between d and on.
func (d Date) AgeOn(on Date) int {
	age := on.Year - d.Year
	if on.Month < d.Month || (on.Month == d.Month && on.Day < d.Day) {
		age--
	}
	return age
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in month of year.
func DaysIn(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
