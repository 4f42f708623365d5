package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// TIME POINT - Date-only calendar value (UTC, no time of day)
// =============================================================================

// TimePoint is a calendar date. Every lease computation works on whole days,
// so the time of day is always normalized away.
type TimePoint struct {
	Time time.Time
}

// DateLayout is the wire format for dates in JSON, YAML and the database.
const DateLayout = "2006-01-02"

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to its calendar date.
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return TimePoint{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return FromTime(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return FromTime(tp.normalize().AddDate(0, 0, n)) }
func (tp TimePoint) AddMonths(n int) TimePoint { return FromTime(tp.normalize().AddDate(0, n, 0)) }
func (tp TimePoint) AddYears(n int) TimePoint  { return FromTime(tp.normalize().AddDate(n, 0, 0)) }

// Properties
func (tp TimePoint) Year() int         { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month { return tp.Time.Month() }
func (tp TimePoint) Day() int          { return tp.Time.Day() }
func (tp TimePoint) IsZero() bool      { return tp.Time.IsZero() }

// Quarter returns the calendar quarter (1-4).
func (tp TimePoint) Quarter() int { return (int(tp.Month())-1)/3 + 1 }

func (tp TimePoint) String() string {
	return tp.Time.Format(DateLayout)
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

// DaysBetween returns the signed number of days from `from` to `to`.
func DaysBetween(from, to TimePoint) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

// DaysInclusive counts both endpoints: the same date counts as one day.
func DaysInclusive(from, to TimePoint) int { return DaysBetween(from, to) + 1 }

// YearsBetween converts an inclusive day count to years on a 365-day basis.
func YearsBetween(from, to TimePoint) float64 {
	return float64(DaysInclusive(from, to)) / 365
}

// FullYearsSince counts completed anniversaries of `from` on or before `to`.
// Never negative.
func FullYearsSince(from, to TimePoint) int {
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func MinTime(a, b TimePoint) TimePoint {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxTime(a, b TimePoint) TimePoint {
	if a.After(b) {
		return a
	}
	return b
}

func StartOfYear(year int) TimePoint                    { return NewTimePoint(year, time.January, 1) }
func EndOfYear(year int) TimePoint                      { return NewTimePoint(year, time.December, 31) }
func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }
func EndOfMonth(year int, month time.Month) TimePoint {
	return FromTime(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

// StartOfQuarter returns Jan 1, Apr 1, Jul 1 or Oct 1 of the quarter containing tp.
func StartOfQuarter(tp TimePoint) TimePoint {
	first := time.Month((tp.Quarter()-1)*3 + 1)
	return NewTimePoint(tp.Year(), first, 1)
}

// EndOfQuarter returns the last day of the quarter containing tp.
func EndOfQuarter(tp TimePoint) TimePoint {
	start := StartOfQuarter(tp)
	return EndOfMonth(start.Year(), start.Month()+2)
}
