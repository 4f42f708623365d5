package generic

import (
	"fmt"
	"strings"
)

// =============================================================================
// PERIOD - A closed range of calendar days
// =============================================================================

// Period is the inclusive date range [Start, End].
//
// Examples:
//   - Calendar month: Mar 1 - Mar 31
//   - Calendar quarter: Apr 1 - Jun 30
//   - Billable slice of a quarter: Mar 6 - Mar 31
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Days returns the inclusive day count, or 0 for an inverted period.
func (p Period) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysInclusive(p.Start, p.End)
}

// Clip returns the overlap of p with [from, to] and whether it is non-empty.
func (p Period) Clip(from, to TimePoint) (Period, bool) {
	clipped := Period{Start: MaxTime(p.Start, from), End: MinTime(p.End, to)}
	return clipped, !clipped.End.Before(clipped.Start)
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// FREQUENCY - Payment cadence and its calendar alignment
// =============================================================================

// Frequency selects the billing granularity of a lease.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
)

// ParseFrequency accepts the canonical names plus a few common aliases.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "mensuel":
		return FrequencyMonthly, nil
	case "quarterly", "quarter", "trimestriel":
		return FrequencyQuarterly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}
}

// Valid reports whether f is one of the supported cadences.
func (f Frequency) Valid() bool {
	return f == FrequencyMonthly || f == FrequencyQuarterly
}

// MonthsPerPeriod is 1 for monthly and 3 for quarterly billing.
func (f Frequency) MonthsPerPeriod() int {
	if f == FrequencyQuarterly {
		return 3
	}
	return 1
}

// AnchorFor returns the calendar-aligned period containing date.
func (f Frequency) AnchorFor(date TimePoint) Period {
	if f == FrequencyQuarterly {
		return Period{Start: StartOfQuarter(date), End: EndOfQuarter(date)}
	}
	return Period{
		Start: StartOfMonth(date.Year(), date.Month()),
		End:   EndOfMonth(date.Year(), date.Month()),
	}
}

// Next returns the anchor period following p for this cadence.
func (f Frequency) Next(p Period) Period {
	return f.AnchorFor(p.Start.AddMonths(f.MonthsPerPeriod()))
}
