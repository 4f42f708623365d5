package rent

import (
	"github.com/shopspring/decimal"
	"github.com/warp/lease-engine/generic"
)

// =============================================================================
// TIMELINE BUILDER - Calendar-aligned billable periods
// =============================================================================

// timelinePeriod is one calendar period and the part of it that is billed.
// Proration is always against the natural (unclipped) anchor length, so a
// half month is billed at half the monthly rate.
type timelinePeriod struct {
	Anchor           generic.Period
	Billable         generic.Period
	TotalDays        int
	BillableDays     int
	MonthsEquivalent decimal.Decimal
}

// Proration is BillableDays / TotalDays.
func (tp timelinePeriod) Proration() decimal.Decimal {
	if tp.TotalDays == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(tp.BillableDays)).Div(decimal.NewFromInt(int64(tp.TotalDays)))
}

// horizonCap is min(EndDate, StartDate + HorizonYears).
func horizonCap(in ScheduleInput) generic.TimePoint {
	return generic.MinTime(in.EndDate, in.StartDate.AddYears(in.HorizonYears))
}

// buildTimeline tiles [start, capDate] with periods of the given cadence.
func buildTimeline(start, capDate generic.TimePoint, freq generic.Frequency) ([]timelinePeriod, error) {
	months := decimal.NewFromInt(int64(freq.MonthsPerPeriod()))

	var periods []timelinePeriod
	anchor := freq.AnchorFor(start)
	for {
		if billable, ok := anchor.Clip(start, capDate); ok {
			total := anchor.Days()
			days := billable.Days()
			periods = append(periods, timelinePeriod{
				Anchor:       anchor,
				Billable:     billable,
				TotalDays:    total,
				BillableDays: days,
				MonthsEquivalent: months.
					Mul(decimal.NewFromInt(int64(days))).
					Div(decimal.NewFromInt(int64(total))),
			})
		}
		if !anchor.End.Before(capDate) {
			break
		}
		anchor = freq.Next(anchor)
	}

	if len(periods) == 0 {
		return nil, &generic.TimelineError{Start: start, Cap: capDate}
	}
	return periods, nil
}
