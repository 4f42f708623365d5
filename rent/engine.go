package rent

import (
	"github.com/shopspring/decimal"
	"github.com/warp/lease-engine/generic"
)

// ComputeLeaseRentSchedule builds the payment schedule and summary for one
// lease. It returns a *generic.ValidationError for invalid input and a
// *generic.TimelineError when the billable window is empty; it never
// returns a partial result.
func ComputeLeaseRentSchedule(in ScheduleInput) (*ScheduleResult, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	capDate := horizonCap(in)
	timeline, err := buildTimeline(in.StartDate, capDate, in.PaymentFrequency)
	if err != nil {
		return nil, err
	}

	curve := NewIndexResolver(in.BaseIndexValue, in.StartDate, in.KnownIndexPoints)
	v := newValuator(in, curve)

	schedule := make([]RentSchedulePeriod, 0, len(timeline))
	total := decimal.Zero
	for _, tp := range timeline {
		row := v.value(tp)
		total = total.Add(row.NetRentHT)
		schedule = append(schedule, row)
	}

	summary := Summary{
		DepositHT:      DepositHT(in),
		YearlyTotals:   AggregateYears(schedule),
		TotalNetRentHT: generic.Round2(total),
		HorizonEnd:     capDate,
	}
	if curve.HasCAGR {
		tcam := generic.Round6(decimal.NewFromFloat(curve.CAGR))
		summary.TCAM = &tcam
	}

	return &ScheduleResult{Summary: summary, Schedule: schedule}, nil
}
