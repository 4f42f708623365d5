package rent

import (
	"github.com/shopspring/decimal"
	"github.com/warp/lease-engine/generic"
)

// =============================================================================
// PERIOD VALUATOR - Prices one timeline period
// =============================================================================

// balances are the concessions still to be consumed, in period order.
type balances struct {
	franchiseMonthsRemaining decimal.Decimal
	incentiveRemaining       decimal.Decimal
}

type valuator struct {
	in         ScheduleInput
	curve      IndexCurve
	base       decimal.Decimal
	periodType PeriodType
	bal        balances
}

func newValuator(in ScheduleInput, curve IndexCurve) *valuator {
	return &valuator{
		in:         in,
		curve:      curve,
		base:       decimal.NewFromFloat(in.BaseIndexValue),
		periodType: periodTypeFor(in.PaymentFrequency),
		bal: balances{
			franchiseMonthsRemaining: in.FranchiseMonths,
			incentiveRemaining:       in.IncentiveAmount,
		},
	}
}

// value prices tp and consumes franchise/incentive balances.
// Must be called in period order.
func (v *valuator) value(tp timelinePeriod) RentSchedulePeriod {
	start := tp.Billable.Start

	indexValue := v.curve.Resolve(start)
	indexFactor := decimal.NewFromFloat(indexValue).Div(v.base)

	row := RentSchedulePeriod{
		PeriodStart: start,
		PeriodEnd:   tp.Billable.End,
		PeriodType:  v.periodType,
		Year:        start.Year(),
		IndexValue:  generic.Round4(decimal.NewFromFloat(indexValue)),
		IndexFactor: generic.Round6(indexFactor),
	}
	if v.periodType == PeriodQuarter {
		q := start.Quarter()
		row.Quarter = &q
	} else {
		m := int(start.Month())
		row.Month = &m
	}

	row.OfficeRentHT = v.indexed(v.in.OfficeRentHT, tp, indexFactor)
	row.ParkingRentHT = v.indexed(v.in.ParkingRentHT, tp, indexFactor)
	row.OtherCostsHT = v.indexed(v.in.OtherCostsHT, tp, indexFactor)

	growth := v.growthFactor(start)
	row.ChargesHT = v.escalated(v.in.ChargesHT, tp, growth)
	row.TaxesHT = v.escalated(v.in.TaxesHT, tp, growth)

	row.FranchiseHT = v.consumeFranchise(tp, row.OfficeRentHT, row.ParkingRentHT)
	row.IncentivesHT = v.consumeIncentive()

	row.NetRentHT = generic.Round2(generic.SumDecimals(
		row.OfficeRentHT, row.ParkingRentHT, row.OtherCostsHT,
		row.ChargesHT, row.TaxesHT,
		row.FranchiseHT, row.IncentivesHT,
	))
	return row
}

// indexed is round2(amount × proration × indexFactor).
func (v *valuator) indexed(amount decimal.Decimal, tp timelinePeriod, indexFactor decimal.Decimal) decimal.Decimal {
	if tp.BillableDays == 0 || amount.IsZero() {
		return decimal.Zero
	}
	return generic.Round2(prorate(amount.Mul(indexFactor), tp))
}

// escalated is round2(amount × growth × proration). Not indexed.
func (v *valuator) escalated(amount decimal.Decimal, tp timelinePeriod, growth decimal.Decimal) decimal.Decimal {
	if tp.BillableDays == 0 || amount.IsZero() {
		return decimal.Zero
	}
	return generic.Round2(prorate(amount.Mul(growth), tp))
}

// prorate multiplies before dividing to keep exact thirds/sevenths intact
// until the final rounding.
func prorate(amount decimal.Decimal, tp timelinePeriod) decimal.Decimal {
	return amount.
		Mul(decimal.NewFromInt(int64(tp.BillableDays))).
		Div(decimal.NewFromInt(int64(tp.TotalDays)))
}

// growthFactor is (1 + rate)^(completed lease years at date).
func (v *valuator) growthFactor(date generic.TimePoint) decimal.Decimal {
	years := generic.FullYearsSince(v.in.StartDate, date)
	step := generic.One.Add(v.in.ChargesGrowthRate)

	factor := generic.One
	for i := 0; i < years; i++ {
		factor = factor.Mul(step)
	}
	return factor
}

func (v *valuator) consumeFranchise(tp timelinePeriod, office, parking decimal.Decimal) decimal.Decimal {
	monthsEq := tp.MonthsEquivalent
	if !monthsEq.IsPositive() || !v.bal.franchiseMonthsRemaining.IsPositive() {
		return decimal.Zero
	}

	applied := decimal.Min(v.bal.franchiseMonthsRemaining, monthsEq)
	v.bal.franchiseMonthsRemaining = v.bal.franchiseMonthsRemaining.Sub(applied)

	// (office/monthsEq + parking/monthsEq) × applied, divided last.
	return generic.Round2(office.Add(parking).Mul(applied).Div(monthsEq)).Neg()
}

func (v *valuator) consumeIncentive() decimal.Decimal {
	if !v.bal.incentiveRemaining.IsPositive() {
		return decimal.Zero
	}
	amount := generic.Round2(v.bal.incentiveRemaining).Neg()
	v.bal.incentiveRemaining = decimal.Zero
	return amount
}
