/*
Package rent computes lease rent schedules.

PURPOSE:
  Turns a lease's economics (dates, payment cadence, per-period rents,
  indexation data, concessions) into a period-by-period payment schedule
  and yearly/lease-level summaries.

PIPELINE:
  ScheduleInput
    -> Timeline Builder   (timeline.go)   calendar-aligned billable periods
    -> Index Resolver     (index.go)      index level for any date + CAGR
    -> Period Valuator    (valuation.go)  prorate, index, escalate, concessions
    -> Aggregator         (aggregate.go)  yearly totals, deposit
    -> ScheduleResult

AMOUNT CONVENTION (read this before building a ScheduleInput):
  OfficeRentHT, ParkingRentHT, ChargesHT, TaxesHT and OtherCostsHT are the
  nominal amounts for ONE FULL PERIOD of the chosen cadence: the monthly
  amount for a monthly lease, the quarterly amount for a quarterly lease.
  They are not annual figures. The deposit divides them by the months per
  period to get a monthly rate, so passing a monthly amount on a quarterly
  lease silently yields a deposit three times too small. The engine cannot
  detect this.

PURITY:
  ComputeLeaseRentSchedule does no I/O, keeps no state between calls and
  is safe to call concurrently. Running balances (franchise, incentive)
  live in a struct local to one call.

SEE ALSO:
  - generic/time.go: Date arithmetic
  - indexation/provider.go: Derives base/known index points from a series
  - factory/lease.go: Builds ScheduleInput from JSON/YAML
*/
package rent

import (
	"github.com/shopspring/decimal"
	"github.com/warp/lease-engine/generic"
)

// =============================================================================
// INPUT
// =============================================================================

// ScheduleInput holds the lease economics for one computation.
// All monetary fields are HT (excluding VAT) and per full period.
type ScheduleInput struct {
	StartDate        generic.TimePoint
	EndDate          generic.TimePoint
	PaymentFrequency generic.Frequency

	// BaseIndexValue is the index level in effect at StartDate.
	BaseIndexValue float64

	// KnownIndexPoints are published levels on or after StartDate.
	// Points before StartDate or with a non-positive value are ignored.
	KnownIndexPoints []generic.IndexPoint

	// ChargesGrowthRate compounds charges and taxes once per full lease year
	// (0.02 = 2%/year).
	ChargesGrowthRate decimal.Decimal

	OfficeRentHT  decimal.Decimal
	ParkingRentHT decimal.Decimal
	ChargesHT     decimal.Decimal
	TaxesHT       decimal.Decimal
	OtherCostsHT  decimal.Decimal

	DepositMonths   decimal.Decimal
	FranchiseMonths decimal.Decimal
	IncentiveAmount decimal.Decimal

	// HorizonYears caps the schedule at StartDate + HorizonYears.
	HorizonYears int
}

// DefaultHorizonYears is applied by input builders when none is given.
const DefaultHorizonYears = 3

// =============================================================================
// OUTPUT
// =============================================================================

type PeriodType string

const (
	PeriodMonth   PeriodType = "month"
	PeriodQuarter PeriodType = "quarter"
)

func periodTypeFor(f generic.Frequency) PeriodType {
	if f == generic.FrequencyQuarterly {
		return PeriodQuarter
	}
	return PeriodMonth
}

// RentSchedulePeriod is one billed period. Adjustments (franchise,
// incentives) are zero or negative; NetRentHT is the sum of every component.
type RentSchedulePeriod struct {
	PeriodStart generic.TimePoint
	PeriodEnd   generic.TimePoint
	PeriodType  PeriodType
	Year        int
	Month       *int // set for monthly periods
	Quarter     *int // set for quarterly periods

	IndexValue  decimal.Decimal // 4 dp
	IndexFactor decimal.Decimal // 6 dp

	OfficeRentHT  decimal.Decimal
	ParkingRentHT decimal.Decimal
	OtherCostsHT  decimal.Decimal
	ChargesHT     decimal.Decimal
	TaxesHT       decimal.Decimal
	FranchiseHT   decimal.Decimal
	IncentivesHT  decimal.Decimal
	NetRentHT     decimal.Decimal
}

// BaseRentHT is office + parking + other costs.
func (p RentSchedulePeriod) BaseRentHT() decimal.Decimal {
	return p.OfficeRentHT.Add(p.ParkingRentHT).Add(p.OtherCostsHT)
}

// YearlyTotalSummary sums every period whose billable start falls in Year.
type YearlyTotalSummary struct {
	Year         int
	BaseRentHT   decimal.Decimal
	ChargesHT    decimal.Decimal
	TaxesHT      decimal.Decimal
	FranchiseHT  decimal.Decimal
	IncentivesHT decimal.Decimal
	NetRentHT    decimal.Decimal
}

// Summary holds the lease-level figures.
type Summary struct {
	DepositHT decimal.Decimal

	// TCAM is the compound annual growth rate of the index (6 dp), nil when
	// no known index point exists.
	TCAM *decimal.Decimal

	YearlyTotals []YearlyTotalSummary

	TotalNetRentHT decimal.Decimal
	HorizonEnd     generic.TimePoint
}

// ScheduleResult is the engine output. Schedule is ordered by period start.
type ScheduleResult struct {
	Summary  Summary
	Schedule []RentSchedulePeriod
}
