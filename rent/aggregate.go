package rent

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/warp/lease-engine/generic"
)

// =============================================================================
// AGGREGATOR - Yearly totals and lease-level figures
// =============================================================================

// AggregateYears buckets rows by the year of their billable start, sorted
// ascending. Only the rows are read, so re-aggregating a schedule always
// gives the same totals.
func AggregateYears(schedule []RentSchedulePeriod) []YearlyTotalSummary {
	buckets := make(map[int]*YearlyTotalSummary)
	for _, row := range schedule {
		b, ok := buckets[row.Year]
		if !ok {
			b = &YearlyTotalSummary{Year: row.Year}
			buckets[row.Year] = b
		}
		b.BaseRentHT = b.BaseRentHT.Add(row.BaseRentHT())
		b.ChargesHT = b.ChargesHT.Add(row.ChargesHT)
		b.TaxesHT = b.TaxesHT.Add(row.TaxesHT)
		b.FranchiseHT = b.FranchiseHT.Add(row.FranchiseHT)
		b.IncentivesHT = b.IncentivesHT.Add(row.IncentivesHT)
		b.NetRentHT = b.NetRentHT.Add(row.NetRentHT)
	}

	totals := make([]YearlyTotalSummary, 0, len(buckets))
	for _, b := range buckets {
		totals = append(totals, YearlyTotalSummary{
			Year:         b.Year,
			BaseRentHT:   generic.Round2(b.BaseRentHT),
			ChargesHT:    generic.Round2(b.ChargesHT),
			TaxesHT:      generic.Round2(b.TaxesHT),
			FranchiseHT:  generic.Round2(b.FranchiseHT),
			IncentivesHT: generic.Round2(b.IncentivesHT),
			NetRentHT:    generic.Round2(b.NetRentHT),
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Year < totals[j].Year })
	return totals
}

// DepositHT is depositMonths × monthly-equivalent of the nominal
// office + parking + charges + taxes. Per-period amounts are divided by the
// months per period first, whatever the cadence.
func DepositHT(in ScheduleInput) decimal.Decimal {
	if in.DepositMonths.IsZero() {
		return decimal.Zero
	}
	perPeriod := generic.SumDecimals(in.OfficeRentHT, in.ParkingRentHT, in.ChargesHT, in.TaxesHT)
	months := decimal.NewFromInt(int64(in.PaymentFrequency.MonthsPerPeriod()))
	return generic.Round2(in.DepositMonths.Mul(perPeriod).Div(months))
}
