package rent_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/rent"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func day(year int, month time.Month, d int) generic.TimePoint {
	return generic.NewTimePoint(year, month, d)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !money(want).Equal(got) {
		assert.Fail(t, fmt.Sprintf("want %s, got %s", want, got), msgAndArgs...)
	}
}

// officeLease is the quarterly reference lease used across tests.
func officeLease() rent.ScheduleInput {
	return rent.ScheduleInput{
		StartDate:        day(2024, time.March, 6),
		EndDate:          day(2025, time.March, 5),
		PaymentFrequency: generic.FrequencyQuarterly,
		BaseIndexValue:   130.64,
		KnownIndexPoints: []generic.IndexPoint{{Date: day(2025, time.January, 1), Value: 136.45}},
		OfficeRentHT:     money("3000"),
		ParkingRentHT:    money("500"),
		ChargesHT:        money("300"),
		TaxesHT:          money("200"),
		DepositMonths:    money("3"),
		FranchiseMonths:  money("6"),
		IncentiveAmount:  money("4000"),
		HorizonYears:     2,
	}
}

func minimalMonthlyLease() rent.ScheduleInput {
	return rent.ScheduleInput{
		StartDate:        day(2025, time.January, 15),
		EndDate:          day(2025, time.April, 14),
		PaymentFrequency: generic.FrequencyMonthly,
		BaseIndexValue:   125,
		OfficeRentHT:     money("1500"),
		HorizonYears:     1,
	}
}

func sumNet(rows []rent.RentSchedulePeriod) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.NetRentHT)
	}
	return total
}

// =============================================================================
// REFERENCE SCENARIOS
// =============================================================================

func TestCompute_QuarterlyOfficeLease(t *testing.T) {
	result, err := rent.ComputeLeaseRentSchedule(officeLease())
	require.NoError(t, err)
	require.Len(t, result.Schedule, 5)

	first := result.Schedule[0]
	assert.Equal(t, day(2024, time.March, 6), first.PeriodStart)
	assert.Equal(t, day(2024, time.March, 31), first.PeriodEnd)
	assert.Equal(t, rent.PeriodQuarter, first.PeriodType)
	require.NotNil(t, first.Quarter)
	assert.Equal(t, 1, *first.Quarter)
	assert.Nil(t, first.Month)
	assertMoney(t, "857.14", first.OfficeRentHT)
	assertMoney(t, "142.86", first.ParkingRentHT)
	assertMoney(t, "85.71", first.ChargesHT)
	assertMoney(t, "57.14", first.TaxesHT)
	assertMoney(t, "-1000", first.FranchiseHT)
	assertMoney(t, "-4000", first.IncentivesHT)
	assertMoney(t, "-3857.15", first.NetRentHT)
	assertMoney(t, "1", first.IndexFactor)

	assertMoney(t, "4000", result.Summary.DepositHT)
	require.NotNil(t, result.Summary.TCAM)
	assert.True(t, result.Summary.TCAM.IsPositive())
	assertMoney(t, "0.053997", *result.Summary.TCAM)
	assert.Equal(t, day(2025, time.March, 5), result.Summary.HorizonEnd)
}

func TestCompute_QuarterlyOfficeLease_IndexedLastPeriod(t *testing.T) {
	result, err := rent.ComputeLeaseRentSchedule(officeLease())
	require.NoError(t, err)

	last := result.Schedule[4]
	assert.Equal(t, day(2025, time.January, 1), last.PeriodStart)
	assertMoney(t, "136.45", last.IndexValue)
	assertMoney(t, "1.044473", last.IndexFactor)
	assertMoney(t, "2228.21", last.OfficeRentHT)
	assertMoney(t, "371.37", last.ParkingRentHT)
	assertMoney(t, "213.33", last.ChargesHT, "charges are not indexed")
	assertMoney(t, "142.22", last.TaxesHT)
	assertMoney(t, "0", last.FranchiseHT)
	assertMoney(t, "2955.13", last.NetRentHT)

	// Between the base and the first published point the level stays flat
	for _, row := range result.Schedule[:4] {
		assertMoney(t, "130.64", row.IndexValue, "period %s", row.PeriodStart)
	}
}

func TestCompute_MonthlyMinimalInput(t *testing.T) {
	result, err := rent.ComputeLeaseRentSchedule(minimalMonthlyLease())
	require.NoError(t, err)
	require.Len(t, result.Schedule, 4)

	first := result.Schedule[0]
	assert.Equal(t, day(2025, time.January, 15), first.PeriodStart)
	assert.Equal(t, rent.PeriodMonth, first.PeriodType)
	require.NotNil(t, first.Month)
	assert.Equal(t, 1, *first.Month)
	assertMoney(t, "822.58", first.OfficeRentHT)

	for _, row := range result.Schedule {
		assert.True(t, row.NetRentHT.Equal(row.OfficeRentHT), "net == office for %s", row.PeriodStart)
	}
	assertMoney(t, "700", result.Schedule[3].OfficeRentHT, "Apr 1-14 is 14/30 of a month")
	assert.Nil(t, result.Summary.TCAM)
	assertMoney(t, "0", result.Summary.DepositHT)
}

// =============================================================================
// PRORATION
// =============================================================================

func TestCompute_FullPeriod_NoProration(t *testing.T) {
	in := minimalMonthlyLease()
	result, err := rent.ComputeLeaseRentSchedule(in)
	require.NoError(t, err)

	feb := result.Schedule[1]
	assert.Equal(t, day(2025, time.February, 1), feb.PeriodStart)
	assert.Equal(t, day(2025, time.February, 28), feb.PeriodEnd)
	assertMoney(t, "1500", feb.OfficeRentHT)
}

func TestCompute_PartialFirstMonth(t *testing.T) {
	// Lease starting on day d of an n-day month bills (n-d+1)/n of the rent
	cases := []struct {
		start time.Time
		want  string
	}{
		{time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), "1000"},
		{time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), "677.42"}, // 21/31
		{time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), "34.48"}, // 1/29
		{time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC), "33.33"},    // 1/30
	}

	for _, tc := range cases {
		t.Run(tc.start.Format(generic.DateLayout), func(t *testing.T) {
			start := generic.FromTime(tc.start)
			result, err := rent.ComputeLeaseRentSchedule(rent.ScheduleInput{
				StartDate:        start,
				EndDate:          start.AddYears(1),
				PaymentFrequency: generic.FrequencyMonthly,
				BaseIndexValue:   100,
				OfficeRentHT:     money("1000"),
				HorizonYears:     1,
			})
			require.NoError(t, err)
			assertMoney(t, tc.want, result.Schedule[0].OfficeRentHT)
		})
	}
}

// =============================================================================
// ESCALATION
// =============================================================================

func TestCompute_ChargesEscalateOnAnniversary(t *testing.T) {
	// GIVEN: 10% yearly growth on charges, lease starting Jul 15
	// THEN: The rate steps up only for periods starting after each anniversary
	result, err := rent.ComputeLeaseRentSchedule(rent.ScheduleInput{
		StartDate:         day(2024, time.July, 15),
		EndDate:           day(2027, time.July, 14),
		PaymentFrequency:  generic.FrequencyMonthly,
		BaseIndexValue:    100,
		OfficeRentHT:      money("1000"),
		ChargesHT:         money("100"),
		ChargesGrowthRate: money("0.10"),
		HorizonYears:      3,
	})
	require.NoError(t, err)

	byStart := make(map[string]rent.RentSchedulePeriod)
	for _, r := range result.Schedule {
		byStart[r.PeriodStart.String()] = r
	}

	assertMoney(t, "100", byStart["2025-07-01"].ChargesHT, "Jul 1 2025 is before the first anniversary")
	assertMoney(t, "110", byStart["2025-08-01"].ChargesHT)
	assertMoney(t, "121", byStart["2026-08-01"].ChargesHT)
	assertMoney(t, "1000", byStart["2026-08-01"].OfficeRentHT, "no index data: office stays flat")
}

// =============================================================================
// CONCESSIONS
// =============================================================================

func TestCompute_FranchiseExhaustion(t *testing.T) {
	result, err := rent.ComputeLeaseRentSchedule(officeLease())
	require.NoError(t, err)

	franchise := decimal.Zero
	for _, r := range result.Schedule {
		franchise = franchise.Add(r.FranchiseHT)
	}

	// Monthly equivalent of office+parking is 3500/3; six months of it
	want := money("3500").Div(money("3")).Mul(money("6")).Neg()
	assert.True(t, franchise.Sub(want).Abs().LessThanOrEqual(money("0.02")),
		"total franchise %s, want about %s", franchise, want)

	assertMoney(t, "-3500", result.Schedule[1].FranchiseHT)
	assertMoney(t, "-2500", result.Schedule[2].FranchiseHT)
	assertMoney(t, "0", result.Schedule[3].FranchiseHT, "balance exhausted")
	assertMoney(t, "0", result.Schedule[4].FranchiseHT)
}

func TestCompute_IncentiveAppliedOnce(t *testing.T) {
	result, err := rent.ComputeLeaseRentSchedule(officeLease())
	require.NoError(t, err)

	nonZero := 0
	for i, r := range result.Schedule {
		if !r.IncentivesHT.IsZero() {
			nonZero++
			assert.Equal(t, 0, i, "incentive must land on the first period")
			assertMoney(t, "-4000", r.IncentivesHT)
		}
	}
	assert.Equal(t, 1, nonZero)
}

func TestCompute_FractionalFranchiseMonths(t *testing.T) {
	in := minimalMonthlyLease()
	in.ParkingRentHT = money("100")
	in.FranchiseMonths = money("1.5")

	result, err := rent.ComputeLeaseRentSchedule(in)
	require.NoError(t, err)

	// Jan 15-31 is 17/31 of a month: consumes 0.548 month, leaving 0.952 for Feb
	jan, feb, mar := result.Schedule[0], result.Schedule[1], result.Schedule[2]
	assert.True(t, jan.FranchiseHT.Neg().Equal(jan.OfficeRentHT.Add(jan.ParkingRentHT)), "January fully abated")
	assertMoney(t, "-1522.58", feb.FranchiseHT)
	assertMoney(t, "0", mar.FranchiseHT)
}

// =============================================================================
// AGGREGATION
// =============================================================================

func TestCompute_YearlyTotalsMatchSchedule(t *testing.T) {
	for name, in := range map[string]rent.ScheduleInput{
		"quarterly": officeLease(),
		"monthly":   minimalMonthlyLease(),
	} {
		t.Run(name, func(t *testing.T) {
			result, err := rent.ComputeLeaseRentSchedule(in)
			require.NoError(t, err)

			yearly := decimal.Zero
			for i, y := range result.Summary.YearlyTotals {
				yearly = yearly.Add(y.NetRentHT)
				if i > 0 {
					assert.Greater(t, y.Year, result.Summary.YearlyTotals[i-1].Year)
				}
			}
			tolerance := money("0.01").Mul(decimal.NewFromInt(int64(len(result.Schedule))))
			assert.True(t, sumNet(result.Schedule).Sub(yearly).Abs().LessThanOrEqual(tolerance))
			assert.True(t, result.Summary.TotalNetRentHT.Equal(sumNet(result.Schedule)))
		})
	}
}

func TestCompute_YearlyTotalsOfficeLease(t *testing.T) {
	result, err := rent.ComputeLeaseRentSchedule(officeLease())
	require.NoError(t, err)
	require.Len(t, result.Summary.YearlyTotals, 2)

	y2024 := result.Summary.YearlyTotals[0]
	assert.Equal(t, 2024, y2024.Year)
	assertMoney(t, "2142.85", y2024.NetRentHT)
	assertMoney(t, "-7000", y2024.FranchiseHT)
	assertMoney(t, "-4000", y2024.IncentivesHT)

	y2025 := result.Summary.YearlyTotals[1]
	assert.Equal(t, 2025, y2025.Year)
	assertMoney(t, "2599.58", y2025.BaseRentHT)
	assertMoney(t, "2955.13", y2025.NetRentHT)
}

func TestCompute_DepositUsesMonthlyEquivalent(t *testing.T) {
	// Same nominal per-period amounts, different cadence: the deposit
	// treats them as a quarter's worth on a quarterly lease.
	quarterly := officeLease()
	monthly := officeLease()
	monthly.PaymentFrequency = generic.FrequencyMonthly

	assertMoney(t, "4000", rent.DepositHT(quarterly))
	assertMoney(t, "12000", rent.DepositHT(monthly))
}

func TestCompute_IsDeterministic(t *testing.T) {
	a, err := rent.ComputeLeaseRentSchedule(officeLease())
	require.NoError(t, err)
	b, err := rent.ComputeLeaseRentSchedule(officeLease())
	require.NoError(t, err)

	require.Len(t, b.Schedule, len(a.Schedule))
	for i := range a.Schedule {
		assert.Equal(t, a.Schedule[i].PeriodStart, b.Schedule[i].PeriodStart)
		assertMoney(t, a.Schedule[i].NetRentHT.String(), b.Schedule[i].NetRentHT)
	}
	assertMoney(t, a.Summary.TotalNetRentHT.String(), b.Summary.TotalNetRentHT)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestCompute_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*rent.ScheduleInput)
		want   error
		field  string
	}{
		{"end before start", func(in *rent.ScheduleInput) { in.EndDate = in.StartDate.AddDays(-1) }, generic.ErrEndBeforeStart, "end_date"},
		{"zero base index", func(in *rent.ScheduleInput) { in.BaseIndexValue = 0 }, generic.ErrInvalidBaseIndex, "base_index_value"},
		{"negative base index", func(in *rent.ScheduleInput) { in.BaseIndexValue = -3 }, generic.ErrInvalidBaseIndex, "base_index_value"},
		{"unknown frequency", func(in *rent.ScheduleInput) { in.PaymentFrequency = "yearly" }, generic.ErrInvalidFrequency, "payment_frequency"},
		{"zero horizon", func(in *rent.ScheduleInput) { in.HorizonYears = 0 }, generic.ErrInvalidHorizon, "horizon_years"},
		{"negative franchise", func(in *rent.ScheduleInput) { in.FranchiseMonths = money("-1") }, generic.ErrNegativeAmount, "franchise_months"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := officeLease()
			tc.mutate(&in)

			result, err := rent.ComputeLeaseRentSchedule(in)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.True(t, generic.IsClientError(err))

			var vErr *generic.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestCompute_SameDayLease(t *testing.T) {
	in := minimalMonthlyLease()
	in.EndDate = in.StartDate

	result, err := rent.ComputeLeaseRentSchedule(in)
	require.NoError(t, err)
	require.Len(t, result.Schedule, 1)
	assertMoney(t, "48.39", result.Schedule[0].OfficeRentHT) // 1/31 of 1500
}
