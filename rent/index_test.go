package rent_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/rent"
)

func TestIndexResolver_NoKnownPoints_IsFlat(t *testing.T) {
	curve := rent.NewIndexResolver(125, day(2025, time.January, 15), nil)

	assert.False(t, curve.HasCAGR)
	assert.Equal(t, 125.0, curve.Resolve(day(2025, time.January, 15)))
	assert.Equal(t, 125.0, curve.Resolve(day(2030, time.June, 1)))
}

func TestIndexResolver_LastKnownValue_NoInterpolation(t *testing.T) {
	// GIVEN: Base 100 on Jan 1 2024, one published point 110 on Jan 1 2025
	start := day(2024, time.January, 1)
	curve := rent.NewIndexResolver(100, start, []generic.IndexPoint{
		{Date: day(2025, time.January, 1), Value: 110},
	})

	// THEN: Every date before the point resolves to the base
	assert.Equal(t, 100.0, curve.Resolve(start))
	assert.Equal(t, 100.0, curve.Resolve(day(2024, time.July, 1)))
	assert.Equal(t, 100.0, curve.Resolve(day(2024, time.December, 31)))

	// AND: The point itself is exact
	assert.Equal(t, 110.0, curve.Resolve(day(2025, time.January, 1)))
}

func TestIndexResolver_ExtrapolatesAtCAGR(t *testing.T) {
	start := day(2024, time.January, 1)
	point := day(2025, time.January, 1)
	curve := rent.NewIndexResolver(100, start, []generic.IndexPoint{{Date: point, Value: 110}})

	years := generic.YearsBetween(start, point)
	wantCAGR := math.Pow(1.1, 1/years) - 1
	assert.True(t, curve.HasCAGR)
	assert.InDelta(t, wantCAGR, curve.CAGR, 1e-12)

	later := day(2026, time.January, 1)
	want := 110 * math.Pow(1+wantCAGR, generic.YearsBetween(point, later))
	assert.InDelta(t, want, curve.Resolve(later), 1e-9)

	// Monotonic beyond the last point for positive growth
	prev := curve.Resolve(point)
	for d := point.AddMonths(1); d.Before(day(2028, time.January, 1)); d = d.AddMonths(1) {
		v := curve.Resolve(d)
		assert.Greater(t, v, prev, "at %s", d)
		prev = v
	}
}

func TestIndexResolver_UsesFurthestPointForCAGR(t *testing.T) {
	start := day(2024, time.January, 1)
	curve := rent.NewIndexResolver(100, start, []generic.IndexPoint{
		{Date: day(2026, time.January, 1), Value: 121},
		{Date: day(2025, time.January, 1), Value: 104}, // unsorted on purpose
	})

	want := math.Pow(1.21, 1/generic.YearsBetween(start, day(2026, time.January, 1))) - 1
	assert.InDelta(t, want, curve.CAGR, 1e-12)
	assert.Equal(t, 104.0, curve.Resolve(day(2025, time.June, 30)))
	assert.Equal(t, 121.0, curve.Resolve(day(2026, time.January, 1)))
}

func TestKnownPointsFrom_FiltersPastAndNonPositive(t *testing.T) {
	start := day(2024, time.April, 1)
	known := rent.KnownPointsFrom(start, []generic.IndexPoint{
		{Date: day(2024, time.January, 1), Value: 120}, // before start
		{Date: day(2024, time.October, 1), Value: 0},   // not published
		{Date: day(2024, time.July, 1), Value: 123},
		{Date: day(2024, time.April, 1), Value: 121},
	})

	if assert.Len(t, known, 2) {
		assert.Equal(t, day(2024, time.April, 1), known[0].Date)
		assert.Equal(t, day(2024, time.July, 1), known[1].Date)
	}
}
