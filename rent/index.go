package rent

import (
	"math"
	"sort"

	"github.com/warp/lease-engine/generic"
)

// =============================================================================
// INDEX RESOLVER - Index level for any date of the timeline
// =============================================================================

// IndexResolver returns the index level in effect at a date.
type IndexResolver func(date generic.TimePoint) float64

// IndexCurve is what NewIndexResolver derives from the index data.
type IndexCurve struct {
	Resolve IndexResolver

	// CAGR is the compound annual growth rate from the base to the furthest
	// known point. HasCAGR is false when there are no known points, in which
	// case extrapolation is flat.
	CAGR    float64
	HasCAGR bool
}

// KnownPointsFrom keeps points dated on or after start with a positive
// value, sorted by date.
func KnownPointsFrom(start generic.TimePoint, points []generic.IndexPoint) []generic.IndexPoint {
	known := make([]generic.IndexPoint, 0, len(points))
	for _, p := range points {
		if p.Value > 0 && !p.Date.Before(start) {
			known = append(known, p)
		}
	}
	sort.SliceStable(known, func(i, j int) bool { return known[i].Date.Before(known[j].Date) })
	return known
}

// NewIndexResolver closes over the base level at start and the known points.
//
// Lookup is last-known-value: a date between two points gets the earlier
// one (the base counts as the point at start). Past the furthest known
// point the level compounds at CAGR from that point.
func NewIndexResolver(base float64, start generic.TimePoint, points []generic.IndexPoint) IndexCurve {
	known := KnownPointsFrom(start, points)

	curve := IndexCurve{}
	lastDate := start
	if n := len(known); n > 0 {
		furthest := known[n-1]
		lastDate = furthest.Date
		curve.CAGR = math.Pow(furthest.Value/base, 1/generic.YearsBetween(start, furthest.Date)) - 1
		curve.HasCAGR = true
	}

	cagr, hasCAGR := curve.CAGR, curve.HasCAGR
	curve.Resolve = func(date generic.TimePoint) float64 {
		anchorDate, anchorValue := start, base
		for _, p := range known {
			if p.Date.After(date) {
				break
			}
			anchorDate, anchorValue = p.Date, p.Value
		}

		if !hasCAGR || !date.After(lastDate) {
			return anchorValue
		}
		return anchorValue * math.Pow(1+cagr, generic.YearsBetween(anchorDate, date))
	}
	return curve
}
