/*
Package generic provides the building blocks shared by the lease engine.

PURPOSE:
  This package contains the domain-agnostic types every other package uses:
  a date-only calendar type, calendar-aligned periods, money rounding on
  decimal.Decimal, index observations, sentinel errors and the storage
  interfaces the outer surfaces (API, CLI) depend on.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money helpers: Round2/Round4/Round6 over decimal.Decimal
  - IndexPoint: a published index value effective from a date
  - LeaseID / LeaseRecord: identifiers for saved lease definitions

DESIGN PRINCIPLES:
  1. Precision: currency is decimal.Decimal, never float64
  2. Date-only: TimePoint has no time of day, all UTC
  3. Purity: nothing here performs I/O except through the Store interfaces

SEE ALSO:
  - time.go: TimePoint and calendar helpers
  - period.go: Period and Frequency
  - errors.go: Validation errors
  - store.go: IndexStore and LeaseStore
*/
package generic

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - decimal helpers
// =============================================================================

var (
	Zero = decimal.Zero
	One  = decimal.NewFromInt(1)
)

// Round2 rounds a currency value to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Round4 is used for index levels.
func Round4(d decimal.Decimal) decimal.Decimal { return d.Round(4) }

// Round6 is used for ratios (index factor, growth rates).
func Round6(d decimal.Decimal) decimal.Decimal { return d.Round(6) }

// SumDecimals adds all values.
func SumDecimals(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// =============================================================================
// INDEX OBSERVATIONS
// =============================================================================

// IndexPoint is an index level in effect from Date onward.
type IndexPoint struct {
	Date  TimePoint
	Value float64
}

// =============================================================================
// SAVED LEASES
// =============================================================================

type LeaseID string

// LeaseRecord is a saved lease definition. ConfigJSON is the factory's
// LeaseJSON document; the engine never reads it directly.
type LeaseRecord struct {
	ID         LeaseID
	Name       string
	IndexType  string
	ConfigJSON string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
