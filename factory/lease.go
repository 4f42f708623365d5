/*
Package factory provides JSON/YAML to Go lease conversion.

PURPOSE:
  Converts lease definitions written by people (or produced by an upstream
  extraction step) into rent.ScheduleInput values. Dates are strings,
  amounts are plain numbers, and omitted fields get the engine defaults.

JSON SCHEMA:
  {
    "id": "lyon-hq",
    "name": "Lyon HQ",
    "start_date": "2024-03-06",
    "end_date": "2033-03-05",
    "payment_frequency": "quarterly",
    "index_type": "ILC",
    "base_index_value": 130.64,
    "known_index_points": [{"date": "2025-01-01", "value": 136.45}],
    "charges_growth_rate": 0.02,
    "office_rent_ht": 3000,
    "parking_rent_ht": 500,
    "charges_ht": 300,
    "taxes_ht": 200,
    "other_costs_ht": 0,
    "deposit_months": 3,
    "franchise_months": 6,
    "incentive_amount": 4000,
    "horizon_years": 2
  }

  The same keys are accepted in YAML. Rent amounts are PER PAYMENT PERIOD
  (quarterly amount on a quarterly lease), never annual.

INDEX DATA:
  Either give base_index_value (and optionally known_index_points), or give
  index_type and let an indexation.Provider fill both from a stored series.
  A lease file may embed that series under "index_series".

SEE ALSO:
  - rent/types.go: ScheduleInput and the per-period amount convention
  - indexation/provider.go: Base/known index derivation
*/
package factory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/indexation"
	"github.com/warp/lease-engine/rent"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// LeaseJSON is the JSON/YAML representation of a lease.
type LeaseJSON struct {
	ID               string `json:"id,omitempty" yaml:"id,omitempty"`
	Name             string `json:"name,omitempty" yaml:"name,omitempty"`
	StartDate        string `json:"start_date" yaml:"start_date"`
	EndDate          string `json:"end_date" yaml:"end_date"`
	PaymentFrequency string `json:"payment_frequency" yaml:"payment_frequency"`

	IndexType        string           `json:"index_type,omitempty" yaml:"index_type,omitempty"`
	BaseIndexValue   *float64         `json:"base_index_value,omitempty" yaml:"base_index_value,omitempty"`
	KnownIndexPoints []IndexPointJSON `json:"known_index_points,omitempty" yaml:"known_index_points,omitempty"`
	IndexSeries      []IndexPointJSON `json:"index_series,omitempty" yaml:"index_series,omitempty"`

	ChargesGrowthRate float64 `json:"charges_growth_rate,omitempty" yaml:"charges_growth_rate,omitempty"`

	OfficeRentHT  float64 `json:"office_rent_ht" yaml:"office_rent_ht"`
	ParkingRentHT float64 `json:"parking_rent_ht,omitempty" yaml:"parking_rent_ht,omitempty"`
	ChargesHT     float64 `json:"charges_ht,omitempty" yaml:"charges_ht,omitempty"`
	TaxesHT       float64 `json:"taxes_ht,omitempty" yaml:"taxes_ht,omitempty"`
	OtherCostsHT  float64 `json:"other_costs_ht,omitempty" yaml:"other_costs_ht,omitempty"`

	DepositMonths   float64 `json:"deposit_months,omitempty" yaml:"deposit_months,omitempty"`
	FranchiseMonths float64 `json:"franchise_months,omitempty" yaml:"franchise_months,omitempty"`
	IncentiveAmount float64 `json:"incentive_amount,omitempty" yaml:"incentive_amount,omitempty"`

	HorizonYears *int `json:"horizon_years,omitempty" yaml:"horizon_years,omitempty"`
}

// IndexPointJSON is one published index level.
type IndexPointJSON struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

// =============================================================================
// LEASE
// =============================================================================

// Lease is a parsed lease definition.
type Lease struct {
	ID        string
	Name      string
	IndexType indexation.IndexType
	Input     rent.ScheduleInput

	// Series is the embedded index_series, if any.
	Series []generic.IndexPoint
}

// NeedsIndex reports whether the base index must come from a provider.
func (l *Lease) NeedsIndex() bool {
	return l.Input.BaseIndexValue <= 0 && l.IndexType != ""
}

// ApplyIndex fills the base and known index points from the provider when
// the lease names an index type but no base value. Explicit known points
// in the lease are kept.
func (l *Lease) ApplyIndex(ctx context.Context, p *indexation.Provider) error {
	if !l.NeedsIndex() {
		return nil
	}
	base, known, err := p.ForLease(ctx, l.IndexType, l.Input.StartDate)
	if err != nil {
		return err
	}
	l.Input.BaseIndexValue = base
	if len(l.Input.KnownIndexPoints) == 0 {
		l.Input.KnownIndexPoints = known
	}
	return nil
}

// =============================================================================
// LEASE FACTORY
// =============================================================================

// LeaseFactory converts lease documents to Go structs.
type LeaseFactory struct{}

// NewLeaseFactory creates a new lease factory.
func NewLeaseFactory() *LeaseFactory {
	return &LeaseFactory{}
}

// ParseLease parses a JSON string into a Lease.
func (f *LeaseFactory) ParseLease(jsonStr string) (*Lease, error) {
	var lj LeaseJSON
	if err := json.Unmarshal([]byte(jsonStr), &lj); err != nil {
		return nil, fmt.Errorf("failed to parse lease JSON: %w", err)
	}
	return f.FromJSON(lj)
}

// ParseLeaseYAML parses a YAML document into a Lease.
func (f *LeaseFactory) ParseLeaseYAML(data []byte) (*Lease, error) {
	var lj LeaseJSON
	if err := yaml.Unmarshal(data, &lj); err != nil {
		return nil, fmt.Errorf("failed to parse lease YAML: %w", err)
	}
	return f.FromJSON(lj)
}

// LoadFile reads a .json, .yaml or .yml lease file.
func (f *LeaseFactory) LoadFile(path string) (*Lease, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lease file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return f.ParseLeaseYAML(data)
	default:
		return f.ParseLease(string(data))
	}
}

// FromJSON converts LeaseJSON to a Lease, applying defaults.
func (f *LeaseFactory) FromJSON(lj LeaseJSON) (*Lease, error) {
	start, err := requireDate("start_date", lj.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := requireDate("end_date", lj.EndDate)
	if err != nil {
		return nil, err
	}
	freq, err := generic.ParseFrequency(lj.PaymentFrequency)
	if err != nil {
		return nil, &generic.ValidationError{Field: "payment_frequency", Value: lj.PaymentFrequency, Err: generic.ErrInvalidFrequency}
	}

	lease := &Lease{ID: lj.ID, Name: lj.Name}
	if lj.IndexType != "" {
		lease.IndexType, err = indexation.ParseIndexType(lj.IndexType)
		if err != nil {
			return nil, err
		}
	}

	known, err := parsePoints("known_index_points", lj.KnownIndexPoints)
	if err != nil {
		return nil, err
	}
	lease.Series, err = parsePoints("index_series", lj.IndexSeries)
	if err != nil {
		return nil, err
	}

	horizon := rent.DefaultHorizonYears
	if lj.HorizonYears != nil {
		horizon = *lj.HorizonYears
	}

	lease.Input = rent.ScheduleInput{
		StartDate:         start,
		EndDate:           end,
		PaymentFrequency:  freq,
		KnownIndexPoints:  known,
		ChargesGrowthRate: decimal.NewFromFloat(lj.ChargesGrowthRate),
		OfficeRentHT:      decimal.NewFromFloat(lj.OfficeRentHT),
		ParkingRentHT:     decimal.NewFromFloat(lj.ParkingRentHT),
		ChargesHT:         decimal.NewFromFloat(lj.ChargesHT),
		TaxesHT:           decimal.NewFromFloat(lj.TaxesHT),
		OtherCostsHT:      decimal.NewFromFloat(lj.OtherCostsHT),
		DepositMonths:     decimal.NewFromFloat(lj.DepositMonths),
		FranchiseMonths:   decimal.NewFromFloat(lj.FranchiseMonths),
		IncentiveAmount:   decimal.NewFromFloat(lj.IncentiveAmount),
		HorizonYears:      horizon,
	}
	if lj.BaseIndexValue != nil {
		lease.Input.BaseIndexValue = *lj.BaseIndexValue
	}

	return lease, nil
}

// ToJSON converts a Lease back to its document form.
func (f *LeaseFactory) ToJSON(l *Lease) LeaseJSON {
	in := l.Input
	horizon := in.HorizonYears
	lj := LeaseJSON{
		ID:                l.ID,
		Name:              l.Name,
		StartDate:         in.StartDate.String(),
		EndDate:           in.EndDate.String(),
		PaymentFrequency:  string(in.PaymentFrequency),
		IndexType:         string(l.IndexType),
		KnownIndexPoints:  formatPoints(in.KnownIndexPoints),
		IndexSeries:       formatPoints(l.Series),
		ChargesGrowthRate: in.ChargesGrowthRate.InexactFloat64(),
		OfficeRentHT:      in.OfficeRentHT.InexactFloat64(),
		ParkingRentHT:     in.ParkingRentHT.InexactFloat64(),
		ChargesHT:         in.ChargesHT.InexactFloat64(),
		TaxesHT:           in.TaxesHT.InexactFloat64(),
		OtherCostsHT:      in.OtherCostsHT.InexactFloat64(),
		DepositMonths:     in.DepositMonths.InexactFloat64(),
		FranchiseMonths:   in.FranchiseMonths.InexactFloat64(),
		IncentiveAmount:   in.IncentiveAmount.InexactFloat64(),
		HorizonYears:      &horizon,
	}
	if in.BaseIndexValue > 0 {
		base := in.BaseIndexValue
		lj.BaseIndexValue = &base
	}
	return lj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func requireDate(field, s string) (generic.TimePoint, error) {
	if strings.TrimSpace(s) == "" {
		return generic.TimePoint{}, fmt.Errorf("%s is required", field)
	}
	d, err := generic.ParseDate(s)
	if err != nil {
		return generic.TimePoint{}, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

func parsePoints(field string, pts []IndexPointJSON) ([]generic.IndexPoint, error) {
	if len(pts) == 0 {
		return nil, nil
	}
	out := make([]generic.IndexPoint, 0, len(pts))
	for i, p := range pts {
		d, err := generic.ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		out = append(out, generic.IndexPoint{Date: d, Value: p.Value})
	}
	return out, nil
}

func formatPoints(pts []generic.IndexPoint) []IndexPointJSON {
	if len(pts) == 0 {
		return nil
	}
	out := make([]IndexPointJSON, len(pts))
	for i, p := range pts {
		out[i] = IndexPointJSON{Date: p.Date.String(), Value: p.Value}
	}
	return out
}
