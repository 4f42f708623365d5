/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's decimal/TimePoint model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

FORMATS:
  Money:        string with 2 decimals ("2228.21")
  Index value:  string with 4 decimals
  Index factor: string with 6 decimals
  TCAM:         string with 6 decimals, null when no index point is known
  Dates:        "YYYY-MM-DD"

TYPES:
  Schedules:  ScheduleDTO, SchedulePeriodDTO, SummaryDTO, YearlyTotalDTO
  Leases:     LeaseDTO (wraps factory.LeaseJSON)
  Indices:    IndexSeriesDTO, IndexPointDTO, AddIndexPointsRequest
  Checks:     LeaseCheckDTO
  Scenarios:  ScenarioDTO

SEE ALSO:
  - handlers.go: Uses these types
  - factory/lease.go: LeaseJSON type
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/lease-engine/factory"
	"github.com/warp/lease-engine/generic"
	"github.com/warp/lease-engine/rent"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SchedulePeriodDTO is one billed period.
type SchedulePeriodDTO struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	PeriodType  string `json:"period_type"`
	Year        int    `json:"year"`
	Month       *int   `json:"month,omitempty"`
	Quarter     *int   `json:"quarter,omitempty"`

	IndexValue  string `json:"index_value"`
	IndexFactor string `json:"index_factor"`

	OfficeRentHT  string `json:"office_rent_ht"`
	ParkingRentHT string `json:"parking_rent_ht"`
	OtherCostsHT  string `json:"other_costs_ht"`
	ChargesHT     string `json:"charges_ht"`
	TaxesHT       string `json:"taxes_ht"`
	FranchiseHT   string `json:"franchise_ht"`
	IncentivesHT  string `json:"incentives_ht"`
	NetRentHT     string `json:"net_rent_ht"`
}

// YearlyTotalDTO is one calendar-year bucket.
type YearlyTotalDTO struct {
	Year         int    `json:"year"`
	BaseRentHT   string `json:"base_rent_ht"`
	ChargesHT    string `json:"charges_ht"`
	TaxesHT      string `json:"taxes_ht"`
	FranchiseHT  string `json:"franchise_ht"`
	IncentivesHT string `json:"incentives_ht"`
	NetRentHT    string `json:"net_rent_ht"`
}

// SummaryDTO holds the lease-level figures.
type SummaryDTO struct {
	DepositHT      string           `json:"deposit_ht"`
	TCAM           *string          `json:"tcam"`
	YearlyTotals   []YearlyTotalDTO `json:"yearly_totals"`
	TotalNetRentHT string           `json:"total_net_rent_ht"`
	HorizonEnd     string           `json:"horizon_end"`
}

// ScheduleDTO is the computed schedule of a lease.
type ScheduleDTO struct {
	LeaseID  string              `json:"lease_id,omitempty"`
	Summary  SummaryDTO          `json:"summary"`
	Schedule []SchedulePeriodDTO `json:"schedule"`
}

// LeaseDTO represents a saved lease in API responses.
type LeaseDTO struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	IndexType string            `json:"index_type,omitempty"`
	Config    factory.LeaseJSON `json:"config"`
	CreatedAt string            `json:"created_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

// IndexPointDTO is one published index level.
type IndexPointDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// IndexSeriesDTO is a stored index series.
type IndexSeriesDTO struct {
	Type   string          `json:"type"`
	Points []IndexPointDTO `json:"points"`
}

// AddIndexPointsRequest is the request to publish index levels.
type AddIndexPointsRequest struct {
	Points []IndexPointDTO `json:"points"`
}

// LeaseCheckDTO is the outcome of the last background check of a lease.
type LeaseCheckDTO struct {
	LeaseID        string `json:"lease_id"`
	CheckedAt      string `json:"checked_at"`
	OK             bool   `json:"ok"`
	Error          string `json:"error,omitempty"`
	Periods        int    `json:"periods,omitempty"`
	TotalNetRentHT string `json:"total_net_rent_ht,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// ToScheduleDTO renders an engine result for API and CLI output.
func ToScheduleDTO(leaseID string, result *rent.ScheduleResult) ScheduleDTO {
	periods := make([]SchedulePeriodDTO, len(result.Schedule))
	for i, p := range result.Schedule {
		periods[i] = SchedulePeriodDTO{
			PeriodStart:   p.PeriodStart.String(),
			PeriodEnd:     p.PeriodEnd.String(),
			PeriodType:    string(p.PeriodType),
			Year:          p.Year,
			Month:         p.Month,
			Quarter:       p.Quarter,
			IndexValue:    p.IndexValue.StringFixed(4),
			IndexFactor:   p.IndexFactor.StringFixed(6),
			OfficeRentHT:  moneyString(p.OfficeRentHT),
			ParkingRentHT: moneyString(p.ParkingRentHT),
			OtherCostsHT:  moneyString(p.OtherCostsHT),
			ChargesHT:     moneyString(p.ChargesHT),
			TaxesHT:       moneyString(p.TaxesHT),
			FranchiseHT:   moneyString(p.FranchiseHT),
			IncentivesHT:  moneyString(p.IncentivesHT),
			NetRentHT:     moneyString(p.NetRentHT),
		}
	}

	years := make([]YearlyTotalDTO, len(result.Summary.YearlyTotals))
	for i, y := range result.Summary.YearlyTotals {
		years[i] = YearlyTotalDTO{
			Year:         y.Year,
			BaseRentHT:   moneyString(y.BaseRentHT),
			ChargesHT:    moneyString(y.ChargesHT),
			TaxesHT:      moneyString(y.TaxesHT),
			FranchiseHT:  moneyString(y.FranchiseHT),
			IncentivesHT: moneyString(y.IncentivesHT),
			NetRentHT:    moneyString(y.NetRentHT),
		}
	}

	summary := SummaryDTO{
		DepositHT:      moneyString(result.Summary.DepositHT),
		YearlyTotals:   years,
		TotalNetRentHT: moneyString(result.Summary.TotalNetRentHT),
		HorizonEnd:     result.Summary.HorizonEnd.String(),
	}
	if result.Summary.TCAM != nil {
		tcam := result.Summary.TCAM.StringFixed(6)
		summary.TCAM = &tcam
	}

	return ScheduleDTO{LeaseID: leaseID, Summary: summary, Schedule: periods}
}

func toLeaseDTO(r generic.LeaseRecord, config factory.LeaseJSON) LeaseDTO {
	return LeaseDTO{
		ID:        string(r.ID),
		Name:      r.Name,
		IndexType: r.IndexType,
		Config:    config,
		CreatedAt: formatTimestamp(r.CreatedAt),
		UpdatedAt: formatTimestamp(r.UpdatedAt),
	}
}

func toIndexSeriesDTO(series string, points []generic.IndexPoint) IndexSeriesDTO {
	dtos := make([]IndexPointDTO, len(points))
	for i, p := range points {
		dtos[i] = IndexPointDTO{Date: p.Date.String(), Value: p.Value}
	}
	return IndexSeriesDTO{Type: series, Points: dtos}
}

func moneyString(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
