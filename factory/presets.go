package factory

import "encoding/json"

// =============================================================================
// LEASE PRESETS
// =============================================================================

// OfficeLeaseJSON returns JSON for a quarterly office lease indexed on ILC,
// with a rent-free period, a lump incentive and a three-month deposit.
// The base index is left out so it comes from the stored ILC series.
func OfficeLeaseJSON(id, name, startDate, endDate string, quarterlyRent float64) string {
	lj := map[string]interface{}{
		"id":                id,
		"name":              name,
		"start_date":        startDate,
		"end_date":          endDate,
		"payment_frequency": "quarterly",
		"index_type":        "ILC",
		"office_rent_ht":    quarterlyRent,
		"parking_rent_ht":   quarterlyRent / 6,
		"charges_ht":        quarterlyRent / 10,
		"taxes_ht":          quarterlyRent / 15,
		"deposit_months":    3,
		"franchise_months":  6,
		"incentive_amount":  quarterlyRent * 4 / 3,
		"horizon_years":     3,
	}
	b, _ := json.MarshalIndent(lj, "", "  ")
	return string(b)
}

// MonthlyLeaseJSON returns JSON for a small monthly lease with a fixed base
// index and growing charges.
func MonthlyLeaseJSON(id, name, startDate, endDate string, monthlyRent, baseIndex float64) string {
	lj := map[string]interface{}{
		"id":                  id,
		"name":                name,
		"start_date":          startDate,
		"end_date":            endDate,
		"payment_frequency":   "monthly",
		"base_index_value":    baseIndex,
		"charges_growth_rate": 0.02,
		"office_rent_ht":      monthlyRent,
		"charges_ht":          monthlyRent / 10,
		"deposit_months":      2,
		"horizon_years":       2,
	}
	b, _ := json.MarshalIndent(lj, "", "  ")
	return string(b)
}

// ILCSeries returns published ILC levels from 2022 onward, quarterly.
func ILCSeries() []IndexPointJSON {
	return []IndexPointJSON{
		{Date: "2022-01-01", Value: 120.61},
		{Date: "2022-04-01", Value: 123.65},
		{Date: "2022-07-01", Value: 126.05},
		{Date: "2022-10-01", Value: 128.68},
		{Date: "2023-01-01", Value: 130.64},
		{Date: "2023-04-01", Value: 131.57},
		{Date: "2023-07-01", Value: 132.15},
		{Date: "2023-10-01", Value: 133.69},
		{Date: "2024-01-01", Value: 134.58},
		{Date: "2024-04-01", Value: 135.30},
		{Date: "2024-07-01", Value: 135.93},
		{Date: "2024-10-01", Value: 136.45},
	}
}
