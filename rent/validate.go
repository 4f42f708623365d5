package rent

import "github.com/warp/lease-engine/generic"

// Validate checks the preconditions of ComputeLeaseRentSchedule.
// The first violation is returned as a *generic.ValidationError.
func Validate(in ScheduleInput) error {
	if in.EndDate.Before(in.StartDate) {
		return &generic.ValidationError{
			Field: "end_date",
			Value: in.EndDate.String() + " < " + in.StartDate.String(),
			Err:   generic.ErrEndBeforeStart,
		}
	}
	if in.BaseIndexValue <= 0 {
		return &generic.ValidationError{Field: "base_index_value", Value: in.BaseIndexValue, Err: generic.ErrInvalidBaseIndex}
	}
	if !in.PaymentFrequency.Valid() {
		return &generic.ValidationError{Field: "payment_frequency", Value: in.PaymentFrequency, Err: generic.ErrInvalidFrequency}
	}
	if in.HorizonYears <= 0 {
		return &generic.ValidationError{Field: "horizon_years", Value: in.HorizonYears, Err: generic.ErrInvalidHorizon}
	}

	nonNegative := []struct {
		field string
		value interface{ IsNegative() bool }
	}{
		{"deposit_months", in.DepositMonths},
		{"franchise_months", in.FranchiseMonths},
		{"incentive_amount", in.IncentiveAmount},
	}
	for _, c := range nonNegative {
		if c.value.IsNegative() {
			return &generic.ValidationError{Field: c.field, Value: c.value, Err: generic.ErrNegativeAmount}
		}
	}
	return nil
}
