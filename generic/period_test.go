package generic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/lease-engine/generic"
)

func TestFrequency_AnchorFor(t *testing.T) {
	monthly := generic.FrequencyMonthly.AnchorFor(date(2024, time.February, 10))
	if !monthly.Start.Equal(date(2024, time.February, 1)) || !monthly.End.Equal(date(2024, time.February, 29)) {
		t.Errorf("monthly anchor = %s", monthly)
	}

	quarterly := generic.FrequencyQuarterly.AnchorFor(date(2024, time.November, 10))
	if !quarterly.Start.Equal(date(2024, time.October, 1)) || !quarterly.End.Equal(date(2024, time.December, 31)) {
		t.Errorf("quarterly anchor = %s", quarterly)
	}
}

func TestFrequency_NextCrossesYear(t *testing.T) {
	q4 := generic.FrequencyQuarterly.AnchorFor(date(2024, time.December, 1))
	next := generic.FrequencyQuarterly.Next(q4)
	if !next.Start.Equal(date(2025, time.January, 1)) || !next.End.Equal(date(2025, time.March, 31)) {
		t.Errorf("next of %s = %s", q4, next)
	}

	jan := generic.FrequencyMonthly.AnchorFor(date(2025, time.January, 31))
	feb := generic.FrequencyMonthly.Next(jan)
	if !feb.End.Equal(date(2025, time.February, 28)) {
		t.Errorf("expected Feb 28 end, got %s", feb)
	}
}

func TestFrequency_MonthsPerPeriod(t *testing.T) {
	if generic.FrequencyMonthly.MonthsPerPeriod() != 1 {
		t.Error("monthly should be 1")
	}
	if generic.FrequencyQuarterly.MonthsPerPeriod() != 3 {
		t.Error("quarterly should be 3")
	}
}

func TestParseFrequency(t *testing.T) {
	for in, want := range map[string]generic.Frequency{
		"monthly":     generic.FrequencyMonthly,
		" Quarterly ": generic.FrequencyQuarterly,
		"trimestriel": generic.FrequencyQuarterly,
	} {
		got, err := generic.ParseFrequency(in)
		if err != nil || got != want {
			t.Errorf("ParseFrequency(%q) = %q, %v", in, got, err)
		}
	}

	_, err := generic.ParseFrequency("yearly")
	if !errors.Is(err, generic.ErrInvalidFrequency) {
		t.Errorf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestPeriod_Clip(t *testing.T) {
	q1 := generic.Period{Start: date(2024, time.January, 1), End: date(2024, time.March, 31)}

	clipped, ok := q1.Clip(date(2024, time.March, 6), date(2025, time.March, 5))
	if !ok || clipped.Days() != 26 {
		t.Errorf("clip = %s (%v), want 26 days", clipped, ok)
	}

	if _, ok := q1.Clip(date(2024, time.April, 1), date(2024, time.June, 30)); ok {
		t.Error("disjoint ranges must not overlap")
	}
}
