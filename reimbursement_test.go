package vacct

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoverageFraction_Steps(t *testing.T) {
	acceptance := NewDate(2024, 1, 15)
	tests := []struct {
		name      string
		periodEnd Date
		want      string
	}{
		{"period ends before acceptance", NewDate(2023, 12, 31), "0"},
		{"acceptance month", NewDate(2024, 1, 31), "1"},
		{"last full month", NewDate(2024, 3, 31), "1"},
		{"first quarter step", NewDate(2024, 4, 30), "0.75"},
		{"end of first step", NewDate(2024, 6, 30), "0.75"},
		{"second step", NewDate(2024, 7, 31), "0.5"},
		{"end of second step", NewDate(2024, 9, 30), "0.5"},
		{"third step", NewDate(2024, 10, 31), "0.25"},
		{"end of coverage", NewDate(2024, 12, 31), "0.25"},
		{"first uncovered month", NewDate(2025, 1, 31), "0"},
		{"far beyond the program", NewDate(2030, 6, 30), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			if got := CoverageFraction(acceptance, tt.periodEnd); !got.Equal(want) {
				t.Errorf("CoverageFraction(%v) = %v, want %v", tt.periodEnd, got, want)
			}
		})
	}
}

func TestCoverageFraction_NotEnrolled(t *testing.T) {
	if got := CoverageFraction(Date{}, NewDate(2024, 6, 30)); !got.IsZero() {
		t.Errorf("coverage without acceptance date = %v, want 0", got)
	}
}

func TestCoverageFraction_Monotonic(t *testing.T) {
	// Coverage never increases as the period end moves later.
	acceptance := NewDate(2024, 1, 15)
	prev := decimal.New(1, 0)
	for m := NewDate(2024, 1, 1); m.Before(NewDate(2026, 1, 1)); m = m.AddMonth(1) {
		end := m.EndOfMonth()
		got := CoverageFraction(acceptance, end)
		if got.GreaterThan(prev) {
			t.Fatalf("coverage increased at %v: %v after %v", end, got, prev)
		}
		prev = got
	}
}

func TestReimburseLamports(t *testing.T) {
	tests := []struct {
		name     string
		gross    Lamports
		coverage string
		want     Lamports
	}{
		{"full coverage", 4_000_000_000, "1", 4_000_000_000},
		{"three quarters", 4_000_000_000, "0.75", 3_000_000_000},
		{"truncates to whole lamports", 3, "0.25", 0},
		{"no coverage", 4_000_000_000, "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReimburseLamports(tt.gross, decimal.RequireFromString(tt.coverage))
			if got != tt.want {
				t.Errorf("ReimburseLamports(%v, %v) = %v, want %v", tt.gross, tt.coverage, got, tt.want)
			}
		})
	}
}

func TestReimburseMoney_NeverExceedsGross(t *testing.T) {
	gross := USD(119.99)
	for _, coverage := range []string{"0", "0.25", "0.5", "0.75", "1"} {
		got := ReimburseMoney(gross, decimal.RequireFromString(coverage))
		if got.GreaterThan(gross) {
			t.Errorf("reimbursed %v exceeds gross %v at coverage %s", got, gross, coverage)
		}
		if got.IsNegative() {
			t.Errorf("reimbursed %v is negative at coverage %s", got, coverage)
		}
	}
}

func TestScheduleReimbursement(t *testing.T) {
	got := ScheduleReimbursement(NewDate(2024, 1, 15), NewDate(2024, 4, 1), NewDate(2024, 4, 30), USD(200))
	if !got.Coverage.Equal(decimal.RequireFromString("0.75")) {
		t.Errorf("coverage = %v, want 0.75", got.Coverage)
	}
	if !got.Reimbursed.Equal(USD(150)) {
		t.Errorf("reimbursed = %v, want %v", got.Reimbursed, USD(150))
	}
}
