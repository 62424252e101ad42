package vacct

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)
	if d1.time() != d2.time() {
		t.Errorf("same day gives two different time() values")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},
		{"2025/01/15", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{"same month", NewDate(2024, 1, 15), NewDate(2024, 1, 31), 0},
		{"day of month ignored", NewDate(2024, 1, 31), NewDate(2024, 2, 1), 1},
		{"across a year", NewDate(2024, 1, 15), NewDate(2025, 2, 28), 13},
		{"backwards is negative", NewDate(2024, 3, 1), NewDate(2024, 1, 31), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBetween(tt.from, tt.to); got != tt.want {
				t.Errorf("MonthsBetween(%v, %v) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		in   Date
		want Date
	}{
		{NewDate(2024, 2, 1), NewDate(2024, 2, 29)}, // leap year
		{NewDate(2023, 2, 10), NewDate(2023, 2, 28)},
		{NewDate(2024, 12, 31), NewDate(2024, 12, 31)},
	}
	for _, tt := range tests {
		if got := tt.in.EndOfMonth(); got != tt.want {
			t.Errorf("EndOfMonth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(NewDate(2024, 2, 28), NewDate(2024, 3, 1)); got != 2 {
		t.Errorf("DaysBetween across leap day = %d, want 2", got)
	}
	if got := DaysBetween(NewDate(2024, 3, 1), NewDate(2024, 2, 28)); got != -2 {
		t.Errorf("DaysBetween backwards = %d, want -2", got)
	}
}

func TestDateJSON(t *testing.T) {
	in := NewDate(2024, 6, 1)
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `"2024-06-01"` {
		t.Errorf("Marshal() = %s, want \"2024-06-01\"", raw)
	}
	var out Date
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out != in {
		t.Errorf("roundtrip = %v, want %v", out, in)
	}
}
