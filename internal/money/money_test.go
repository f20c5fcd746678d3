package money

import (
	"math"
	"testing"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		pct    float64
		want   int64
	}{
		{"twenty_percent_of_1000", 100000, 20, 20000},
		{"ten_percent_of_one_cent", 1, 10, 0},
		{"fifty_percent_of_one_cent_rounds_up", 1, 50, 1},
		{"half_up_on_exact_half_cent", 15, 10, 2},   // 1.5 cents
		{"rounds_down_below_half", 14, 10, 1},       // 1.4 cents
		{"hundred_percent", 99999999, 100, 99999999},
		{"small_percentage_of_large_amount", 99999999, 0.01, 10000},
		{"fractional_percentage", 100000, 2.5, 2500},
		{"zero_amount", 0, 20, 0},
		{"negative_amount", -100, 20, 0},
		{"zero_percentage", 100000, 0, 0},
		{"hundred_percent_of_huge_amount", 3_000_000_000_000_000_000, 100, 3_000_000_000_000_000_000},
		{"half_of_huge_amount", 3_000_000_000_000_000_000, 50, 1_500_000_000_000_000_000},
		{"hundred_percent_of_max_int64", math.MaxInt64, 100, math.MaxInt64},
		{"one_percent_of_max_int64", math.MaxInt64, 1, 92233720368547758},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentOf(tt.amount, tt.pct); got != tt.want {
				t.Errorf("PercentOf(%d, %v) = %d, want %d", tt.amount, tt.pct, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{1, "0.01"},
		{100, "1.00"},
		{1050, "10.50"},
		{-250, "-2.50"},
		{99999999, "999999.99"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.in); got != tt.want {
			t.Errorf("FormatCents(%d) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
