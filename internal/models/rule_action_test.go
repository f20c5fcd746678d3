package models

import "testing"

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func TestNewRuleAction(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		action, ok := NewRuleAction(ActionTypeFixed, int64p(5000), nil)
		if !ok {
			t.Fatal("expected valid fixed action")
		}
		if action.FixedAmount != 5000 {
			t.Errorf("expected fixed amount 5000, got %d", action.FixedAmount)
		}
	})

	t.Run("percentage", func(t *testing.T) {
		action, ok := NewRuleAction(ActionTypePercentage, nil, float64p(20))
		if !ok {
			t.Fatal("expected valid percentage action")
		}
		if action.Percentage != 20 {
			t.Errorf("expected percentage 20, got %v", action.Percentage)
		}
	})

	t.Run("invalid_combinations", func(t *testing.T) {
		cases := []struct {
			name       string
			actionType ActionType
			fixed      *int64
			pct        *float64
		}{
			{"fixed_with_both", ActionTypeFixed, int64p(5000), float64p(20)},
			{"fixed_with_neither", ActionTypeFixed, nil, nil},
			{"fixed_with_percentage_only", ActionTypeFixed, nil, float64p(20)},
			{"percentage_with_both", ActionTypePercentage, int64p(5000), float64p(20)},
			{"percentage_with_neither", ActionTypePercentage, nil, nil},
			{"percentage_with_fixed_only", ActionTypePercentage, int64p(5000), nil},
			{"fixed_non_positive", ActionTypeFixed, int64p(0), nil},
			{"percentage_below_minimum", ActionTypePercentage, nil, float64p(0.001)},
			{"percentage_above_hundred", ActionTypePercentage, nil, float64p(100.5)},
			{"unknown_type", ActionType("WEEKLY"), int64p(5000), nil},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if _, ok := NewRuleAction(tc.actionType, tc.fixed, tc.pct); ok {
					t.Error("expected invalid action")
				}
			})
		}
	})

	t.Run("percentage_bounds", func(t *testing.T) {
		if _, ok := NewRuleAction(ActionTypePercentage, nil, float64p(0.01)); !ok {
			t.Error("expected 0.01 to be a valid percentage")
		}
		if _, ok := NewRuleAction(ActionTypePercentage, nil, float64p(100)); !ok {
			t.Error("expected 100 to be a valid percentage")
		}
	})
}

func TestRuleActionAmountFor(t *testing.T) {
	t.Run("fixed_ignores_base", func(t *testing.T) {
		action, _ := NewRuleAction(ActionTypeFixed, int64p(2500), nil)
		for _, base := range []int64{0, 1, 99999999} {
			if got := action.AmountFor(base); got != 2500 {
				t.Errorf("AmountFor(%d) = %d, want 2500", base, got)
			}
		}
	})

	t.Run("percentage_of_base", func(t *testing.T) {
		action, _ := NewRuleAction(ActionTypePercentage, nil, float64p(20))
		if got := action.AmountFor(100000); got != 20000 {
			t.Errorf("AmountFor(100000) = %d, want 20000", got)
		}
	})

	t.Run("percentage_of_non_positive_base", func(t *testing.T) {
		action, _ := NewRuleAction(ActionTypePercentage, nil, float64p(20))
		if got := action.AmountFor(0); got != 0 {
			t.Errorf("AmountFor(0) = %d, want 0", got)
		}
		if got := action.AmountFor(-100); got != 0 {
			t.Errorf("AmountFor(-100) = %d, want 0", got)
		}
	})
}
