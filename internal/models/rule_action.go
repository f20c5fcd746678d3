package models

import (
	"gestor/internal/money"
)

// ActionType selects how a rule computes the amount it moves.
type ActionType string

const (
	ActionTypeFixed      ActionType = "FIXED"
	ActionTypePercentage ActionType = "PERCENTAGE"
)

// RuleAction is the validated form of a rule's action columns. The database
// keeps two nullable columns (fixed amount, percentage); evaluator code only
// ever works with a RuleAction, so the "both set" and "both null" states
// cannot reach it.
type RuleAction struct {
	Type        ActionType
	FixedAmount int64   // cents, when Type == ActionTypeFixed
	Percentage  float64 // 0.01–100, when Type == ActionTypePercentage
}

// NewRuleAction builds a RuleAction from the raw columns, enforcing the
// exclusivity invariant: exactly one of fixed/percentage is set, and it
// matches the action type.
func NewRuleAction(actionType ActionType, fixed *int64, pct *float64) (RuleAction, bool) {
	switch actionType {
	case ActionTypeFixed:
		if fixed == nil || pct != nil || *fixed <= 0 {
			return RuleAction{}, false
		}
		return RuleAction{Type: ActionTypeFixed, FixedAmount: *fixed}, true
	case ActionTypePercentage:
		if pct == nil || fixed != nil || *pct < 0.01 || *pct > 100 {
			return RuleAction{}, false
		}
		return RuleAction{Type: ActionTypePercentage, Percentage: *pct}, true
	}
	return RuleAction{}, false
}

// AmountFor computes the cents a rule moves given the base amount: the
// triggering transaction's amount for event rules, the source category's
// running balance for scheduled rules. Percentage results are rounded
// half-up to whole cents. A non-positive result means "skip this rule".
func (a RuleAction) AmountFor(base int64) int64 {
	switch a.Type {
	case ActionTypeFixed:
		return a.FixedAmount
	case ActionTypePercentage:
		if base <= 0 {
			return 0
		}
		return money.PercentOf(base, a.Percentage)
	}
	return 0
}
