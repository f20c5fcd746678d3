package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScheduledRuleDueOn(t *testing.T) {
	t.Run("matching_day", func(t *testing.T) {
		rule := &ScheduledRule{IsActive: true, ScheduleDayOfMonth: 15}
		if !rule.DueOn(date(2024, time.March, 15)) {
			t.Error("expected rule to be due on its day")
		}
		if rule.DueOn(date(2024, time.March, 14)) {
			t.Error("expected rule not due the day before")
		}
		if rule.DueOn(date(2024, time.March, 16)) {
			t.Error("expected rule not due the day after")
		}
	})

	t.Run("clamps_to_leap_february", func(t *testing.T) {
		rule := &ScheduledRule{IsActive: true, ScheduleDayOfMonth: 31}
		if !rule.DueOn(date(2024, time.February, 29)) {
			t.Error("expected day-31 rule due on Feb 29 of a leap year")
		}
		if rule.DueOn(date(2024, time.February, 28)) {
			t.Error("expected day-31 rule not due on Feb 28 of a leap year")
		}
	})

	t.Run("clamps_to_short_february", func(t *testing.T) {
		rule := &ScheduledRule{IsActive: true, ScheduleDayOfMonth: 30}
		if !rule.DueOn(date(2023, time.February, 28)) {
			t.Error("expected day-30 rule due on Feb 28 of a non-leap year")
		}
	})

	t.Run("clamps_to_thirty_day_month", func(t *testing.T) {
		rule := &ScheduledRule{IsActive: true, ScheduleDayOfMonth: 31}
		if !rule.DueOn(date(2024, time.April, 30)) {
			t.Error("expected day-31 rule due on Apr 30")
		}
		if !rule.DueOn(date(2024, time.May, 31)) {
			t.Error("expected day-31 rule due on May 31")
		}
		if rule.DueOn(date(2024, time.May, 30)) {
			t.Error("expected day-31 rule not due on May 30")
		}
	})

	t.Run("inactive_rule_never_due", func(t *testing.T) {
		rule := &ScheduledRule{IsActive: false, ScheduleDayOfMonth: 15}
		if rule.DueOn(date(2024, time.March, 15)) {
			t.Error("expected inactive rule never due")
		}
	})
}

func TestScheduledRuleAlreadyRanOn(t *testing.T) {
	t.Run("never_ran", func(t *testing.T) {
		rule := &ScheduledRule{}
		if rule.AlreadyRanOn(date(2024, time.March, 15)) {
			t.Error("expected rule with nil last_run_on not to have run")
		}
	})

	t.Run("ran_same_day", func(t *testing.T) {
		ran := date(2024, time.March, 15)
		rule := &ScheduledRule{LastRunOn: &ran}
		if !rule.AlreadyRanOn(date(2024, time.March, 15)) {
			t.Error("expected rule to have run on its stamp date")
		}
	})

	t.Run("ran_previous_month", func(t *testing.T) {
		ran := date(2024, time.February, 15)
		rule := &ScheduledRule{LastRunOn: &ran}
		if rule.AlreadyRanOn(date(2024, time.March, 15)) {
			t.Error("expected a stamp from last month not to block this month")
		}
	})

	t.Run("compares_calendar_day_not_instant", func(t *testing.T) {
		ran := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
		rule := &ScheduledRule{LastRunOn: &ran}
		later := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC)
		if !rule.AlreadyRanOn(later) {
			t.Error("expected same calendar day to count regardless of time")
		}
	})
}

func TestEventRuleMatches(t *testing.T) {
	catID := uint(7)
	rule := &EventRule{
		AccountID:              1,
		IsActive:               true,
		TriggerCategoryID:      7,
		TriggerTransactionType: TransactionTypeIncome,
	}

	t.Run("matching_transaction", func(t *testing.T) {
		tx := &Transaction{AccountID: 1, CategoryID: &catID, Type: TransactionTypeIncome}
		if !rule.Matches(tx) {
			t.Error("expected match")
		}
	})

	t.Run("wrong_type", func(t *testing.T) {
		tx := &Transaction{AccountID: 1, CategoryID: &catID, Type: TransactionTypeExpense}
		if rule.Matches(tx) {
			t.Error("expected no match for wrong transaction type")
		}
	})

	t.Run("wrong_category", func(t *testing.T) {
		otherCat := uint(9)
		tx := &Transaction{AccountID: 1, CategoryID: &otherCat, Type: TransactionTypeIncome}
		if rule.Matches(tx) {
			t.Error("expected no match for wrong category")
		}
	})

	t.Run("rule_generated_transaction_never_matches", func(t *testing.T) {
		tx := &Transaction{AccountID: 1, CategoryID: &catID, Type: TransactionTypeIncome, CreatedByRule: true}
		if rule.Matches(tx) {
			t.Error("expected rule-generated transaction not to match")
		}
	})

	t.Run("uncategorized_transaction_never_matches", func(t *testing.T) {
		tx := &Transaction{AccountID: 1, Type: TransactionTypeIncome}
		if rule.Matches(tx) {
			t.Error("expected uncategorized transaction not to match")
		}
	})
}
