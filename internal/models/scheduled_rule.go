package models

import "time"

// ScheduledRule fires once per month on a fixed day. Days past the end of a
// short month clamp to its last day, so a day-31 rule still runs in February.
// LastRunOn guards at-most-once execution per calendar day: the scheduler
// stamps it in the same database transaction that writes the generated
// ledger entries, which makes re-running a tick for the same date a no-op.
type ScheduledRule struct {
	Base
	AccountID   uint   `gorm:"not null;index" json:"account_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	CreatedByID *uint  `json:"created_by_id,omitempty"`

	ScheduleDayOfMonth int  `gorm:"not null" json:"schedule_day_of_month"`
	SourceCategoryID   uint `gorm:"not null" json:"source_category"`

	ActionType                  ActionType `gorm:"not null" json:"action_type"`
	ActionDestinationCategoryID uint       `gorm:"not null" json:"action_destination_category"`
	ActionDescription           string     `gorm:"size:255" json:"action_description"`
	ActionFixedAmount           *int64     `json:"action_fixed_amount,omitempty"`
	ActionPercentage            *float64   `json:"action_percentage,omitempty"`

	LastRunOn *time.Time `gorm:"type:date" json:"last_run_on,omitempty"`

	Account             Account   `gorm:"foreignKey:AccountID" json:"-"`
	SourceCategory      *Category `gorm:"foreignKey:SourceCategoryID" json:"-"`
	DestinationCategory *Category `gorm:"foreignKey:ActionDestinationCategoryID" json:"-"`
}

// Action returns the validated action variant. ok is false when the stored
// columns violate the fixed/percentage exclusivity invariant.
func (r *ScheduledRule) Action() (RuleAction, bool) {
	return NewRuleAction(r.ActionType, r.ActionFixedAmount, r.ActionPercentage)
}

// DueOn reports whether the rule's day of month matches the given date,
// clamping to the last day of shorter months.
func (r *ScheduledRule) DueOn(date time.Time) bool {
	if !r.IsActive {
		return false
	}
	lastDay := LastDayOfMonth(date)
	day := r.ScheduleDayOfMonth
	if day > lastDay {
		day = lastDay
	}
	return date.Day() == day
}

// AlreadyRanOn reports whether the rule has already executed on the given
// calendar day.
func (r *ScheduledRule) AlreadyRanOn(date time.Time) bool {
	if r.LastRunOn == nil {
		return false
	}
	y1, m1, d1 := r.LastRunOn.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// LastDayOfMonth returns the number of days in the month of the given date.
func LastDayOfMonth(date time.Time) int {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
}
