package models

// EventRule fires synchronously when a transaction matching its trigger is
// recorded in the account: same category and same transaction type. The
// action moves a fixed amount or a percentage of the triggering amount into
// the destination category.
type EventRule struct {
	Base
	AccountID   uint   `gorm:"not null;index" json:"account_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	CreatedByID *uint  `json:"created_by_id,omitempty"`

	TriggerCategoryID      uint            `gorm:"not null" json:"trigger_category"`
	TriggerTransactionType TransactionType `gorm:"not null" json:"trigger_transaction_type"`

	ActionType                  ActionType `gorm:"not null" json:"action_type"`
	ActionDestinationCategoryID uint       `gorm:"not null" json:"action_destination_category"`
	ActionDescription           string     `gorm:"size:255" json:"action_description"`
	ActionFixedAmount           *int64     `json:"action_fixed_amount,omitempty"`
	ActionPercentage            *float64   `json:"action_percentage,omitempty"`

	Account             Account   `gorm:"foreignKey:AccountID" json:"-"`
	TriggerCategory     *Category `gorm:"foreignKey:TriggerCategoryID" json:"-"`
	DestinationCategory *Category `gorm:"foreignKey:ActionDestinationCategoryID" json:"-"`
}

// Action returns the validated action variant. ok is false when the stored
// columns violate the fixed/percentage exclusivity invariant.
func (r *EventRule) Action() (RuleAction, bool) {
	return NewRuleAction(r.ActionType, r.ActionFixedAmount, r.ActionPercentage)
}

// Matches reports whether a transaction trips this rule's trigger.
// Rule-generated transactions never match: automation must not cascade.
func (r *EventRule) Matches(tx *Transaction) bool {
	if !r.IsActive || tx.CreatedByRule || tx.CategoryID == nil {
		return false
	}
	return r.AccountID == tx.AccountID &&
		r.TriggerCategoryID == *tx.CategoryID &&
		r.TriggerTransactionType == tx.Type
}
