package services

import (
	"fmt"

	"gorm.io/gorm"

	apperrors "gestor/internal/errors"
	"gestor/internal/logger"
	"gestor/internal/models"
	"gestor/internal/money"
)

// ruleEvaluator implements the event-rule path: it reacts to a freshly
// created transaction and emits the ledger entries its matching rules call
// for. It runs inside the database transaction that created the trigger, so
// the trigger and every emission commit together or not at all.
type ruleEvaluator struct{}

// NewEventRuleEvaluator creates a new EventRuleEvaluator.
func NewEventRuleEvaluator() EventRuleEvaluator {
	return &ruleEvaluator{}
}

// ApplyEventRules finds the active event rules matching the trigger and
// emits one expense transaction per rule on its destination category.
// Rule-generated transactions never re-trigger evaluation, so automation
// cannot chain. A rule whose computed amount is invalid or non-positive is
// skipped with a warning; the remaining rules still run. Database failures
// abort the pass, rolling back the trigger with it.
func (e *ruleEvaluator) ApplyEventRules(tx *gorm.DB, trigger *models.Transaction) ([]models.Transaction, error) {
	if trigger.CreatedByRule || trigger.CategoryID == nil {
		return nil, nil
	}

	var rules []models.EventRule
	if err := tx.
		Where("account_id = ? AND is_active = ?", trigger.AccountID, true).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var emitted []models.Transaction
	for i := range rules {
		rule := &rules[i]
		if !rule.Matches(trigger) {
			continue
		}

		action, ok := rule.Action()
		if !ok {
			logger.Get().Warnw("skipping event rule with invalid action",
				"rule_id", rule.ID,
				"rule_name", rule.Name,
				"account_id", rule.AccountID,
			)
			continue
		}

		amount := action.AmountFor(trigger.Amount)
		if amount <= 0 {
			logger.Get().Warnw("skipping event rule with non-positive amount",
				"rule_id", rule.ID,
				"rule_name", rule.Name,
				"trigger_amount", money.FormatCents(trigger.Amount),
			)
			continue
		}

		generated := models.Transaction{
			AccountID:     trigger.AccountID,
			CategoryID:    &rule.ActionDestinationCategoryID,
			Type:          models.TransactionTypeExpense,
			Amount:        amount,
			Description:   ruleDescription(rule.ActionDescription, rule.Name),
			Date:          trigger.Date,
			CreatedByRule: true,
		}
		if err := tx.Create(&generated).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		emitted = append(emitted, generated)
	}

	return emitted, nil
}

// ruleDescription falls back to "Auto: <rule name>" when the rule has no
// action description configured.
func ruleDescription(description, ruleName string) string {
	if description != "" {
		return description
	}
	return fmt.Sprintf("Auto: %s", ruleName)
}
