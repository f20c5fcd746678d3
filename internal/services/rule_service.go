package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "gestor/internal/errors"
	"gestor/internal/models"
)

// ruleService is the rule repository: CRUD and active-state toggling for
// event and scheduled rules. Every operation, reads included, sits behind
// the premium gate and the account membership check.
type ruleService struct {
	db              *gorm.DB
	userService     UserServicer
	accountService  AccountServicer
	categoryService CategoryServicer
}

// NewRuleService creates a new RuleServicer.
func NewRuleService(db *gorm.DB, userService UserServicer, accountService AccountServicer, categoryService CategoryServicer) RuleServicer {
	return &ruleService{
		db:              db,
		userService:     userService,
		accountService:  accountService,
		categoryService: categoryService,
	}
}

// authorize enforces the premium gate, then account membership. Automation
// is a premium feature in its entirety, listing included.
func (s *ruleService) authorize(userID, accountID uint) error {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return err
	}
	if !user.IsPremium() {
		return apperrors.ErrPremiumRequired
	}
	_, err = s.accountService.GetAccountForUser(userID, accountID)
	return err
}

// validateAction checks the fixed/percentage exclusivity invariant and that
// the destination category is reachable from the account.
func (s *ruleService) validateAction(accountID uint, actionType models.ActionType, fixed *int64, pct *float64, destCategoryID uint) error {
	if _, ok := models.NewRuleAction(actionType, fixed, pct); !ok {
		return apperrors.ErrInvalidRuleAction
	}
	if _, err := s.categoryService.GetAccountCategory(accountID, destCategoryID); err != nil {
		return err
	}
	return nil
}

// --- Event rules ---

// ListEventRules returns the account's event rules ordered by name.
func (s *ruleService) ListEventRules(userID, accountID uint) ([]models.EventRule, error) {
	if err := s.authorize(userID, accountID); err != nil {
		return nil, err
	}

	var rules []models.EventRule
	if err := s.db.Where("account_id = ?", accountID).
		Order("name ASC").
		Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rules, nil
}

// CreateEventRule validates and stores a new event rule.
func (s *ruleService) CreateEventRule(userID, accountID uint, spec EventRuleSpec) (*models.EventRule, error) {
	if err := s.authorize(userID, accountID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(spec.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule name is required")
	}
	if spec.TriggerTransactionType != models.TransactionTypeIncome && spec.TriggerTransactionType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if _, err := s.categoryService.GetAccountCategory(accountID, spec.TriggerCategoryID); err != nil {
		return nil, err
	}
	if err := s.validateAction(accountID, spec.ActionType, spec.ActionFixedAmount, spec.ActionPercentage, spec.ActionDestinationCategoryID); err != nil {
		return nil, err
	}

	active := true
	if spec.IsActive != nil {
		active = *spec.IsActive
	}

	rule := &models.EventRule{
		AccountID:                   accountID,
		Name:                        strings.TrimSpace(spec.Name),
		IsActive:                    active,
		CreatedByID:                 &userID,
		TriggerCategoryID:           spec.TriggerCategoryID,
		TriggerTransactionType:      spec.TriggerTransactionType,
		ActionType:                  spec.ActionType,
		ActionDestinationCategoryID: spec.ActionDestinationCategoryID,
		ActionDescription:           spec.ActionDescription,
		ActionFixedAmount:           spec.ActionFixedAmount,
		ActionPercentage:            spec.ActionPercentage,
	}
	if err := s.db.Create(rule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rule, nil
}

// UpdateEventRule applies a partial update, re-validating the resulting
// rule. Toggling is_active is the common case and has no effect on
// transactions the rule already generated.
func (s *ruleService) UpdateEventRule(userID, accountID, ruleID uint, update EventRuleUpdate) (*models.EventRule, error) {
	if err := s.authorize(userID, accountID); err != nil {
		return nil, err
	}

	rule, err := s.getEventRule(accountID, ruleID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule name is required")
		}
		rule.Name = strings.TrimSpace(*update.Name)
	}
	if update.IsActive != nil {
		rule.IsActive = *update.IsActive
	}
	if update.TriggerCategoryID != nil {
		rule.TriggerCategoryID = *update.TriggerCategoryID
	}
	if update.TriggerTransactionType != nil {
		rule.TriggerTransactionType = *update.TriggerTransactionType
	}
	if update.ActionDestinationCategoryID != nil {
		rule.ActionDestinationCategoryID = *update.ActionDestinationCategoryID
	}
	if update.ActionDescription != nil {
		rule.ActionDescription = *update.ActionDescription
	}
	// Changing the action replaces both optional columns so a FIXED rule
	// patched to PERCENTAGE cannot keep a stale fixed amount.
	if update.ActionType != nil {
		rule.ActionType = *update.ActionType
		rule.ActionFixedAmount = update.ActionFixedAmount
		rule.ActionPercentage = update.ActionPercentage
	} else {
		if update.ActionFixedAmount != nil {
			rule.ActionFixedAmount = update.ActionFixedAmount
			rule.ActionPercentage = nil
		}
		if update.ActionPercentage != nil {
			rule.ActionPercentage = update.ActionPercentage
			rule.ActionFixedAmount = nil
		}
	}

	if rule.TriggerTransactionType != models.TransactionTypeIncome && rule.TriggerTransactionType != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if _, err := s.categoryService.GetAccountCategory(accountID, rule.TriggerCategoryID); err != nil {
		return nil, err
	}
	if err := s.validateAction(accountID, rule.ActionType, rule.ActionFixedAmount, rule.ActionPercentage, rule.ActionDestinationCategoryID); err != nil {
		return nil, err
	}

	if err := s.saveEventRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// SetEventRuleActive toggles a rule's active flag. Idempotent.
func (s *ruleService) SetEventRuleActive(userID, accountID, ruleID uint, active bool) (*models.EventRule, error) {
	return s.UpdateEventRule(userID, accountID, ruleID, EventRuleUpdate{IsActive: &active})
}

// DeleteEventRule permanently removes a rule. Deleting an absent rule is a
// success: delete is idempotent.
func (s *ruleService) DeleteEventRule(userID, accountID, ruleID uint) error {
	if err := s.authorize(userID, accountID); err != nil {
		return err
	}

	if err := s.db.Where("id = ? AND account_id = ?", ruleID, accountID).
		Delete(&models.EventRule{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *ruleService) getEventRule(accountID, ruleID uint) (*models.EventRule, error) {
	var rule models.EventRule
	if err := s.db.Where("id = ? AND account_id = ?", ruleID, accountID).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRuleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

// saveEventRule persists every mutable column, including NULLed action
// columns that plain Save would keep.
func (s *ruleService) saveEventRule(rule *models.EventRule) error {
	updates := map[string]interface{}{
		"name":                           rule.Name,
		"is_active":                      rule.IsActive,
		"trigger_category_id":            rule.TriggerCategoryID,
		"trigger_transaction_type":       rule.TriggerTransactionType,
		"action_type":                    rule.ActionType,
		"action_destination_category_id": rule.ActionDestinationCategoryID,
		"action_description":             rule.ActionDescription,
		"action_fixed_amount":            rule.ActionFixedAmount,
		"action_percentage":              rule.ActionPercentage,
	}
	if err := s.db.Model(rule).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// --- Scheduled rules ---

// ListScheduledRules returns the account's scheduled rules ordered by name.
func (s *ruleService) ListScheduledRules(userID, accountID uint) ([]models.ScheduledRule, error) {
	if err := s.authorize(userID, accountID); err != nil {
		return nil, err
	}

	var rules []models.ScheduledRule
	if err := s.db.Where("account_id = ?", accountID).
		Order("name ASC").
		Find(&rules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rules, nil
}

// CreateScheduledRule validates and stores a new scheduled rule.
func (s *ruleService) CreateScheduledRule(userID, accountID uint, spec ScheduledRuleSpec) (*models.ScheduledRule, error) {
	if err := s.authorize(userID, accountID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(spec.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule name is required")
	}
	if spec.ScheduleDayOfMonth < 1 || spec.ScheduleDayOfMonth > 31 {
		return nil, apperrors.ErrInvalidScheduleDay
	}
	if _, err := s.categoryService.GetAccountCategory(accountID, spec.SourceCategoryID); err != nil {
		return nil, err
	}
	if err := s.validateAction(accountID, spec.ActionType, spec.ActionFixedAmount, spec.ActionPercentage, spec.ActionDestinationCategoryID); err != nil {
		return nil, err
	}

	active := true
	if spec.IsActive != nil {
		active = *spec.IsActive
	}

	rule := &models.ScheduledRule{
		AccountID:                   accountID,
		Name:                        strings.TrimSpace(spec.Name),
		IsActive:                    active,
		CreatedByID:                 &userID,
		ScheduleDayOfMonth:          spec.ScheduleDayOfMonth,
		SourceCategoryID:            spec.SourceCategoryID,
		ActionType:                  spec.ActionType,
		ActionDestinationCategoryID: spec.ActionDestinationCategoryID,
		ActionDescription:           spec.ActionDescription,
		ActionFixedAmount:           spec.ActionFixedAmount,
		ActionPercentage:            spec.ActionPercentage,
	}
	if err := s.db.Create(rule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rule, nil
}

// UpdateScheduledRule applies a partial update, re-validating the result.
func (s *ruleService) UpdateScheduledRule(userID, accountID, ruleID uint, update ScheduledRuleUpdate) (*models.ScheduledRule, error) {
	if err := s.authorize(userID, accountID); err != nil {
		return nil, err
	}

	rule, err := s.getScheduledRule(accountID, ruleID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rule name is required")
		}
		rule.Name = strings.TrimSpace(*update.Name)
	}
	if update.IsActive != nil {
		rule.IsActive = *update.IsActive
	}
	if update.ScheduleDayOfMonth != nil {
		rule.ScheduleDayOfMonth = *update.ScheduleDayOfMonth
	}
	if update.SourceCategoryID != nil {
		rule.SourceCategoryID = *update.SourceCategoryID
	}
	if update.ActionDestinationCategoryID != nil {
		rule.ActionDestinationCategoryID = *update.ActionDestinationCategoryID
	}
	if update.ActionDescription != nil {
		rule.ActionDescription = *update.ActionDescription
	}
	if update.ActionType != nil {
		rule.ActionType = *update.ActionType
		rule.ActionFixedAmount = update.ActionFixedAmount
		rule.ActionPercentage = update.ActionPercentage
	} else {
		if update.ActionFixedAmount != nil {
			rule.ActionFixedAmount = update.ActionFixedAmount
			rule.ActionPercentage = nil
		}
		if update.ActionPercentage != nil {
			rule.ActionPercentage = update.ActionPercentage
			rule.ActionFixedAmount = nil
		}
	}

	if rule.ScheduleDayOfMonth < 1 || rule.ScheduleDayOfMonth > 31 {
		return nil, apperrors.ErrInvalidScheduleDay
	}
	if _, err := s.categoryService.GetAccountCategory(accountID, rule.SourceCategoryID); err != nil {
		return nil, err
	}
	if err := s.validateAction(accountID, rule.ActionType, rule.ActionFixedAmount, rule.ActionPercentage, rule.ActionDestinationCategoryID); err != nil {
		return nil, err
	}

	if err := s.saveScheduledRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// SetScheduledRuleActive toggles a rule's active flag. Idempotent.
func (s *ruleService) SetScheduledRuleActive(userID, accountID, ruleID uint, active bool) (*models.ScheduledRule, error) {
	return s.UpdateScheduledRule(userID, accountID, ruleID, ScheduledRuleUpdate{IsActive: &active})
}

// DeleteScheduledRule permanently removes a rule. Idempotent.
func (s *ruleService) DeleteScheduledRule(userID, accountID, ruleID uint) error {
	if err := s.authorize(userID, accountID); err != nil {
		return err
	}

	if err := s.db.Where("id = ? AND account_id = ?", ruleID, accountID).
		Delete(&models.ScheduledRule{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *ruleService) getScheduledRule(accountID, ruleID uint) (*models.ScheduledRule, error) {
	var rule models.ScheduledRule
	if err := s.db.Where("id = ? AND account_id = ?", ruleID, accountID).
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRuleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &rule, nil
}

func (s *ruleService) saveScheduledRule(rule *models.ScheduledRule) error {
	updates := map[string]interface{}{
		"name":                           rule.Name,
		"is_active":                      rule.IsActive,
		"schedule_day_of_month":          rule.ScheduleDayOfMonth,
		"source_category_id":             rule.SourceCategoryID,
		"action_type":                    rule.ActionType,
		"action_destination_category_id": rule.ActionDestinationCategoryID,
		"action_description":             rule.ActionDescription,
		"action_fixed_amount":            rule.ActionFixedAmount,
		"action_percentage":              rule.ActionPercentage,
	}
	if err := s.db.Model(rule).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
