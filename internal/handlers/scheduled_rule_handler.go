package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gestor/internal/errors"
	"gestor/internal/models"
	"gestor/internal/services"
)

// ScheduledRuleHandler handles scheduled-rule requests. Scheduled rules fire
// once per month on a fixed day, clamped to the last day of shorter months.
type ScheduledRuleHandler struct {
	ruleService  services.RuleServicer
	auditService services.AuditServicer
}

// NewScheduledRuleHandler creates a new ScheduledRuleHandler.
func NewScheduledRuleHandler(ruleService services.RuleServicer, auditService services.AuditServicer) *ScheduledRuleHandler {
	return &ScheduledRuleHandler{ruleService: ruleService, auditService: auditService}
}

// CreateScheduledRuleRequest represents the payload for creating a scheduled
// rule. Exactly one of action_fixed_amount and action_percentage must be
// set, matching action_type.
type CreateScheduledRuleRequest struct {
	Name                        string            `json:"name" binding:"required,max=100"`
	IsActive                    *bool             `json:"is_active"`
	ScheduleDayOfMonth          int               `json:"schedule_day_of_month" binding:"required"`
	SourceCategoryID            uint              `json:"source_category" binding:"required"`
	ActionType                  models.ActionType `json:"action_type" binding:"required,action_type"`
	ActionDestinationCategoryID uint              `json:"action_destination_category" binding:"required"`
	ActionDescription           string            `json:"action_description" binding:"max=255"`
	ActionFixedAmount           *int64            `json:"action_fixed_amount"`
	ActionPercentage            *float64          `json:"action_percentage"`
}

// UpdateScheduledRuleRequest represents a partial update; absent fields are
// left unchanged.
type UpdateScheduledRuleRequest struct {
	Name                        *string            `json:"name" binding:"omitempty,max=100"`
	IsActive                    *bool              `json:"is_active"`
	ScheduleDayOfMonth          *int               `json:"schedule_day_of_month"`
	SourceCategoryID            *uint              `json:"source_category"`
	ActionType                  *models.ActionType `json:"action_type" binding:"omitempty,action_type"`
	ActionDestinationCategoryID *uint              `json:"action_destination_category"`
	ActionDescription           *string            `json:"action_description" binding:"omitempty,max=255"`
	ActionFixedAmount           *int64             `json:"action_fixed_amount"`
	ActionPercentage            *float64           `json:"action_percentage"`
}

// ListScheduledRules handles listing an account's scheduled rules
// @Summary     List scheduled rules
// @Description List the account's scheduled rules. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} map[string]interface{} "Scheduled rules"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/scheduled-rules [get]
func (h *ScheduledRuleHandler) ListScheduledRules(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	rules, err := h.ruleService.ListScheduledRules(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scheduled_rules": rules})
}

// CreateScheduledRule handles the creation of a scheduled rule
// @Summary     Create a scheduled rule
// @Description Create a scheduled rule that fires monthly on a fixed day, moving a fixed amount or a percentage of the source category's balance to the destination category. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                        true "Account ID"
// @Param       request body CreateScheduledRuleRequest true "Scheduled rule definition"
// @Success     201 {object} models.ScheduledRule "Scheduled rule created"
// @Failure     400 {object} ErrorResponse "Invalid input, day out of range, or inconsistent action"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/scheduled-rules [post]
func (h *ScheduledRuleHandler) CreateScheduledRule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateScheduledRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.ruleService.CreateScheduledRule(userID, accountID, services.ScheduledRuleSpec{
		Name:                        req.Name,
		IsActive:                    req.IsActive,
		ScheduleDayOfMonth:          req.ScheduleDayOfMonth,
		SourceCategoryID:            req.SourceCategoryID,
		ActionType:                  req.ActionType,
		ActionDestinationCategoryID: req.ActionDestinationCategoryID,
		ActionDescription:           req.ActionDescription,
		ActionFixedAmount:           req.ActionFixedAmount,
		ActionPercentage:            req.ActionPercentage,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SCHEDULED_RULE", "scheduled_rule", rule.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "account_id": accountID})

	c.JSON(http.StatusCreated, gin.H{"scheduled_rule": rule})
}

// UpdateScheduledRule handles a partial update of a scheduled rule
// @Summary     Update scheduled rule
// @Description Partially update a scheduled rule. Toggling is_active pauses or resumes the rule. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                        true "Account ID"
// @Param       ruleId  path int                        true "Scheduled rule ID"
// @Param       request body UpdateScheduledRuleRequest true "Fields to update"
// @Success     200 {object} models.ScheduledRule "Updated scheduled rule"
// @Failure     400 {object} ErrorResponse "Invalid input, day out of range, or inconsistent action"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account, category, or rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/scheduled-rules/{ruleId} [patch]
func (h *ScheduledRuleHandler) UpdateScheduledRule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ruleID, err := parsePathID(c, "ruleId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateScheduledRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.ruleService.UpdateScheduledRule(userID, accountID, ruleID, services.ScheduledRuleUpdate{
		Name:                        req.Name,
		IsActive:                    req.IsActive,
		ScheduleDayOfMonth:          req.ScheduleDayOfMonth,
		SourceCategoryID:            req.SourceCategoryID,
		ActionType:                  req.ActionType,
		ActionDestinationCategoryID: req.ActionDestinationCategoryID,
		ActionDescription:           req.ActionDescription,
		ActionFixedAmount:           req.ActionFixedAmount,
		ActionPercentage:            req.ActionPercentage,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SCHEDULED_RULE", "scheduled_rule", ruleID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"scheduled_rule": rule})
}

// DeleteScheduledRule handles the deletion of a scheduled rule
// @Summary     Delete scheduled rule
// @Description Delete a scheduled rule. Deleting an absent rule succeeds. Transactions the rule already generated are kept. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id     path int true "Account ID"
// @Param       ruleId path int true "Scheduled rule ID"
// @Success     204 "Scheduled rule deleted"
// @Failure     400 {object} ErrorResponse "Invalid rule ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/scheduled-rules/{ruleId} [delete]
func (h *ScheduledRuleHandler) DeleteScheduledRule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ruleID, err := parsePathID(c, "ruleId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ruleService.DeleteScheduledRule(userID, accountID, ruleID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SCHEDULED_RULE", "scheduled_rule", ruleID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
