package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gestor/internal/errors"
	"gestor/internal/models"
	"gestor/internal/services"
)

// EventRuleHandler handles event-rule requests. Event rules fire when a
// matching transaction is recorded in the account.
type EventRuleHandler struct {
	ruleService  services.RuleServicer
	auditService services.AuditServicer
}

// NewEventRuleHandler creates a new EventRuleHandler.
func NewEventRuleHandler(ruleService services.RuleServicer, auditService services.AuditServicer) *EventRuleHandler {
	return &EventRuleHandler{ruleService: ruleService, auditService: auditService}
}

// CreateEventRuleRequest represents the payload for creating an event rule.
// Exactly one of action_fixed_amount and action_percentage must be set,
// matching action_type.
type CreateEventRuleRequest struct {
	Name                        string                 `json:"name" binding:"required,max=100"`
	IsActive                    *bool                  `json:"is_active"`
	TriggerCategoryID           uint                   `json:"trigger_category" binding:"required"`
	TriggerTransactionType      models.TransactionType `json:"trigger_transaction_type" binding:"required,transaction_type"`
	ActionType                  models.ActionType      `json:"action_type" binding:"required,action_type"`
	ActionDestinationCategoryID uint                   `json:"action_destination_category" binding:"required"`
	ActionDescription           string                 `json:"action_description" binding:"max=255"`
	ActionFixedAmount           *int64                 `json:"action_fixed_amount"`
	ActionPercentage            *float64               `json:"action_percentage"`
}

// UpdateEventRuleRequest represents a partial update; absent fields are left
// unchanged.
type UpdateEventRuleRequest struct {
	Name                        *string                 `json:"name" binding:"omitempty,max=100"`
	IsActive                    *bool                   `json:"is_active"`
	TriggerCategoryID           *uint                   `json:"trigger_category"`
	TriggerTransactionType      *models.TransactionType `json:"trigger_transaction_type" binding:"omitempty,transaction_type"`
	ActionType                  *models.ActionType      `json:"action_type" binding:"omitempty,action_type"`
	ActionDestinationCategoryID *uint                   `json:"action_destination_category"`
	ActionDescription           *string                 `json:"action_description" binding:"omitempty,max=255"`
	ActionFixedAmount           *int64                  `json:"action_fixed_amount"`
	ActionPercentage            *float64                `json:"action_percentage"`
}

// ListEventRules handles listing an account's event rules
// @Summary     List event rules
// @Description List the account's event rules. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Account ID"
// @Success     200 {object} map[string]interface{} "Event rules"
// @Failure     400 {object} ErrorResponse "Invalid account ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/event-rules [get]
func (h *EventRuleHandler) ListEventRules(c *gin.Context) {
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

	rules, err := h.ruleService.ListEventRules(userID, accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_rules": rules})
}

// CreateEventRule handles the creation of an event rule
// @Summary     Create an event rule
// @Description Create an event rule that fires when a transaction matching its trigger category and type is recorded. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "Account ID"
// @Param       request body CreateEventRuleRequest true "Event rule definition"
// @Success     201 {object} models.EventRule "Event rule created"
// @Failure     400 {object} ErrorResponse "Invalid input or inconsistent action"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/event-rules [post]
func (h *EventRuleHandler) CreateEventRule(c *gin.Context) {
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

	var req CreateEventRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.ruleService.CreateEventRule(userID, accountID, services.EventRuleSpec{
		Name:                        req.Name,
		IsActive:                    req.IsActive,
		TriggerCategoryID:           req.TriggerCategoryID,
		TriggerTransactionType:      req.TriggerTransactionType,
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

	h.auditService.Log(userID, "CREATE_EVENT_RULE", "event_rule", rule.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "account_id": accountID})

	c.JSON(http.StatusCreated, gin.H{"event_rule": rule})
}

// UpdateEventRule handles a partial update of an event rule
// @Summary     Update event rule
// @Description Partially update an event rule. Toggling is_active pauses or resumes the rule without affecting transactions it already generated. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                    true "Account ID"
// @Param       ruleId  path int                    true "Event rule ID"
// @Param       request body UpdateEventRuleRequest true "Fields to update"
// @Success     200 {object} models.EventRule "Updated event rule"
// @Failure     400 {object} ErrorResponse "Invalid input or inconsistent action"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account, category, or rule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/event-rules/{ruleId} [patch]
func (h *EventRuleHandler) UpdateEventRule(c *gin.Context) {
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

	var req UpdateEventRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	rule, err := h.ruleService.UpdateEventRule(userID, accountID, ruleID, services.EventRuleUpdate{
		Name:                        req.Name,
		IsActive:                    req.IsActive,
		TriggerCategoryID:           req.TriggerCategoryID,
		TriggerTransactionType:      req.TriggerTransactionType,
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

	h.auditService.Log(userID, "UPDATE_EVENT_RULE", "event_rule", ruleID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"event_rule": rule})
}

// DeleteEventRule handles the deletion of an event rule
// @Summary     Delete event rule
// @Description Delete an event rule. Deleting an absent rule succeeds. Transactions the rule already generated are kept. Premium only.
// @Tags        rules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id     path int true "Account ID"
// @Param       ruleId path int true "Event rule ID"
// @Success     204 "Event rule deleted"
// @Failure     400 {object} ErrorResponse "Invalid rule ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Premium subscription required"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/event-rules/{ruleId} [delete]
func (h *EventRuleHandler) DeleteEventRule(c *gin.Context) {
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

	if err := h.ruleService.DeleteEventRule(userID, accountID, ruleID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EVENT_RULE", "event_rule", ruleID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
