package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gestor/internal/models"
	"gestor/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpgradeToPremium(userID uint) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// AccountServicer defines the contract for ledger-account business logic.
type AccountServicer interface {
	CreateAccount(ownerID uint, name string) (*models.Account, error)
	GetUserAccounts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountForUser(userID, accountID uint) (*models.Account, error)
	UpdateAccount(userID, accountID uint, name string) (*models.Account, error)
	DeleteAccount(userID, accountID uint) error
	AddMember(userID, accountID uint, email, alias string) (*models.Membership, error)
	ListMembers(userID, accountID uint) ([]models.Membership, error)
}

// CategoryServicer defines the contract for category business logic.
// Reads are open to any account member; mutations are premium-gated.
type CategoryServicer interface {
	ListCategories(userID, accountID uint) ([]models.Category, error)
	CreateCategory(userID, accountID uint, name string) (*models.Category, error)
	UpdateCategory(userID, accountID, categoryID uint, name string) (*models.Category, error)
	DeleteCategory(userID, accountID, categoryID uint) error
	GetAccountCategory(accountID, categoryID uint) (*models.Category, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	Type       *models.TransactionType
	CategoryID *uint
}

// TransactionUpdateFields carries a full replacement of an editable
// transaction's fields.
type TransactionUpdateFields struct {
	CategoryID  uint
	Type        models.TransactionType
	Amount      int64
	Description string
	Date        time.Time
}

// CategorySummaryRow aggregates an account's ledger per category, backing
// the client's chart views.
type CategorySummaryRow struct {
	CategoryID   *uint  `json:"category_id"`
	CategoryName string `json:"category_name"`
	IncomeTotal  int64  `json:"income_total"`
	ExpenseTotal int64  `json:"expense_total"`
}

// Balance returns the row's signed running balance in cents.
func (r CategorySummaryRow) Balance() int64 {
	return r.IncomeTotal - r.ExpenseTotal
}

// TransactionServicer defines the contract for transaction business logic.
// CreateTransaction additionally returns the transactions emitted by event
// rules the new entry triggered.
type TransactionServicer interface {
	CreateTransaction(userID, accountID, categoryID uint, txType models.TransactionType, amount int64, description string, date time.Time) (*models.Transaction, []models.Transaction, error)
	ListTransactions(userID, accountID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, accountID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, accountID, transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, accountID, transactionID uint) error
	CategorySummary(userID, accountID uint, from, to *time.Time) ([]CategorySummaryRow, error)
}

// EventRuleSpec carries the fields for creating an event rule.
type EventRuleSpec struct {
	Name                        string
	IsActive                    *bool
	TriggerCategoryID           uint
	TriggerTransactionType      models.TransactionType
	ActionType                  models.ActionType
	ActionDestinationCategoryID uint
	ActionDescription           string
	ActionFixedAmount           *int64
	ActionPercentage            *float64
}

// ScheduledRuleSpec carries the fields for creating a scheduled rule.
type ScheduledRuleSpec struct {
	Name                        string
	IsActive                    *bool
	ScheduleDayOfMonth          int
	SourceCategoryID            uint
	ActionType                  models.ActionType
	ActionDestinationCategoryID uint
	ActionDescription           string
	ActionFixedAmount           *int64
	ActionPercentage            *float64
}

// EventRuleUpdate carries a partial update; nil fields are left unchanged.
type EventRuleUpdate struct {
	Name                        *string
	IsActive                    *bool
	TriggerCategoryID           *uint
	TriggerTransactionType      *models.TransactionType
	ActionType                  *models.ActionType
	ActionDestinationCategoryID *uint
	ActionDescription           *string
	ActionFixedAmount           *int64
	ActionPercentage            *float64
}

// ScheduledRuleUpdate carries a partial update; nil fields are left unchanged.
type ScheduledRuleUpdate struct {
	Name                        *string
	IsActive                    *bool
	ScheduleDayOfMonth          *int
	SourceCategoryID            *uint
	ActionType                  *models.ActionType
	ActionDestinationCategoryID *uint
	ActionDescription           *string
	ActionFixedAmount           *int64
	ActionPercentage            *float64
}

// RuleServicer is the rule repository: CRUD and active-state toggling for
// automation rules, scoped to an account and premium-gated throughout.
type RuleServicer interface {
	ListEventRules(userID, accountID uint) ([]models.EventRule, error)
	CreateEventRule(userID, accountID uint, spec EventRuleSpec) (*models.EventRule, error)
	UpdateEventRule(userID, accountID, ruleID uint, update EventRuleUpdate) (*models.EventRule, error)
	SetEventRuleActive(userID, accountID, ruleID uint, active bool) (*models.EventRule, error)
	DeleteEventRule(userID, accountID, ruleID uint) error

	ListScheduledRules(userID, accountID uint) ([]models.ScheduledRule, error)
	CreateScheduledRule(userID, accountID uint, spec ScheduledRuleSpec) (*models.ScheduledRule, error)
	UpdateScheduledRule(userID, accountID, ruleID uint, update ScheduledRuleUpdate) (*models.ScheduledRule, error)
	SetScheduledRuleActive(userID, accountID, ruleID uint, active bool) (*models.ScheduledRule, error)
	DeleteScheduledRule(userID, accountID, ruleID uint) error
}

// EventRuleEvaluator applies active event rules to a freshly created
// transaction within the caller's database transaction, returning the
// emitted entries.
type EventRuleEvaluator interface {
	ApplyEventRules(tx *gorm.DB, trigger *models.Transaction) ([]models.Transaction, error)
}

// SchedulerServicer runs the scheduled-rule path for a calendar day.
type SchedulerServicer interface {
	RunDailyTick(ctx context.Context, date time.Time) (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
