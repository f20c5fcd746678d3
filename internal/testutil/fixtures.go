package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gestor/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a normal user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RoleNormal)
}

// CreateTestPremiumUser creates a premium user.
func CreateTestPremiumUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RolePremium)
}

func createUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAccount creates an account owned by the given user, with the
// owner's membership in place.
func CreateTestAccount(t *testing.T, db *gorm.DB, ownerID uint) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		OwnerID: ownerID,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	membership := &models.Membership{
		UserID:    ownerID,
		AccountID: account.ID,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to create owner membership: %v", err)
	}
	return account
}

// AddTestMember adds a user to an account.
func AddTestMember(t *testing.T, db *gorm.DB, accountID, userID uint) *models.Membership {
	t.Helper()

	membership := &models.Membership{
		UserID:    userID,
		AccountID: accountID,
	}
	if err := db.Create(membership).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}
	return membership
}

// CreateTestCategory creates a category owned by the given account.
func CreateTestCategory(t *testing.T, db *gorm.DB, accountID uint) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, accountID, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates an account-owned category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, accountID uint, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		AccountID: &accountID,
		Name:      name,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestGlobalCategory creates a category shared by every account.
func CreateTestGlobalCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Global Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test global category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type and amount (in cents).
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID, categoryID uint, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionOn(t, db, accountID, categoryID, txType, amount, time.Now())
}

// CreateTestTransactionOn creates a transaction dated on the given day.
func CreateTestTransactionOn(t *testing.T, db *gorm.DB, accountID, categoryID uint, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID:  accountID,
		CategoryID: &categoryID,
		Type:       txType,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestEventRule creates an active fixed-amount event rule.
func CreateTestEventRule(t *testing.T, db *gorm.DB, accountID, triggerCategoryID, destCategoryID uint, txType models.TransactionType, fixedAmount int64) *models.EventRule {
	t.Helper()

	rule := &models.EventRule{
		AccountID:                   accountID,
		Name:                        fmt.Sprintf("Test Event Rule %d", nextID()),
		IsActive:                    true,
		TriggerCategoryID:           triggerCategoryID,
		TriggerTransactionType:      txType,
		ActionType:                  models.ActionTypeFixed,
		ActionDestinationCategoryID: destCategoryID,
		ActionFixedAmount:           &fixedAmount,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test event rule: %v", err)
	}
	return rule
}

// CreateTestPercentageEventRule creates an active percentage event rule.
func CreateTestPercentageEventRule(t *testing.T, db *gorm.DB, accountID, triggerCategoryID, destCategoryID uint, txType models.TransactionType, percentage float64) *models.EventRule {
	t.Helper()

	rule := &models.EventRule{
		AccountID:                   accountID,
		Name:                        fmt.Sprintf("Test Event Rule %d", nextID()),
		IsActive:                    true,
		TriggerCategoryID:           triggerCategoryID,
		TriggerTransactionType:      txType,
		ActionType:                  models.ActionTypePercentage,
		ActionDestinationCategoryID: destCategoryID,
		ActionPercentage:            &percentage,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test percentage event rule: %v", err)
	}
	return rule
}

// CreateTestScheduledRule creates an active fixed-amount scheduled rule for
// the given day of month.
func CreateTestScheduledRule(t *testing.T, db *gorm.DB, accountID, sourceCategoryID, destCategoryID uint, day int, fixedAmount int64) *models.ScheduledRule {
	t.Helper()

	rule := &models.ScheduledRule{
		AccountID:                   accountID,
		Name:                        fmt.Sprintf("Test Scheduled Rule %d", nextID()),
		IsActive:                    true,
		ScheduleDayOfMonth:          day,
		SourceCategoryID:            sourceCategoryID,
		ActionType:                  models.ActionTypeFixed,
		ActionDestinationCategoryID: destCategoryID,
		ActionFixedAmount:           &fixedAmount,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test scheduled rule: %v", err)
	}
	return rule
}

// CreateTestPercentageScheduledRule creates an active percentage scheduled rule.
func CreateTestPercentageScheduledRule(t *testing.T, db *gorm.DB, accountID, sourceCategoryID, destCategoryID uint, day int, percentage float64) *models.ScheduledRule {
	t.Helper()

	rule := &models.ScheduledRule{
		AccountID:                   accountID,
		Name:                        fmt.Sprintf("Test Scheduled Rule %d", nextID()),
		IsActive:                    true,
		ScheduleDayOfMonth:          day,
		SourceCategoryID:            sourceCategoryID,
		ActionType:                  models.ActionTypePercentage,
		ActionDestinationCategoryID: destCategoryID,
		ActionPercentage:            &percentage,
	}
	if err := db.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test percentage scheduled rule: %v", err)
	}
	return rule
}
