package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"gestor/internal/models"
	"gestor/internal/pagination"
	"gestor/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("seeds_membership_and_income_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		user := testutil.CreateTestUser(t, db)
		account, err := svc.CreateAccount(user.ID, "Casa")
		testutil.AssertNoError(t, err)
		if account.Name != "Casa" {
			t.Errorf("expected name Casa, got %s", account.Name)
		}

		var membershipCount int64
		testutil.AssertNoError(t, db.Model(&models.Membership{}).
			Where("user_id = ? AND account_id = ?", user.ID, account.ID).
			Count(&membershipCount).Error)
		if membershipCount != 1 {
			t.Error("expected owner membership to be created")
		}

		var income models.Category
		err = db.Where("account_id = ? AND name = ?", account.ID, models.IncomeCategoryName).
			First(&income).Error
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.CreateAccount(user.ID, "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)

	owner := testutil.CreateTestUser(t, db)
	member := testutil.CreateTestUser(t, db)
	shared := testutil.CreateTestAccount(t, db, owner.ID)
	testutil.CreateTestAccount(t, db, owner.ID)
	testutil.AddTestMember(t, db, shared.ID, member.ID)

	ownerAccounts, err := svc.GetUserAccounts(owner.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if ownerAccounts.TotalItems != 2 {
		t.Errorf("expected owner to see 2 accounts, got %d", ownerAccounts.TotalItems)
	}

	memberAccounts, err := svc.GetUserAccounts(member.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if memberAccounts.TotalItems != 1 {
		t.Errorf("expected member to see 1 account, got %d", memberAccounts.TotalItems)
	}
}

func TestGetAccountForUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)

	owner := testutil.CreateTestUser(t, db)
	outsider := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, owner.ID)

	found, err := svc.GetAccountForUser(owner.ID, account.ID)
	testutil.AssertNoError(t, err)
	if found.ID != account.ID {
		t.Errorf("expected account %d, got %d", account.ID, found.ID)
	}

	_, err = svc.GetAccountForUser(outsider.ID, account.ID)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}

func TestUpdateAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)

	owner := testutil.CreateTestUser(t, db)
	member := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, owner.ID)
	testutil.AddTestMember(t, db, account.ID, member.ID)

	// Any member may rename, not just the owner.
	updated, err := svc.UpdateAccount(member.ID, account.ID, "Gastos compartidos")
	testutil.AssertNoError(t, err)
	if updated.Name != "Gastos compartidos" {
		t.Errorf("expected renamed account, got %s", updated.Name)
	}

	_, err = svc.UpdateAccount(owner.ID, account.ID, " ")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestDeleteAccount(t *testing.T) {
	t.Run("owner_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)
		testutil.AddTestMember(t, db, account.ID, member.ID)

		err := svc.DeleteAccount(member.ID, account.ID)
		testutil.AssertAppError(t, err, "NOT_ACCOUNT_OWNER")
	})

	t.Run("cascades_scoped_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)
		category := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		testutil.CreateTestTransaction(t, db, account.ID, category.ID, models.TransactionTypeExpense, 1000)
		testutil.CreateTestEventRule(t, db, account.ID, category.ID, dest.ID, models.TransactionTypeIncome, 5000)
		testutil.CreateTestScheduledRule(t, db, account.ID, category.ID, dest.ID, 5, 2000)

		testutil.AssertNoError(t, svc.DeleteAccount(owner.ID, account.ID))

		_, err := svc.GetAccountForUser(owner.ID, account.ID)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")

		for name, model := range map[string]interface{}{
			"transactions":    &models.Transaction{},
			"categories":      &models.Category{},
			"event rules":     &models.EventRule{},
			"scheduled rules": &models.ScheduledRule{},
			"memberships":     &models.Membership{},
		} {
			var count int64
			testutil.AssertNoError(t, db.Model(model).Where("account_id = ?", account.ID).Count(&count).Error)
			if count != 0 {
				t.Errorf("expected %s to be removed with the account, got %d", name, count)
			}
		}
	})
}

func TestAddMember(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestUser(t, db)
		invitee := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)

		membership, err := svc.AddMember(owner.ID, account.ID, invitee.Email, "Pareja")
		testutil.AssertNoError(t, err)
		if membership.UserID != invitee.ID {
			t.Errorf("expected membership for user %d, got %d", invitee.ID, membership.UserID)
		}
		if membership.Alias != "Pareja" {
			t.Errorf("expected alias Pareja, got %s", membership.Alias)
		}
	})

	t.Run("member_cannot_invite", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestUser(t, db)
		member := testutil.CreateTestUser(t, db)
		third := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)
		testutil.AddTestMember(t, db, account.ID, member.ID)

		_, err := svc.AddMember(member.ID, account.ID, third.Email, "")
		testutil.AssertAppError(t, err, "NOT_ACCOUNT_OWNER")
	})

	t.Run("already_member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)

		_, err := svc.AddMember(owner.ID, account.ID, owner.Email, "")
		testutil.AssertAppError(t, err, "ALREADY_MEMBER")
	})

	t.Run("unknown_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)

		_, err := svc.AddMember(owner.ID, account.ID, "nadie@example.com", "")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("membership_lookup_failure_surfaces", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestUser(t, db)
		invitee := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, owner.ID)

		err := db.Callback().Query().Before("gorm:query").
			Register("fail_membership_reads", func(tx *gorm.DB) {
				if tx.Statement.Table == "memberships" {
					tx.AddError(errors.New("membership lookup failed"))
				}
			})
		testutil.AssertNoError(t, err)

		_, err = svc.AddMember(owner.ID, account.ID, invitee.Email, "")
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		testutil.AssertNoError(t, db.Callback().Query().Remove("fail_membership_reads"))
		var count int64
		testutil.AssertNoError(t, db.Model(&models.Membership{}).
			Where("user_id = ? AND account_id = ?", invitee.ID, account.ID).
			Count(&count).Error)
		if count != 0 {
			t.Error("expected no membership to be created after failed lookup")
		}
	})
}

func TestListMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)

	owner := testutil.CreateTestUser(t, db)
	member := testutil.CreateTestUser(t, db)
	outsider := testutil.CreateTestUser(t, db)
	account := testutil.CreateTestAccount(t, db, owner.ID)
	testutil.AddTestMember(t, db, account.ID, member.ID)

	memberships, err := svc.ListMembers(member.ID, account.ID)
	testutil.AssertNoError(t, err)
	if len(memberships) != 2 {
		t.Errorf("expected 2 memberships, got %d", len(memberships))
	}

	_, err = svc.ListMembers(outsider.ID, account.ID)
	testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
}
