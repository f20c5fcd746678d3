package services

import (
	"context"
	"testing"
	"time"

	"gestor/internal/models"
	"gestor/internal/testutil"
)

func tickDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 3, 0, 0, 0, time.UTC)
}

func countGenerated(t *testing.T, svc SchedulerServicer, accountID uint) int64 {
	t.Helper()
	db := svc.(*schedulerService).db
	var n int64
	if err := db.Model(&models.Transaction{}).
		Where("account_id = ? AND created_by_rule = ?", accountID, true).
		Count(&n).Error; err != nil {
		t.Fatalf("failed to count generated transactions: %v", err)
	}
	return n
}

func TestRunDailyTick(t *testing.T) {
	t.Run("fixed_rule_fires_on_its_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		gym := testutil.CreateTestCategoryWithName(t, db, account.ID, "Gimnasio")
		testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, gym.ID, 5, 2000)

		n, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.March, 5))
		testutil.AssertNoError(t, err)
		if n != 1 {
			t.Fatalf("expected 1 generated transaction, got %d", n)
		}

		var generated models.Transaction
		testutil.AssertNoError(t, db.Where("account_id = ? AND created_by_rule = ?", account.ID, true).First(&generated).Error)
		if generated.Type != models.TransactionTypeExpense {
			t.Errorf("expected EXPENSE, got %s", generated.Type)
		}
		if generated.Amount != 2000 {
			t.Errorf("expected amount 2000, got %d", generated.Amount)
		}
		if generated.CategoryID == nil || *generated.CategoryID != gym.ID {
			t.Errorf("expected destination %d, got %v", gym.ID, generated.CategoryID)
		}
	})

	t.Run("does_not_fire_on_other_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, dest.ID, 5, 2000)

		n, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.March, 6))
		testutil.AssertNoError(t, err)
		if n != 0 {
			t.Errorf("expected no emissions on day 6, got %d", n)
		}
	})

	t.Run("tick_is_idempotent_per_day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, dest.ID, 5, 2000)

		day := tickDate(2024, time.March, 5)
		n, err := svc.RunDailyTick(context.Background(), day)
		testutil.AssertNoError(t, err)
		if n != 1 {
			t.Fatalf("expected 1 emission on first tick, got %d", n)
		}

		n, err = svc.RunDailyTick(context.Background(), day)
		testutil.AssertNoError(t, err)
		if n != 0 {
			t.Errorf("expected re-run for the same day to be a no-op, got %d", n)
		}
		if total := countGenerated(t, svc, account.ID); total != 1 {
			t.Errorf("expected 1 generated transaction total, got %d", total)
		}
	})

	t.Run("fires_again_next_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, dest.ID, 5, 2000)

		for _, day := range []time.Time{
			tickDate(2024, time.March, 5),
			tickDate(2024, time.April, 5),
		} {
			n, err := svc.RunDailyTick(context.Background(), day)
			testutil.AssertNoError(t, err)
			if n != 1 {
				t.Errorf("expected 1 emission on %v, got %d", day, n)
			}
		}
		if total := countGenerated(t, svc, account.ID); total != 2 {
			t.Errorf("expected 2 generated transactions, got %d", total)
		}
	})

	t.Run("day_31_clamps_to_short_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, dest.ID, 31, 2000)

		n, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.February, 29))
		testutil.AssertNoError(t, err)
		if n != 1 {
			t.Errorf("expected day-31 rule to fire on Feb 29, got %d", n)
		}

		n, err = svc.RunDailyTick(context.Background(), tickDate(2024, time.April, 30))
		testutil.AssertNoError(t, err)
		if n != 1 {
			t.Errorf("expected day-31 rule to fire on Apr 30, got %d", n)
		}

		n, err = svc.RunDailyTick(context.Background(), tickDate(2024, time.April, 29))
		testutil.AssertNoError(t, err)
		if n != 0 {
			t.Errorf("expected no emission on Apr 29, got %d", n)
		}
	})

	t.Run("percentage_of_source_category_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		// Balance in source: 1500.00 income - 500.00 expense = 1000.00.
		testutil.CreateTestTransactionOn(t, db, account.ID, source.ID, models.TransactionTypeIncome, 150000, tickDate(2024, time.March, 1))
		testutil.CreateTestTransactionOn(t, db, account.ID, source.ID, models.TransactionTypeExpense, 50000, tickDate(2024, time.March, 2))
		// A later transaction must not count toward the balance base.
		testutil.CreateTestTransactionOn(t, db, account.ID, source.ID, models.TransactionTypeIncome, 999900, tickDate(2024, time.March, 20))
		testutil.CreateTestPercentageScheduledRule(t, db, account.ID, source.ID, dest.ID, 10, 20)

		n, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.March, 10))
		testutil.AssertNoError(t, err)
		if n != 1 {
			t.Fatalf("expected 1 emission, got %d", n)
		}

		var generated models.Transaction
		testutil.AssertNoError(t, db.Where("account_id = ? AND created_by_rule = ?", account.ID, true).First(&generated).Error)
		if generated.Amount != 20000 {
			t.Errorf("expected 20%% of 1000.00 = 20000, got %d", generated.Amount)
		}
	})

	t.Run("percentage_of_non_positive_balance_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		testutil.CreateTestTransactionOn(t, db, account.ID, source.ID, models.TransactionTypeExpense, 50000, tickDate(2024, time.March, 1))
		testutil.CreateTestPercentageScheduledRule(t, db, account.ID, source.ID, dest.ID, 10, 20)

		n, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.March, 10))
		testutil.AssertNoError(t, err)
		if n != 0 {
			t.Errorf("expected negative balance to skip the rule, got %d emissions", n)
		}

		// A skipped rule is not stamped; it may re-attempt on a later tick
		// in the month once the balance turns positive.
		var rule models.ScheduledRule
		testutil.AssertNoError(t, db.Where("account_id = ?", account.ID).First(&rule).Error)
		if rule.LastRunOn != nil {
			t.Error("expected skipped rule to keep a nil last_run_on")
		}
	})

	t.Run("inactive_rule_skipped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		rule := testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, dest.ID, 5, 2000)
		testutil.AssertNoError(t, db.Model(rule).Update("is_active", false).Error)

		n, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.March, 5))
		testutil.AssertNoError(t, err)
		if n != 0 {
			t.Errorf("expected inactive rule not to fire, got %d", n)
		}
	})

	t.Run("multiple_accounts_processed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		for i := 0; i < 3; i++ {
			user := testutil.CreateTestUser(t, db)
			account := testutil.CreateTestAccount(t, db, user.ID)
			source := testutil.CreateTestCategory(t, db, account.ID)
			dest := testutil.CreateTestCategory(t, db, account.ID)
			testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, dest.ID, 5, 1000)
		}

		n, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.March, 5))
		testutil.AssertNoError(t, err)
		if n != 3 {
			t.Errorf("expected 3 emissions across accounts, got %d", n)
		}
	})

	t.Run("stamped_rule_generated_description", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSchedulerService(db, 2)

		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAccount(t, db, user.ID)
		source := testutil.CreateTestCategory(t, db, account.ID)
		dest := testutil.CreateTestCategory(t, db, account.ID)
		rule := testutil.CreateTestScheduledRule(t, db, account.ID, source.ID, dest.ID, 5, 2000)

		_, err := svc.RunDailyTick(context.Background(), tickDate(2024, time.March, 5))
		testutil.AssertNoError(t, err)

		var generated models.Transaction
		testutil.AssertNoError(t, db.Where("account_id = ? AND created_by_rule = ?", account.ID, true).First(&generated).Error)
		if generated.Description != "Auto: "+rule.Name {
			t.Errorf("expected fallback description, got %q", generated.Description)
		}

		var stamped models.ScheduledRule
		testutil.AssertNoError(t, db.First(&stamped, rule.ID).Error)
		if stamped.LastRunOn == nil {
			t.Fatal("expected last_run_on to be stamped after emission")
		}
		y, m, d := stamped.LastRunOn.Date()
		if y != 2024 || m != time.March || d != 5 {
			t.Errorf("expected last_run_on 2024-03-05, got %v", stamped.LastRunOn)
		}
	})
}
