package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	apperrors "gestor/internal/errors"
	"gestor/internal/logger"
	"gestor/internal/models"
	"gestor/internal/money"
)

// schedulerService runs scheduled rules. A daily tick fans out over the
// accounts that have active rules, each account processed under its lock in
// a single database transaction. One failing account never stops the rest.
type schedulerService struct {
	db          *gorm.DB
	concurrency int
}

// NewSchedulerService creates a new SchedulerServicer. concurrency bounds
// the number of accounts processed in parallel per tick.
func NewSchedulerService(db *gorm.DB, concurrency int) SchedulerServicer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &schedulerService{db: db, concurrency: concurrency}
}

// RunDailyTick executes every scheduled rule due on the given date and
// returns the number of transactions generated. Re-running the tick for the
// same date is a no-op: executed rules carry the date in last_run_on.
func (s *schedulerService) RunDailyTick(ctx context.Context, date time.Time) (int, error) {
	log := logger.Get()

	var accountIDs []uint
	if err := s.db.WithContext(ctx).Model(&models.ScheduledRule{}).
		Where("is_active = ?", true).
		Distinct().
		Pluck("account_id", &accountIDs).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(accountIDs) == 0 {
		return 0, nil
	}

	var generated atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, accountID := range accountIDs {
		accountID := accountID
		g.Go(func() error {
			err := retry.Do(
				func() error {
					n, err := s.runAccount(ctx, accountID, date)
					if err != nil {
						return err
					}
					generated.Add(int64(n))
					return nil
				},
				retry.Attempts(3),
				retry.Delay(2*time.Second),
				retry.LastErrorOnly(true),
				retry.Context(ctx),
			)
			if err != nil {
				// Isolate the failure: the stamp guard makes the account
				// safe to pick up again on the next tick.
				log.Errorw("Scheduled rules failed for account",
					"account_id", accountID,
					"date", date.Format("2006-01-02"),
					"error", err,
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(generated.Load()), apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := int(generated.Load())
	if total > 0 {
		log.Infow("Scheduled rules tick completed",
			"date", date.Format("2006-01-02"),
			"transactions_generated", total,
		)
	}
	return total, nil
}

// runAccount executes the account's due rules atomically. The generated
// entries and the last_run_on stamps commit together, so a crash mid-account
// re-runs the whole account cleanly.
func (s *schedulerService) runAccount(ctx context.Context, accountID uint, date time.Time) (int, error) {
	unlock := accountLocks.Lock(accountID)
	defer unlock()

	log := logger.Get()
	generated := 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rules []models.ScheduledRule
		if err := tx.Where("account_id = ? AND is_active = ?", accountID, true).
			Order("id ASC").
			Find(&rules).Error; err != nil {
			return err
		}

		for i := range rules {
			rule := &rules[i]
			if !rule.DueOn(date) || rule.AlreadyRanOn(date) {
				continue
			}

			action, ok := rule.Action()
			if !ok {
				log.Warnw("Skipping scheduled rule with inconsistent action",
					"rule_id", rule.ID,
					"account_id", rule.AccountID,
				)
				continue
			}

			var base int64
			if action.Type == models.ActionTypePercentage {
				var err error
				base, err = s.categoryBalance(tx, rule.AccountID, rule.SourceCategoryID, date)
				if err != nil {
					return err
				}
			}

			amount := action.AmountFor(base)
			if amount <= 0 {
				log.Warnw("Skipping scheduled rule with non-positive amount",
					"rule_id", rule.ID,
					"account_id", rule.AccountID,
					"base", money.FormatCents(base),
				)
				continue
			}

			destID := rule.ActionDestinationCategoryID
			generatedTx := models.Transaction{
				AccountID:     rule.AccountID,
				CategoryID:    &destID,
				Type:          models.TransactionTypeExpense,
				Amount:        amount,
				Description:   ruleDescription(rule.ActionDescription, rule.Name),
				Date:          date,
				CreatedByRule: true,
			}
			if err := tx.Create(&generatedTx).Error; err != nil {
				return err
			}

			runOn := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
			if err := tx.Model(rule).Update("last_run_on", runOn).Error; err != nil {
				return err
			}
			generated++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("account %d: %w", accountID, err)
	}
	return generated, nil
}

// categoryBalance returns the category's running balance in the account up
// to and including the given date: income minus expense, in cents.
func (s *schedulerService) categoryBalance(tx *gorm.DB, accountID, categoryID uint, until time.Time) (int64, error) {
	var balance int64
	endOfDay := time.Date(until.Year(), until.Month(), until.Day(), 23, 59, 59, 0, until.Location())
	err := tx.Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)",
			models.TransactionTypeIncome).
		Where("account_id = ? AND category_id = ? AND date <= ?", accountID, categoryID, endOfDay).
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}
