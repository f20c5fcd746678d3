package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "gestor/internal/errors"
	"gestor/internal/models"
	"gestor/internal/pagination"
)

// transactionService handles ledger business logic. Writing a transaction is
// the upstream event of the automation engine: creation evaluates the
// account's event rules under the account lock, inside one database
// transaction.
type transactionService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
	evaluator       EventRuleEvaluator
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer, evaluator EventRuleEvaluator) TransactionServicer {
	return &transactionService{
		db:              db,
		accountService:  accountService,
		categoryService: categoryService,
		evaluator:       evaluator,
	}
}

// CreateTransaction records a new income or expense entry and applies the
// account's matching event rules. It returns the created entry plus any
// rule-generated entries; all of them commit atomically.
func (s *transactionService) CreateTransaction(
	userID, accountID, categoryID uint,
	txType models.TransactionType,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, []models.Transaction, error) {
	if amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return nil, nil, apperrors.ErrInvalidTransactionType
	}

	if _, err := s.accountService.GetAccountForUser(userID, accountID); err != nil {
		return nil, nil, err
	}
	if _, err := s.categoryService.GetAccountCategory(accountID, categoryID); err != nil {
		return nil, nil, err
	}

	if date.IsZero() {
		date = time.Now()
	}

	unlock := accountLocks.Lock(accountID)
	defer unlock()

	transaction := &models.Transaction{
		AccountID:   accountID,
		CategoryID:  &categoryID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        date,
		CreatedByID: &userID,
	}

	var generated []models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		var evalErr error
		generated, evalErr = s.evaluator.ApplyEventRules(tx, transaction)
		return evalErr
	})
	if err != nil {
		return nil, nil, err
	}

	return transaction, generated, nil
}

// ListTransactions retrieves a paginated, filtered list of an account's
// transactions, newest first.
func (s *transactionService) ListTransactions(userID, accountID uint, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if _, err := s.accountService.GetAccountForUser(userID, accountID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("account_id = ?", accountID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Category").
		Order("date DESC, id DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	return q
}

// GetTransactionByID retrieves one of the account's transactions.
func (s *transactionService) GetTransactionByID(userID, accountID, transactionID uint) (*models.Transaction, error) {
	if _, err := s.accountService.GetAccountForUser(userID, accountID); err != nil {
		return nil, err
	}

	var transaction models.Transaction
	if err := s.db.Where("id = ? AND account_id = ?", transactionID, accountID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction fully replaces an entry's editable fields. Edits never
// re-run event rules; only creation is a trigger.
func (s *transactionService) UpdateTransaction(userID, accountID, transactionID uint, fields TransactionUpdateFields) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, accountID, transactionID)
	if err != nil {
		return nil, err
	}

	if fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fields.Type != models.TransactionTypeIncome && fields.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if _, err := s.categoryService.GetAccountCategory(accountID, fields.CategoryID); err != nil {
		return nil, err
	}

	date := fields.Date
	if date.IsZero() {
		date = transaction.Date
	}

	updates := map[string]interface{}{
		"category_id": fields.CategoryID,
		"type":        fields.Type,
		"amount":      fields.Amount,
		"description": fields.Description,
		"date":        date,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetTransactionByID(userID, accountID, transactionID)
}

// DeleteTransaction removes an entry from the ledger.
func (s *transactionService) DeleteTransaction(userID, accountID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, accountID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CategorySummary aggregates the account's ledger per category within the
// optional date range, backing the client's chart views.
func (s *transactionService) CategorySummary(userID, accountID uint, from, to *time.Time) ([]CategorySummaryRow, error) {
	if _, err := s.accountService.GetAccountForUser(userID, accountID); err != nil {
		return nil, err
	}

	q := s.db.Model(&models.Transaction{}).
		Select("transactions.category_id AS category_id, "+
			"COALESCE(categories.name, '') AS category_name, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'INCOME' THEN transactions.amount ELSE 0 END), 0) AS income_total, "+
			"COALESCE(SUM(CASE WHEN transactions.type = 'EXPENSE' THEN transactions.amount ELSE 0 END), 0) AS expense_total").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.account_id = ?", accountID).
		Group("transactions.category_id, categories.name").
		Order("category_name ASC")
	if from != nil {
		q = q.Where("transactions.date >= ?", *from)
	}
	if to != nil {
		q = q.Where("transactions.date <= ?", *to)
	}

	var rows []CategorySummaryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []CategorySummaryRow{}
	}
	return rows, nil
}
