package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "gestor/internal/errors"
	"gestor/internal/models"
)

// categoryService handles category business logic. Every read returns the
// global categories plus the account's own; mutations only touch
// account-scoped categories and are premium-gated, mirroring the listing
// permissions of the rest of the automation surface.
type categoryService struct {
	db             *gorm.DB
	userService    UserServicer
	accountService AccountServicer
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, userService UserServicer, accountService AccountServicer) CategoryServicer {
	return &categoryService{db: db, userService: userService, accountService: accountService}
}

// ListCategories returns the global categories plus the account's own.
func (s *categoryService) ListCategories(userID, accountID uint) ([]models.Category, error) {
	if _, err := s.accountService.GetAccountForUser(userID, accountID); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.
		Where("account_id IS NULL OR account_id = ?", accountID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetAccountCategory fetches a category reachable from the account: either
// global or scoped to it. Used by rule and transaction validation.
func (s *categoryService) GetAccountCategory(accountID, categoryID uint) (*models.Category, error) {
	var category models.Category
	err := s.db.
		Where("id = ? AND (account_id IS NULL OR account_id = ?)", categoryID, accountID).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// CreateCategory creates an account-scoped category. Premium only.
func (s *categoryService) CreateCategory(userID, accountID uint, name string) (*models.Category, error) {
	if err := s.authorizeMutation(userID, accountID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	if err := s.checkNameFree(accountID, name, 0); err != nil {
		return nil, err
	}

	category := &models.Category{AccountID: &accountID, Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// UpdateCategory renames an account-scoped category. Premium only; global
// categories are read-only from the account's perspective.
func (s *categoryService) UpdateCategory(userID, accountID, categoryID uint, name string) (*models.Category, error) {
	if err := s.authorizeMutation(userID, accountID); err != nil {
		return nil, err
	}

	category, err := s.GetAccountCategory(accountID, categoryID)
	if err != nil {
		return nil, err
	}
	if category.IsGlobal() {
		return nil, apperrors.ErrGlobalCategory
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if err := s.checkNameFree(accountID, name, category.ID); err != nil {
		return nil, err
	}

	if err := s.db.Model(category).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// DeleteCategory removes an account-scoped category. Premium only. Rules
// referencing the category go with it; transactions keep their rows with a
// cleared category reference.
func (s *categoryService) DeleteCategory(userID, accountID, categoryID uint) error {
	if err := s.authorizeMutation(userID, accountID); err != nil {
		return err
	}

	category, err := s.GetAccountCategory(accountID, categoryID)
	if err != nil {
		return err
	}
	if category.IsGlobal() {
		return apperrors.ErrGlobalCategory
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ? AND (trigger_category_id = ? OR action_destination_category_id = ?)",
			accountID, categoryID, categoryID).Delete(&models.EventRule{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("account_id = ? AND (source_category_id = ? OR action_destination_category_id = ?)",
			accountID, categoryID, categoryID).Delete(&models.ScheduledRule{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&models.Transaction{}).
			Where("category_id = ?", categoryID).
			Update("category_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// authorizeMutation enforces the premium gate and account membership for
// category mutations.
func (s *categoryService) authorizeMutation(userID, accountID uint) error {
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

// checkNameFree enforces case-insensitive name uniqueness within the
// account's reachable categories, excluding the category being renamed.
func (s *categoryService) checkNameFree(accountID uint, name string, excludeID uint) error {
	var count int64
	q := s.db.Model(&models.Category{}).
		Where("(account_id IS NULL OR account_id = ?) AND LOWER(name) = LOWER(?)", accountID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateCategory
	}
	return nil
}
