package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "gestor/internal/errors"
	"gestor/internal/models"
	"gestor/internal/pagination"
)

// accountService handles ledger-account business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a new ledger account owned by the given user. The
// owner is enrolled as the first member and the canonical income category
// ("Ingreso") is seeded so transaction and rule logic can rely on it.
func (s *accountService) CreateAccount(ownerID uint, name string) (*models.Account, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := &models.Account{Name: strings.TrimSpace(name), OwnerID: ownerID}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		membership := &models.Membership{UserID: ownerID, AccountID: account.ID}
		if err := tx.Create(membership).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		income := &models.Category{AccountID: &account.ID, Name: models.IncomeCategoryName}
		if err := tx.Create(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetUserAccounts retrieves a paginated list of the accounts the user is a
// member of.
func (s *accountService) GetUserAccounts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	page.Defaults()

	base := s.db.Model(&models.Account{}).
		Joins("JOIN memberships ON memberships.account_id = accounts.id").
		Where("memberships.user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var accounts []models.Account
	if err := base.Scopes(pagination.Paginate(page)).
		Order("accounts.created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(accounts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAccountForUser retrieves an account, verifying the user is a member.
// Non-members get a not-found, never a hint that the account exists.
func (s *accountService) GetAccountForUser(userID, accountID uint) (*models.Account, error) {
	var account models.Account
	err := s.db.
		Joins("JOIN memberships ON memberships.account_id = accounts.id").
		Where("accounts.id = ? AND memberships.user_id = ?", accountID, userID).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// UpdateAccount renames an account. Any member may rename.
func (s *accountService) UpdateAccount(userID, accountID uint, name string) (*models.Account, error) {
	account, err := s.GetAccountForUser(userID, accountID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	if err := s.db.Model(account).Update("name", strings.TrimSpace(name)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// DeleteAccount removes an account and everything scoped to it: memberships,
// categories, transactions, and automation rules. Owner only.
func (s *accountService) DeleteAccount(userID, accountID uint) error {
	account, err := s.GetAccountForUser(userID, accountID)
	if err != nil {
		return err
	}
	if account.OwnerID != userID {
		return apperrors.ErrNotAccountOwner
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.EventRule{},
			&models.ScheduledRule{},
			&models.Transaction{},
			&models.Category{},
			&models.Membership{},
		} {
			if err := tx.Where("account_id = ?", accountID).Delete(m).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if err := tx.Delete(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// AddMember enrolls another user, looked up by email, into the account.
// Owner only.
func (s *accountService) AddMember(userID, accountID uint, email, alias string) (*models.Membership, error) {
	account, err := s.GetAccountForUser(userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.OwnerID != userID {
		return nil, apperrors.ErrNotAccountOwner
	}

	var invitee models.User
	if err := s.db.Where("email = ? AND is_active = ?", strings.ToLower(email), true).First(&invitee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.Membership{}).
		Where("user_id = ? AND account_id = ?", invitee.ID, accountID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrAlreadyMember
	}

	membership := &models.Membership{UserID: invitee.ID, AccountID: accountID, Alias: alias}
	if err := s.db.Create(membership).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return membership, nil
}

// ListMembers returns the memberships of an account, visible to any member.
func (s *accountService) ListMembers(userID, accountID uint) ([]models.Membership, error) {
	if _, err := s.GetAccountForUser(userID, accountID); err != nil {
		return nil, err
	}

	var memberships []models.Membership
	if err := s.db.Preload("User").
		Where("account_id = ?", accountID).
		Order("joined_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return memberships, nil
}
