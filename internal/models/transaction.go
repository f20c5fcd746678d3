package models

import "time"

// TransactionType represents the direction of a transaction. Amount is always
// a non-negative magnitude; the sign is implied by the type.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction is a single movement in an account's ledger. Amounts are
// stored in cents. Transactions written by the rule evaluators carry
// CreatedByRule = true; those never act as triggers themselves, which is
// what prevents automation chains.
type Transaction struct {
	Base
	AccountID     uint            `gorm:"not null;index" json:"account_id"`
	CategoryID    *uint           `gorm:"index" json:"category_id,omitempty"`
	Type          TransactionType `gorm:"not null" json:"transaction_type"`
	Amount        int64           `gorm:"type:bigint;not null" json:"amount"`
	Description   string          `gorm:"size:255" json:"description"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	CreatedByRule bool            `gorm:"not null;default:false" json:"created_by_rule"`
	CreatedByID   *uint           `json:"created_by_id,omitempty"`

	Account  Account   `gorm:"foreignKey:AccountID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// SignedAmount returns the amount with its ledger sign applied:
// positive for income, negative for expenses.
func (t *Transaction) SignedAmount() int64 {
	if t.Type == TransactionTypeExpense {
		return -t.Amount
	}
	return t.Amount
}
