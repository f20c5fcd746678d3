package models

// IncomeCategoryName is the canonical income bucket every account must have.
// Transaction and rule logic relies on this category existing.
const IncomeCategoryName = "Ingreso"

// Category is a named bucket for grouping transactions. A nil AccountID
// marks a global category visible to every account; otherwise the category
// belongs to exactly one account. Names are unique per account,
// case-insensitively.
type Category struct {
	Base
	AccountID *uint  `gorm:"index" json:"account_id,omitempty"`
	Name      string `gorm:"not null" json:"name"`

	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}

// IsGlobal reports whether the category is shared across all accounts.
func (c *Category) IsGlobal() bool {
	return c.AccountID == nil
}

// BelongsTo reports whether the category is usable from the given account,
// either because it is global or because it is scoped to that account.
func (c *Category) BelongsTo(accountID uint) bool {
	return c.AccountID == nil || *c.AccountID == accountID
}
