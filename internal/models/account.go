package models

import "time"

// Account is an isolated ledger space owned by one user and shared with
// optional members. Categories, transactions, and automation rules all hang
// off an account.
type Account struct {
	Base
	Name    string `gorm:"not null" json:"name"`
	OwnerID uint   `gorm:"not null;index" json:"owner_id"`

	Owner        User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Memberships  []Membership  `gorm:"foreignKey:AccountID" json:"memberships,omitempty"`
	Categories   []Category    `gorm:"foreignKey:AccountID" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}

// Membership connects a user to an account they can read and write.
// The owner gets a membership row automatically when the account is created.
type Membership struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_membership_user_account" json:"user_id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_membership_user_account" json:"account_id"`
	Alias     string    `json:"alias,omitempty"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}
