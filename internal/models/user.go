package models

import "time"

// UserRole distinguishes free users from premium subscribers.
// Automation rules and custom category management are premium features.
type UserRole string

const (
	RoleNormal  UserRole = "NORMAL"
	RolePremium UserRole = "PREMIUM"
)

// User represents the user model in the database
type User struct {
	Base
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Role             UserRole   `gorm:"not null;default:'NORMAL'" json:"role"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	OwnedAccounts []Account    `gorm:"foreignKey:OwnerID" json:"owned_accounts,omitempty"`
	Memberships   []Membership `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
}

// IsPremium reports whether the user may use premium-gated features.
func (u *User) IsPremium() bool {
	return u.Role == RolePremium
}
