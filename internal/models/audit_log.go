package models

// AuditLog records mutations against accounts, categories, transactions,
// and automation rules. Entries are written best-effort after the mutation
// commits; a failed audit write never rolls back the operation it records.
type AuditLog struct {
	Base
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   uint   `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
