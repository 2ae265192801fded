package models

import (
	"time"
)

// SubscriptionTier is the viewer's plan, carried in the JWT and supplied by
// the billing system. Anything other than free counts as paid.
type SubscriptionTier string

const (
	TierFree  SubscriptionTier = "free"
	TierBasic SubscriptionTier = "basic"
	TierPro   SubscriptionTier = "pro"
	TierElite SubscriptionTier = "elite"
)

// IsPaid reports whether the tier unlocks premium content.
func (t SubscriptionTier) IsPaid() bool {
	switch t {
	case TierBasic, TierPro, TierElite:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Email     string           `gorm:"uniqueIndex;not null" json:"email"`
	Nickname  string           `gorm:"size:100" json:"nickname,omitempty"`
	Tier      SubscriptionTier `gorm:"size:20;default:free" json:"tier"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
