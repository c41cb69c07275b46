package models

import (
	"time"
)

// Membership is the single active (company, role) assignment for a
// user. The unique index on UserID is the invariant's enforcement
// point: one membership row per user, serialized by the database
// under concurrent writes.
type Membership struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyID uint64    `gorm:"not null" json:"company_id"`
	RoleID    uint64    `gorm:"not null" json:"role_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User    User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Company Company     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Role    CompanyRole `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}
