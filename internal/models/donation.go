package models

import (
	"time"
)

type Donation struct {
	ID         uint64 `gorm:"primarykey" json:"id"`
	CampaignID uint64 `gorm:"not null;index" json:"campaign_id"`
	UserID     uint64 `gorm:"not null;index" json:"user_id"`
	// Amount is in minor currency units.
	Amount int64 `gorm:"not null" json:"amount"`
	// Reference is the receipt identifier handed back to the donor.
	Reference string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	User     User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
