package models

import (
	"time"

	"gorm.io/gorm"
)

type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "ACTIVE"
	CampaignStatusClosed CampaignStatus = "CLOSED"
)

type Campaign struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	CompanyID   uint64         `gorm:"not null" json:"company_id"`
	Status      CampaignStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	// Amounts are in minor currency units.
	GoalAmount   int64          `gorm:"not null" json:"goal_amount"`
	RaisedAmount int64          `gorm:"not null;default:0" json:"raised_amount"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Company   Company    `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Donations []Donation `gorm:"foreignKey:CampaignID" json:"donations,omitempty"`
}
