package models

import (
	"time"
)

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null" json:"last_name"`
	MiddleNames  string `gorm:"type:varchar(255)" json:"middle_names"`
	PhoneNumber  string `gorm:"type:varchar(50)" json:"phone_number"`
	Address      string `gorm:"type:varchar(255)" json:"address"`
	// Users are never deleted, only disabled.
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Membership *Membership `gorm:"foreignKey:UserID" json:"membership,omitempty"`
	Donations  []Donation  `gorm:"foreignKey:UserID" json:"-"`
}
