package repository

import (
	"github.com/tomasdma/donation-platform/internal/models"
	"gorm.io/gorm"
)

// GormDonationRepository is a GORM implementation of DonationRepository
type GormDonationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new DonationRepository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &GormDonationRepository{db: db}
}

// Record inserts the donation and increments the campaign's raised
// amount atomically.
func (r *GormDonationRepository) Record(donation *models.Donation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donation).Error; err != nil {
			return err
		}

		return tx.Model(&models.Campaign{}).
			Where("id = ?", donation.CampaignID).
			Update("raised_amount", gorm.Expr("raised_amount + ?", donation.Amount)).Error
	})
}

// ListByCampaignID lists donations for a campaign
func (r *GormDonationRepository) ListByCampaignID(campaignID uint64) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.Preload("User").
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

// ListByUserID lists a user's donations
func (r *GormDonationRepository) ListByUserID(userID uint64) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.Preload("Campaign").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}
