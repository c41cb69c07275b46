package repository

import (
	"github.com/tomasdma/donation-platform/internal/database"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/utils"
	"gorm.io/gorm"
)

// GormCampaignRepository is a GORM implementation of CampaignRepository
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &GormCampaignRepository{db: db}
}

// Create creates a new campaign
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// Update updates a campaign
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// FindByID finds a campaign by ID
func (r *GormCampaignRepository) FindByID(id uint64) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.Preload("Company").First(&campaign, id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// List retrieves campaigns with pagination
func (r *GormCampaignRepository) List(page, limit int) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var total int64

	if err := r.db.Model(&models.Campaign{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	err := r.db.Preload("Company").
		Order("created_at DESC").
		Scopes(database.Paginate(params)).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}
