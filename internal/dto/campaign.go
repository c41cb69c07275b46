package dto

import (
	"time"

	"github.com/tomasdma/donation-platform/internal/models"
)

// CampaignDTO represents a campaign in API responses
type CampaignDTO struct {
	ID           uint64                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	CompanyID    uint64                `json:"company_id"`
	Status       models.CampaignStatus `json:"status"`
	GoalAmount   int64                 `json:"goal_amount"`
	RaisedAmount int64                 `json:"raised_amount"`
	CreatedAt    time.Time             `json:"created_at"`
	Company      *CompanyDTO           `json:"company,omitempty"`
}

// CampaignListResponse represents a paginated list of campaigns
type CampaignListResponse struct {
	Campaigns  []CampaignDTO `json:"campaigns"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
}

// DonationDTO represents a donation in API responses
type DonationDTO struct {
	ID         uint64       `json:"id"`
	CampaignID uint64       `json:"campaign_id"`
	UserID     uint64       `json:"user_id"`
	Amount     int64        `json:"amount"`
	Reference  string       `json:"reference"`
	CreatedAt  time.Time    `json:"created_at"`
	Campaign   *CampaignDTO `json:"campaign,omitempty"`
}

// ToCampaignDTO converts a campaign with its company
func ToCampaignDTO(campaign models.Campaign) CampaignDTO {
	dto := CampaignDTO{
		ID:           campaign.ID,
		Title:        campaign.Title,
		Description:  campaign.Description,
		CompanyID:    campaign.CompanyID,
		Status:       campaign.Status,
		GoalAmount:   campaign.GoalAmount,
		RaisedAmount: campaign.RaisedAmount,
		CreatedAt:    campaign.CreatedAt,
	}
	if campaign.Company.ID != 0 {
		company := ToCompanyDTO(campaign.Company)
		dto.Company = &company
	}
	return dto
}

// ToDonationDTO converts a donation
func ToDonationDTO(donation models.Donation) DonationDTO {
	dto := DonationDTO{
		ID:         donation.ID,
		CampaignID: donation.CampaignID,
		UserID:     donation.UserID,
		Amount:     donation.Amount,
		Reference:  donation.Reference,
		CreatedAt:  donation.CreatedAt,
	}
	if donation.Campaign.ID != 0 {
		campaign := ToCampaignDTO(donation.Campaign)
		dto.Campaign = &campaign
	}
	return dto
}
