package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrInvalidCampaignTitle = errors.New("campaign title cannot be empty")
	ErrInvalidGoalAmount    = errors.New("goal amount must be positive")
	ErrCampaignNotOwned     = errors.New("campaign belongs to another company")
)

// CampaignService provides business logic for donation campaigns.
type CampaignService struct {
	campaignRepo repository.CampaignRepository
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(campaignRepo repository.CampaignRepository) *CampaignService {
	return &CampaignService{campaignRepo: campaignRepo}
}

// CreateCampaignInput represents parameters to create a campaign.
type CreateCampaignInput struct {
	Title       string
	Description string
	CompanyID   uint64
	GoalAmount  int64
}

// CreateCampaign creates a campaign owned by the caller's company.
func (s *CampaignService) CreateCampaign(input CreateCampaignInput) (*models.Campaign, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrInvalidCampaignTitle
	}
	if input.GoalAmount <= 0 {
		return nil, ErrInvalidGoalAmount
	}

	campaign := &models.Campaign{
		Title:       input.Title,
		Description: input.Description,
		CompanyID:   input.CompanyID,
		Status:      models.CampaignStatusActive,
		GoalAmount:  input.GoalAmount,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// UpdateCampaignInput represents parameters to update a campaign.
type UpdateCampaignInput struct {
	CampaignID  uint64
	CompanyID   uint64
	Title       string
	Description string
	Status      models.CampaignStatus
}

// UpdateCampaign mutates a campaign owned by the caller's company.
func (s *CampaignService) UpdateCampaign(input UpdateCampaignInput) (*models.Campaign, error) {
	campaign, err := s.GetCampaign(input.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CompanyID != input.CompanyID {
		return nil, ErrCampaignNotOwned
	}

	if strings.TrimSpace(input.Title) != "" {
		campaign.Title = input.Title
	}
	if input.Description != "" {
		campaign.Description = input.Description
	}
	if input.Status != "" {
		campaign.Status = input.Status
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign, nil
}

// GetCampaign returns a campaign by id.
func (s *CampaignService) GetCampaign(id uint64) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaigns returns campaigns with pagination.
func (s *CampaignService) ListCampaigns(page, limit int) ([]models.Campaign, int64, error) {
	campaigns, total, err := s.campaignRepo.List(page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, total, nil
}
