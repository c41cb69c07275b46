package services

import (
	"errors"
	"fmt"

	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"github.com/tomasdma/donation-platform/internal/utils"
)

var (
	ErrInvalidDonationAmount = errors.New("donation amount must be positive")
	ErrCampaignClosed        = errors.New("campaign is not accepting donations")
)

// DonationService records donations against campaigns.
type DonationService struct {
	campaignRepo repository.CampaignRepository
	donationRepo repository.DonationRepository
}

// NewDonationService creates a new DonationService.
func NewDonationService(campaignRepo repository.CampaignRepository, donationRepo repository.DonationRepository) *DonationService {
	return &DonationService{
		campaignRepo: campaignRepo,
		donationRepo: donationRepo,
	}
}

// RecordDonation inserts a donation with a fresh receipt reference and
// bumps the campaign's raised amount.
func (s *DonationService) RecordDonation(userID, campaignID uint64, amount int64) (*models.Donation, error) {
	if amount <= 0 {
		return nil, ErrInvalidDonationAmount
	}

	campaign, err := s.campaignRepo.FindByID(campaignID)
	if err != nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != models.CampaignStatusActive {
		return nil, ErrCampaignClosed
	}

	donation := &models.Donation{
		CampaignID: campaignID,
		UserID:     userID,
		Amount:     amount,
		Reference:  utils.NewReceiptReference(),
	}

	if err := s.donationRepo.Record(donation); err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}
	return donation, nil
}

// ListByCampaign returns a campaign's donations.
func (s *DonationService) ListByCampaign(campaignID uint64) ([]models.Donation, error) {
	if _, err := s.campaignRepo.FindByID(campaignID); err != nil {
		return nil, ErrCampaignNotFound
	}

	donations, err := s.donationRepo.ListByCampaignID(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

// ListByUser returns the donations made by a user.
func (s *DonationService) ListByUser(userID uint64) ([]models.Donation, error) {
	donations, err := s.donationRepo.ListByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}
