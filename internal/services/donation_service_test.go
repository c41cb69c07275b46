package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type donationTestEnv struct {
	db      *gorm.DB
	service *DonationService
}

func setupDonationTestEnv(t *testing.T) donationTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.CompanyType{},
		&models.Company{},
		&models.Campaign{},
		&models.Donation{},
	)
	require.NoError(t, err)

	service := NewDonationService(
		repository.NewCampaignRepository(db),
		repository.NewDonationRepository(db),
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return donationTestEnv{db: db, service: service}
}

func (env donationTestEnv) createCampaign(t *testing.T, status models.CampaignStatus) *models.Campaign {
	t.Helper()

	ct := &models.CompanyType{Name: "Charity"}
	require.NoError(t, env.db.Create(ct).Error)

	company := &models.Company{
		Name:               "acme",
		RegistrationNumber: "reg-acme",
		TaxID:              "tax-acme",
		CompanyTypeID:      ct.ID,
		Status:             models.CompanyStatusApproved,
	}
	require.NoError(t, env.db.Create(company).Error)

	campaign := &models.Campaign{
		Title:      "Winter appeal",
		CompanyID:  company.ID,
		Status:     status,
		GoalAmount: 100_000,
	}
	require.NoError(t, env.db.Create(campaign).Error)
	return campaign
}

func (env donationTestEnv) createUser(t *testing.T) *models.User {
	t.Helper()
	user := &models.User{
		Email:        "donor@example.com",
		Username:     "donor",
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     "Donor",
		Enabled:      true,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func TestDonationService_RecordDonation(t *testing.T) {
	env := setupDonationTestEnv(t)
	campaign := env.createCampaign(t, models.CampaignStatusActive)
	user := env.createUser(t)

	donation, err := env.service.RecordDonation(user.ID, campaign.ID, 2500)
	require.NoError(t, err)
	require.NotEmpty(t, donation.Reference)

	// The campaign total moves with the donation.
	var updated models.Campaign
	require.NoError(t, env.db.First(&updated, campaign.ID).Error)
	require.EqualValues(t, 2500, updated.RaisedAmount)
}

func TestDonationService_RecordDonationAccumulates(t *testing.T) {
	env := setupDonationTestEnv(t)
	campaign := env.createCampaign(t, models.CampaignStatusActive)
	user := env.createUser(t)

	first, err := env.service.RecordDonation(user.ID, campaign.ID, 1000)
	require.NoError(t, err)
	second, err := env.service.RecordDonation(user.ID, campaign.ID, 500)
	require.NoError(t, err)

	// Each donation gets its own receipt reference.
	require.NotEqual(t, first.Reference, second.Reference)

	var updated models.Campaign
	require.NoError(t, env.db.First(&updated, campaign.ID).Error)
	require.EqualValues(t, 1500, updated.RaisedAmount)
}

func TestDonationService_RecordDonationClosedCampaign(t *testing.T) {
	env := setupDonationTestEnv(t)
	campaign := env.createCampaign(t, models.CampaignStatusClosed)
	user := env.createUser(t)

	_, err := env.service.RecordDonation(user.ID, campaign.ID, 2500)
	require.ErrorIs(t, err, ErrCampaignClosed)

	var count int64
	require.NoError(t, env.db.Model(&models.Donation{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestDonationService_RecordDonationNonPositiveAmount(t *testing.T) {
	env := setupDonationTestEnv(t)
	campaign := env.createCampaign(t, models.CampaignStatusActive)
	user := env.createUser(t)

	_, err := env.service.RecordDonation(user.ID, campaign.ID, 0)
	require.ErrorIs(t, err, ErrInvalidDonationAmount)

	_, err = env.service.RecordDonation(user.ID, campaign.ID, -100)
	require.ErrorIs(t, err, ErrInvalidDonationAmount)
}

func TestDonationService_RecordDonationUnknownCampaign(t *testing.T) {
	env := setupDonationTestEnv(t)
	user := env.createUser(t)

	_, err := env.service.RecordDonation(user.ID, 99999, 2500)
	require.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestDonationService_ListByUser(t *testing.T) {
	env := setupDonationTestEnv(t)
	campaign := env.createCampaign(t, models.CampaignStatusActive)
	user := env.createUser(t)

	_, err := env.service.RecordDonation(user.ID, campaign.ID, 1000)
	require.NoError(t, err)
	_, err = env.service.RecordDonation(user.ID, campaign.ID, 2000)
	require.NoError(t, err)

	donations, err := env.service.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, donations, 2)
}
