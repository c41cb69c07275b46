package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomasdma/donation-platform/internal/dto"
	apierrors "github.com/tomasdma/donation-platform/internal/errors"
	"github.com/tomasdma/donation-platform/internal/middleware"
	"github.com/tomasdma/donation-platform/internal/services"
)

// DonationHandler serves donation endpoints.
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

// RecordDonation records a donation by the authenticated user against an
// active campaign.
func (h *DonationHandler) RecordDonation(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type RecordDonationRequest struct {
		CampaignID uint64 `json:"campaign_id" binding:"required"`
		Amount     int64  `json:"amount" binding:"required"`
	}

	var req RecordDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	donation, err := h.donationService.RecordDonation(identity.User.ID, req.CampaignID, req.Amount)
	if err != nil {
		respondDonationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDonationDTO(*donation))
}

// ListCampaignDonations returns the donations recorded for a campaign.
func (h *DonationHandler) ListCampaignDonations(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid campaign ID")
		return
	}

	donations, err := h.donationService.ListByCampaign(campaignID)
	if err != nil {
		respondDonationError(c, err)
		return
	}

	dtos := make([]dto.DonationDTO, len(donations))
	for i, donation := range donations {
		dtos[i] = dto.ToDonationDTO(donation)
	}

	c.JSON(http.StatusOK, gin.H{"donations": dtos})
}

// ListMyDonations returns the authenticated user's donation history.
func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	donations, err := h.donationService.ListByUser(identity.User.ID)
	if err != nil {
		respondDonationError(c, err)
		return
	}

	dtos := make([]dto.DonationDTO, len(donations))
	for i, donation := range donations {
		dtos[i] = dto.ToDonationDTO(donation)
	}

	c.JSON(http.StatusOK, gin.H{"donations": dtos})
}

func respondDonationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDonationAmount):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCampaignNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCampaignClosed):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
