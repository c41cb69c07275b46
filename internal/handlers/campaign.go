package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomasdma/donation-platform/internal/dto"
	apierrors "github.com/tomasdma/donation-platform/internal/errors"
	"github.com/tomasdma/donation-platform/internal/middleware"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/services"
	"github.com/tomasdma/donation-platform/internal/utils"
)

// CampaignHandler serves donation campaign endpoints.
type CampaignHandler struct {
	campaignService *services.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaignService *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// CreateCampaign creates a campaign owned by the caller's company.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.Membership == nil {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCampaignRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		GoalAmount  int64  `json:"goal_amount" binding:"required"`
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	campaign, err := h.campaignService.CreateCampaign(services.CreateCampaignInput{
		Title:       req.Title,
		Description: req.Description,
		CompanyID:   identity.CompanyID(),
		GoalAmount:  req.GoalAmount,
	})
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCampaignDTO(*campaign))
}

// UpdateCampaign mutates a campaign owned by the caller's company.
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || identity.Membership == nil {
		apierrors.Unauthorized(c, "")
		return
	}

	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid campaign ID")
		return
	}

	type UpdateCampaignRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status" binding:"omitempty,oneof=ACTIVE CLOSED"`
	}

	var req UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(services.UpdateCampaignInput{
		CampaignID:  campaignID,
		CompanyID:   identity.CompanyID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      models.CampaignStatus(req.Status),
	})
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignDTO(*campaign))
}

// GetCampaign returns a single campaign.
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid campaign ID")
		return
	}

	campaign, err := h.campaignService.GetCampaign(campaignID)
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignDTO(*campaign))
}

// ListCampaigns returns campaigns with pagination. Open to anonymous callers.
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	campaigns, total, err := h.campaignService.ListCampaigns(params.Page, params.Limit)
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	dtos := make([]dto.CampaignDTO, len(campaigns))
	for i, campaign := range campaigns {
		dtos[i] = dto.ToCampaignDTO(campaign)
	}

	c.JSON(http.StatusOK, dto.CampaignListResponse{
		Campaigns:  dtos,
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
	})
}

func respondCampaignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCampaignTitle),
		errors.Is(err, services.ErrInvalidGoalAmount):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrCampaignNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCampaignNotOwned):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
