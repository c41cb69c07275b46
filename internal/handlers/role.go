package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tomasdma/donation-platform/internal/dto"
	apierrors "github.com/tomasdma/donation-platform/internal/errors"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/services"
)

// RoleHandler serves role and permission-catalog endpoints.
type RoleHandler struct {
	roleService *services.RoleService
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// ListRoles returns a company's roles with their permissions.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	roles, err := h.roleService.ListRoles(companyID)
	if err != nil {
		respondRoleError(c, err)
		return
	}

	dtos := make([]dto.RoleDTO, len(roles))
	for i, role := range roles {
		dtos[i] = dto.ToRoleDTO(role)
	}

	c.JSON(http.StatusOK, gin.H{"roles": dtos})
}

// CreateRole adds a role to a company.
func (h *RoleHandler) CreateRole(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company ID")
		return
	}

	type CreateRoleRequest struct {
		Name          string   `json:"name" binding:"required,min=3,max=100"`
		PermissionIDs []uint64 `json:"permission_ids"`
	}

	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.CreateRole(services.CreateRoleInput{
		CompanyID:     companyID,
		Name:          req.Name,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoleDTO(*role))
}

// UpdateRole renames a role or replaces its permission set.
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	roleID, err := strconv.ParseUint(c.Param("roleId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid role ID")
		return
	}

	type UpdateRoleRequest struct {
		Name          string   `json:"name"`
		PermissionIDs []uint64 `json:"permission_ids"`
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.roleService.UpdateRole(services.UpdateRoleInput{
		RoleID:        roleID,
		Name:          req.Name,
		PermissionIDs: req.PermissionIDs,
	})
	if err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoleDTO(*role))
}

// DeleteRole removes a role that has no members.
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	roleID, err := strconv.ParseUint(c.Param("roleId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid role ID")
		return
	}

	if err := h.roleService.DeleteRole(roleID); err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": roleID})
}

// ListPermissions returns the process-wide permission catalog.
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roleService.ListPermissions()
	if err != nil {
		respondRoleError(c, err)
		return
	}

	dtos := make([]dto.PermissionDTO, len(permissions))
	for i, p := range permissions {
		dtos[i] = dto.ToPermissionDTO(p)
	}

	c.JSON(http.StatusOK, gin.H{"permissions": dtos})
}

// CreatePermission adds a permission to the catalog.
func (h *RoleHandler) CreatePermission(c *gin.Context) {
	type CreatePermissionRequest struct {
		Name        string `json:"name" binding:"required,min=3,max=100"`
		Type        string `json:"type" binding:"required"`
		Description string `json:"description"`
	}

	var req CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	p, err := h.roleService.CreatePermission(req.Name, models.PermissionType(req.Type), req.Description)
	if err != nil {
		respondRoleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPermissionDTO(*p))
}

func respondRoleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRoleName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRoleNameTaken):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrRoleInUse):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrRoleNotFound),
		errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrPermissionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
