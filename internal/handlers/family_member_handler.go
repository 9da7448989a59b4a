package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
	"gastos/internal/services"
)

// FamilyMemberHandler handles requests for the tenant's family members.
type FamilyMemberHandler struct {
	memberService services.FamilyMemberServicer
}

// NewFamilyMemberHandler creates a new FamilyMemberHandler.
func NewFamilyMemberHandler(memberService services.FamilyMemberServicer) *FamilyMemberHandler {
	return &FamilyMemberHandler{memberService: memberService}
}

// CreateMemberRequest represents the payload for adding a family member.
type CreateMemberRequest struct {
	UserID               string `json:"user_id" binding:"required,uuid"`
	Role                 string `json:"role" binding:"omitempty,member_role"`
	AllocationPercentage *int   `json:"allocation_percentage" binding:"omitempty,min=0,max=100"`
}

// UpdateMemberRequest represents the payload for updating a family member.
type UpdateMemberRequest struct {
	Role                 *string `json:"role" binding:"omitempty,member_role"`
	AllocationPercentage *int    `json:"allocation_percentage" binding:"omitempty,min=0,max=100"`
}

// CreateMember adds a member to the tenant's family
// @Summary     Add a family member
// @Tags        family-members
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateMemberRequest true "Member details"
// @Success     201 {object} models.FamilyMember "Created member"
// @Failure     400 {object} ErrorResponse "Invalid input or member already registered"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /family-members [post]
func (h *FamilyMemberHandler) CreateMember(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	role := models.MemberRoleParent
	if req.Role != "" {
		role = models.MemberRole(req.Role)
	}
	allocation := 50
	if req.AllocationPercentage != nil {
		allocation = *req.AllocationPercentage
	}

	member, err := h.memberService.CreateMember(identity.TenantID, req.UserID, role, allocation)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetMembers lists the members of the tenant's family
// @Summary     List family members
// @Tags        family-members
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FamilyMember "Members"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /family-members [get]
func (h *FamilyMemberHandler) GetMembers(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.memberService.GetMembers(identity.TenantID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// UpdateMember updates a family member
// @Summary     Update a family member
// @Tags        family-members
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Member ID"
// @Param       request body UpdateMemberRequest true "Fields to update"
// @Success     200 {object} models.FamilyMember "Updated member"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /family-members/{id} [put]
func (h *FamilyMemberHandler) UpdateMember(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var role *models.MemberRole
	if req.Role != nil {
		r := models.MemberRole(*req.Role)
		role = &r
	}

	member, err := h.memberService.UpdateMember(identity.TenantID, c.Param("id"), role, req.AllocationPercentage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, member)
}

// DeleteMember removes a family member
// @Summary     Remove a family member
// @Tags        family-members
// @Security    BearerAuth
// @Param       id path string true "Member ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /family-members/{id} [delete]
func (h *FamilyMemberHandler) DeleteMember(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.memberService.DeleteMember(identity.TenantID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
