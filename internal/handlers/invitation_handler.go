package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gastos/internal/config"
	apperrors "gastos/internal/errors"
	"gastos/internal/models"
	"gastos/internal/services"
)

// InvitationHandler handles invitation-related requests.
type InvitationHandler struct {
	invitationService services.InvitationServicer
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService services.InvitationServicer) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// CreateInvitationRequest represents the payload for creating an invitation.
type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,member_role"`
}

func invitationJSON(inv *models.Invitation) gin.H {
	return gin.H{
		"id":          inv.ID,
		"email":       inv.Email,
		"code":        inv.Code,
		"role":        inv.Role,
		"expires_at":  inv.ExpiresAt,
		"accepted_at": inv.AcceptedAt,
		"created_at":  inv.CreatedAt,
		"invite_link": config.Get().InviteBaseURL + "?code=" + inv.Code,
	}
}

// CreateInvitation creates an invitation to the tenant's family
// @Summary     Create an invitation
// @Description Generates an 8-character code valid for 7 days and a shareable link
// @Tags        invitations
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvitationRequest true "Invitee details"
// @Success     201 {object} map[string]interface{} "Created invitation with link"
// @Failure     400 {object} ErrorResponse "Missing email"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /invitations [post]
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	invitation, err := h.invitationService.CreateInvitation(identity.TenantID, req.Email, models.MemberRole(req.Role))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitationJSON(invitation))
}

// GetInvitations lists the tenant's invitations
// @Summary     List invitations
// @Tags        invitations
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} map[string]interface{} "Invitations"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /invitations [get]
func (h *InvitationHandler) GetInvitations(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	invitations, err := h.invitationService.GetInvitations(identity.TenantID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]gin.H, 0, len(invitations))
	for i := range invitations {
		out = append(out, invitationJSON(&invitations[i]))
	}
	c.JSON(http.StatusOK, out)
}

// DeleteInvitation deletes an invitation
// @Summary     Delete an invitation
// @Tags        invitations
// @Security    BearerAuth
// @Param       id path string true "Invitation ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /invitations/{id} [delete]
func (h *InvitationHandler) DeleteInvitation(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.invitationService.DeleteInvitation(identity.TenantID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
