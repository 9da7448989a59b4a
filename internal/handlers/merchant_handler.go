package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gastos/internal/errors"
	"gastos/internal/services"
)

// MerchantHandler handles merchant-related requests.
type MerchantHandler struct {
	merchantService services.MerchantServicer
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(merchantService services.MerchantServicer) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

// CreateMerchantRequest represents the payload for creating a merchant.
type CreateMerchantRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateMerchant creates a merchant
// @Summary     Create a merchant
// @Tags        merchants
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateMerchantRequest true "Merchant details"
// @Success     201 {object} models.Merchant "Created merchant"
// @Failure     400 {object} ErrorResponse "Missing name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /merchants [post]
func (h *MerchantHandler) CreateMerchant(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if req.Name == "" {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required"))
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	merchant, err := h.merchantService.CreateMerchant(identity.TenantID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, merchant)
}

// GetMerchants lists the tenant's merchants
// @Summary     List merchants
// @Tags        merchants
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Merchant "Merchants"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /merchants [get]
func (h *MerchantHandler) GetMerchants(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	merchants, err := h.merchantService.GetMerchants(identity.TenantID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, merchants)
}
