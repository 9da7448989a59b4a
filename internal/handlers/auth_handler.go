package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gastos/internal/errors"
	"gastos/internal/middleware"
	"gastos/internal/models"
	"gastos/internal/services"
)

// AuthHandler handles registration, login, and user profile requests.
type AuthHandler struct {
	authService services.AuthServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService services.AuthServicer) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents the registration request payload. With an
// invitation code the caller joins the inviting tenant; without one a new
// tenant is created.
type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email,max=255"`
	Password       string `json:"password" binding:"required,min=8,max=128"`
	TenantID       string `json:"tenantId" binding:"max=100"`
	InvitationCode string `json:"invitationCode" binding:"max=16"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	TenantSlug string `json:"tenantSlug"`
}

// UpdateLanguageRequest represents the language preference payload.
type UpdateLanguageRequest struct {
	Language string `json:"language" binding:"required,language"`
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":                 user.ID,
		"email":              user.Email,
		"role":               user.Role,
		"preferred_language": user.PreferredLanguage,
	}
}

// Register handles user registration
// @Summary     Register a new user
// @Description Create a tenant with an admin user and default family, or join an existing tenant with an invitation code
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "Registration data"
// @Success     201 {object} map[string]interface{} "User registered and token issued"
// @Failure     400 {object} ErrorResponse "Invalid input or dead invitation"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var user *models.User
	var err error
	if req.InvitationCode != "" {
		user, err = h.authService.RegisterWithInvitation(req.Email, req.Password, req.InvitationCode)
	} else {
		user, err = h.authService.Register(req.Email, req.Password, req.TenantID)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    userJSON(user),
		"token":   token,
	})
}

// Login handles user login
// @Summary     Login
// @Description Authenticate by email and password, optionally scoped to a tenant slug
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} map[string]interface{} "Token issued"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, tenant, err := h.authService.Login(req.Email, req.Password, req.TenantSlug)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userJSON(user),
		"tenant":  gin.H{"id": tenant.ID, "name": tenant.Name, "slug": tenant.Slug},
		"token":   token,
	})
}

// UpdateLanguage sets the caller's preferred display language
// @Summary     Update language preference
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateLanguageRequest true "Language (en, es, ca)"
// @Success     200 {object} map[string]interface{} "Updated user"
// @Failure     400 {object} ErrorResponse "Unsupported language"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /user/language [put]
func (h *AuthHandler) UpdateLanguage(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.authService.UpdateLanguage(identity.UserID, req.Language)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": userJSON(user)})
}

// GetProfile returns the caller's profile
// @Summary     Get own profile
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /user/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.authService.GetUserByID(identity.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}
