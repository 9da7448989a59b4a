package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gastos/internal/errors"
	"gastos/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the payload for creating a category.
type CreateCategoryRequest struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Color string  `json:"color" binding:"omitempty,hex_color"`
	Icon  *string `json:"icon"`
}

// UpdateCategoryRequest represents the payload for updating a category.
// Omitted fields keep their stored value.
type UpdateCategoryRequest struct {
	Name  string  `json:"name" binding:"max=100"`
	Color string  `json:"color" binding:"omitempty,hex_color"`
	Icon  *string `json:"icon"`
}

// CreateCategory creates a category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Created category"
// @Failure     400 {object} ErrorResponse "Missing name or bad color"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// ShouldBindJSON decodes before validating, so a blank Name
		// here really means the field was missing.
		if req.Name == "" {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required"))
			return
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.CreateCategory(identity.TenantID, req.Name, req.Color, req.Icon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// GetCategories lists the tenant's categories
// @Summary     List categories
// @Description All categories of the caller's tenant, ordered alphabetically
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Category "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetCategories(identity.TenantID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// UpdateCategory updates a category
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to update"
// @Success     200 {object} models.Category "Updated category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.UpdateCategory(identity.TenantID, c.Param("id"), req.Name, req.Color, req.Icon)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category
// @Summary     Delete a category
// @Tags        categories
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(identity.TenantID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
