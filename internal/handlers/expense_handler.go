package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "gastos/internal/errors"
	"gastos/internal/pagination"
	"gastos/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the payload for creating an expense.
// Empty-string category_id and merchant_id are stored as NULL.
type CreateExpenseRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Description   string  `json:"description" binding:"max=255"`
	CategoryID    *string `json:"category_id"`
	MerchantID    *string `json:"merchant_id"`
	PaymentMethod string  `json:"payment_method" binding:"max=50"`
	Notes         string  `json:"notes" binding:"max=1000"`
}

// UpdateExpenseRequest represents the payload for updating an expense.
// Omitted fields keep their stored value.
type UpdateExpenseRequest struct {
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	Description   *string  `json:"description" binding:"omitempty,max=255"`
	CategoryID    *string  `json:"category_id"`
	MerchantID    *string  `json:"merchant_id"`
	PaymentMethod *string  `json:"payment_method" binding:"omitempty,max=50"`
	Notes         *string  `json:"notes" binding:"omitempty,max=1000"`
}

// CreateExpense records an expense
// @Summary     Create an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Created expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(
		identity.TenantID,
		req.Amount,
		req.Description,
		req.CategoryID,
		req.MerchantID,
		req.PaymentMethod,
		req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// GetExpenses lists the tenant's expenses
// @Summary     List expenses
// @Description Pages of the caller tenant's expenses, newest first, at most 50 per page
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 50)"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Expense page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.expenseService.GetExpenses(identity.TenantID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpenseByID retrieves one expense
// @Summary     Get expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(identity.TenantID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// UpdateExpense updates an expense
// @Summary     Update an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(
		identity.TenantID,
		c.Param("id"),
		req.Amount,
		req.Description,
		req.CategoryID,
		req.MerchantID,
		req.PaymentMethod,
		req.Notes,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense deletes an expense
// @Summary     Delete an expense
// @Tags        expenses
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(identity.TenantID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
