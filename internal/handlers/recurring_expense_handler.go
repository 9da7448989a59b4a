package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
	"gastos/internal/services"
)

// RecurringExpenseHandler handles recurring-expense requests.
type RecurringExpenseHandler struct {
	recurringService services.RecurringExpenseServicer
}

// NewRecurringExpenseHandler creates a new RecurringExpenseHandler.
func NewRecurringExpenseHandler(recurringService services.RecurringExpenseServicer) *RecurringExpenseHandler {
	return &RecurringExpenseHandler{recurringService: recurringService}
}

// CreateRecurringExpenseRequest represents the payload for creating a
// recurring expense.
type CreateRecurringExpenseRequest struct {
	Amount         float64    `json:"amount" binding:"required,gt=0"`
	Description    string     `json:"description" binding:"max=255"`
	CategoryID     *string    `json:"category_id"`
	Frequency      string     `json:"frequency" binding:"required,frequency"`
	NextOccurrence time.Time  `json:"next_occurrence" binding:"required"`
	EndDate        *time.Time `json:"end_date"`
}

// UpdateRecurringExpenseRequest represents the payload for updating a
// recurring expense. Omitted fields keep their stored value.
type UpdateRecurringExpenseRequest struct {
	Amount         *float64   `json:"amount" binding:"omitempty,gt=0"`
	Description    *string    `json:"description" binding:"omitempty,max=255"`
	CategoryID     *string    `json:"category_id"`
	Frequency      *string    `json:"frequency" binding:"omitempty,frequency"`
	NextOccurrence *time.Time `json:"next_occurrence"`
	EndDate        *time.Time `json:"end_date"`
	Active         *bool      `json:"active"`
}

// CreateRecurringExpense creates a recurring expense
// @Summary     Create a recurring expense
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateRecurringExpenseRequest true "Recurring expense details"
// @Success     201 {object} models.RecurringExpense "Created recurring expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recurring-expenses [post]
func (h *RecurringExpenseHandler) CreateRecurringExpense(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.CreateRecurringExpense(
		identity.TenantID,
		req.Amount,
		req.Description,
		req.CategoryID,
		models.Frequency(req.Frequency),
		req.NextOccurrence,
		req.EndDate,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recurring)
}

// GetRecurringExpenses lists the tenant's recurring expenses
// @Summary     List recurring expenses
// @Tags        recurring-expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.RecurringExpense "Recurring expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /recurring-expenses [get]
func (h *RecurringExpenseHandler) GetRecurringExpenses(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.GetRecurringExpenses(identity.TenantID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recurring)
}

// UpdateRecurringExpense updates a recurring expense
// @Summary     Update a recurring expense
// @Tags        recurring-expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Param       request body UpdateRecurringExpenseRequest true "Fields to update"
// @Success     200 {object} models.RecurringExpense "Updated recurring expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /recurring-expenses/{id} [put]
func (h *RecurringExpenseHandler) UpdateRecurringExpense(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateRecurringExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var frequency *models.Frequency
	if req.Frequency != nil {
		f := models.Frequency(*req.Frequency)
		frequency = &f
	}

	recurring, err := h.recurringService.UpdateRecurringExpense(
		identity.TenantID,
		c.Param("id"),
		req.Amount,
		req.Description,
		req.CategoryID,
		frequency,
		req.NextOccurrence,
		req.EndDate,
		req.Active,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recurring)
}

// DeleteRecurringExpense deletes a recurring expense
// @Summary     Delete a recurring expense
// @Tags        recurring-expenses
// @Security    BearerAuth
// @Param       id path string true "Recurring expense ID"
// @Success     204 "Deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found under the caller's tenant"
// @Router      /recurring-expenses/{id} [delete]
func (h *RecurringExpenseHandler) DeleteRecurringExpense(c *gin.Context) {
	identity, err := callerIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeleteRecurringExpense(identity.TenantID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
