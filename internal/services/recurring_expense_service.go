package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
)

// recurringExpenseService handles tenant-scoped recurring-expense CRUD.
type recurringExpenseService struct {
	db *gorm.DB
}

// NewRecurringExpenseService creates a new RecurringExpenseServicer.
func NewRecurringExpenseService(db *gorm.DB) RecurringExpenseServicer {
	return &recurringExpenseService{db: db}
}

// CreateRecurringExpense creates a new recurring expense for the tenant.
func (s *recurringExpenseService) CreateRecurringExpense(tenantID string, amount float64, description string, categoryID *string, frequency models.Frequency, nextOccurrence time.Time, endDate *time.Time) (*models.RecurringExpense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if nextOccurrence.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "next_occurrence is required")
	}

	categoryID = normalizeRef(categoryID)
	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND tenant_id = ?", *categoryID, tenantID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrCategoryNotFound
		}
	}

	recurring := &models.RecurringExpense{
		TenantID:       tenantID,
		Amount:         amount,
		Description:    description,
		CategoryID:     categoryID,
		Frequency:      frequency,
		NextOccurrence: nextOccurrence,
		EndDate:        endDate,
		Active:         true,
	}
	if err := s.db.Create(recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// GetRecurringExpenses returns all of the tenant's recurring expenses
// ordered by next occurrence.
func (s *recurringExpenseService) GetRecurringExpenses(tenantID string) ([]models.RecurringExpense, error) {
	var recurring []models.RecurringExpense
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("next_occurrence ASC").
		Find(&recurring).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return recurring, nil
}

// UpdateRecurringExpense updates the provided fields of a recurring expense.
func (s *recurringExpenseService) UpdateRecurringExpense(tenantID, recurringID string, amount *float64, description *string, categoryID *string, frequency *models.Frequency, nextOccurrence, endDate *time.Time, active *bool) (*models.RecurringExpense, error) {
	var recurring models.RecurringExpense
	if err := s.db.Where("id = ? AND tenant_id = ?", recurringID, tenantID).First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if description != nil {
		updates["description"] = *description
	}
	if categoryID != nil {
		ref := normalizeRef(categoryID)
		if ref != nil {
			var count int64
			if err := s.db.Model(&models.Category{}).
				Where("id = ? AND tenant_id = ?", *ref, tenantID).
				Count(&count).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count == 0 {
				return nil, apperrors.ErrCategoryNotFound
			}
		}
		updates["category_id"] = ref
	}
	if frequency != nil {
		updates["frequency"] = *frequency
	}
	if nextOccurrence != nil {
		updates["next_occurrence"] = *nextOccurrence
	}
	if endDate != nil {
		updates["end_date"] = endDate
	}
	if active != nil {
		updates["active"] = *active
	}

	if len(updates) > 0 {
		if err := s.db.Model(&recurring).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &recurring, nil
}

// DeleteRecurringExpense removes a recurring expense under the tenant filter.
func (s *recurringExpenseService) DeleteRecurringExpense(tenantID, recurringID string) error {
	result := s.db.Where("id = ? AND tenant_id = ?", recurringID, tenantID).Delete(&models.RecurringExpense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRecurringExpenseNotFound
	}
	return nil
}
