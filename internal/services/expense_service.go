package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
	"gastos/internal/pagination"
)

// expenseService handles tenant-scoped expense CRUD.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// normalizeRef coerces empty-string foreign keys to nil so optional UUID
// columns are stored as NULL, never as an empty string.
func normalizeRef(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// CreateExpense records a new expense for the tenant.
func (s *expenseService) CreateExpense(tenantID string, amount float64, description string, categoryID, merchantID *string, paymentMethod, notes string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}

	categoryID = normalizeRef(categoryID)
	merchantID = normalizeRef(merchantID)

	if categoryID != nil {
		if err := s.checkCategory(tenantID, *categoryID); err != nil {
			return nil, err
		}
	}
	if merchantID != nil {
		if err := s.checkMerchant(tenantID, *merchantID); err != nil {
			return nil, err
		}
	}

	expense := &models.Expense{
		TenantID:      tenantID,
		Amount:        amount,
		Description:   description,
		CategoryID:    categoryID,
		MerchantID:    merchantID,
		PaymentMethod: paymentMethod,
		Notes:         notes,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetExpenses returns a page of the tenant's expenses, newest first.
// Page size is capped at 50.
func (s *expenseService) GetExpenses(tenantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("tenant_id = ?", tenantID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves one expense under the tenant filter.
func (s *expenseService) GetExpenseByID(tenantID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND tenant_id = ?", expenseID, tenantID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates the provided fields of an expense. Passing an
// empty-string category or merchant id clears the reference to NULL.
func (s *expenseService) UpdateExpense(tenantID, expenseID string, amount *float64, description *string, categoryID, merchantID *string, paymentMethod, notes *string) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(tenantID, expenseID)
	if err != nil {
		return nil, err
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
			if err := s.checkCategory(tenantID, *ref); err != nil {
				return nil, err
			}
		}
		updates["category_id"] = ref
	}
	if merchantID != nil {
		ref := normalizeRef(merchantID)
		if ref != nil {
			if err := s.checkMerchant(tenantID, *ref); err != nil {
				return nil, err
			}
		}
		updates["merchant_id"] = ref
	}
	if paymentMethod != nil {
		updates["payment_method"] = *paymentMethod
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return expense, nil
}

// DeleteExpense removes an expense under the tenant filter.
func (s *expenseService) DeleteExpense(tenantID, expenseID string) error {
	result := s.db.Where("id = ? AND tenant_id = ?", expenseID, tenantID).Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// checkCategory verifies that the referenced category belongs to the tenant.
func (s *expenseService) checkCategory(tenantID, categoryID string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("id = ? AND tenant_id = ?", categoryID, tenantID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

// checkMerchant verifies that the referenced merchant belongs to the tenant.
func (s *expenseService) checkMerchant(tenantID, merchantID string) error {
	var count int64
	if err := s.db.Model(&models.Merchant{}).
		Where("id = ? AND tenant_id = ?", merchantID, tenantID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count == 0 {
		return apperrors.ErrMerchantNotFound
	}
	return nil
}
