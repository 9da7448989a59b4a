package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
)

// categoryService handles tenant-scoped category CRUD.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// CreateCategory creates a new category for the tenant.
func (s *categoryService) CreateCategory(tenantID, name, color string, icon *string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}
	if color == "" {
		color = models.DefaultCategoryColor
	}

	category := &models.Category{
		TenantID: tenantID,
		Name:     name,
		Color:    color,
		Icon:     icon,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategories returns all of the tenant's categories ordered by name.
func (s *categoryService) GetCategories(tenantID string) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// GetCategoryByID retrieves one category under the tenant filter. A row
// belonging to another tenant is reported as not found, indistinguishable
// from true absence.
func (s *categoryService) GetCategoryByID(tenantID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := s.db.Where("id = ? AND tenant_id = ?", categoryID, tenantID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates the provided fields of a category, keeping the
// stored value for anything omitted.
func (s *categoryService) UpdateCategory(tenantID, categoryID, name, color string, icon *string) (*models.Category, error) {
	category, err := s.GetCategoryByID(tenantID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}
	if icon != nil {
		updates["icon"] = icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory removes a category under the tenant filter.
func (s *categoryService) DeleteCategory(tenantID, categoryID string) error {
	result := s.db.Where("id = ? AND tenant_id = ?", categoryID, tenantID).Delete(&models.Category{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
