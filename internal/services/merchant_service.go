package services

import (
	"gorm.io/gorm"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
)

// merchantService handles tenant-scoped merchants.
type merchantService struct {
	db *gorm.DB
}

// NewMerchantService creates a new MerchantServicer.
func NewMerchantService(db *gorm.DB) MerchantServicer {
	return &merchantService{db: db}
}

// CreateMerchant creates a new merchant for the tenant.
func (s *merchantService) CreateMerchant(tenantID, name string) (*models.Merchant, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Name is required")
	}

	merchant := &models.Merchant{TenantID: tenantID, Name: name}
	if err := s.db.Create(merchant).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return merchant, nil
}

// GetMerchants returns all of the tenant's merchants ordered by name.
func (s *merchantService) GetMerchants(tenantID string) ([]models.Merchant, error) {
	var merchants []models.Merchant
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&merchants).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return merchants, nil
}
