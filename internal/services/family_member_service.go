package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
)

// familyMemberService manages members of the tenant's family.
type familyMemberService struct {
	db *gorm.DB
}

// NewFamilyMemberService creates a new FamilyMemberServicer.
func NewFamilyMemberService(db *gorm.DB) FamilyMemberServicer {
	return &familyMemberService{db: db}
}

// firstFamily returns the tenant's family. Registration creates exactly one
// family per tenant; this takes the oldest row, which is the one created at
// registration. Multi-family tenants would need an explicit selector here.
func (s *familyMemberService) firstFamily(tenantID string) (*models.Family, error) {
	var family models.Family
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFamilyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &family, nil
}

// CreateMember adds a user to the tenant's family.
func (s *familyMemberService) CreateMember(tenantID, userID string, role models.MemberRole, allocation int) (*models.FamilyMember, error) {
	if userID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id is required")
	}
	if allocation < 0 || allocation > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation_percentage must be between 0 and 100")
	}

	family, err := s.firstFamily(tenantID)
	if err != nil {
		return nil, err
	}

	// The user must belong to the same tenant; a foreign user id is
	// reported as not found.
	var userCount int64
	if err := s.db.Model(&models.User{}).
		Where("id = ? AND tenant_id = ?", userID, tenantID).
		Count(&userCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if userCount == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	var count int64
	if err := s.db.Model(&models.FamilyMember{}).
		Where("family_id = ? AND user_id = ?", family.ID, userID).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateMember
	}

	member := &models.FamilyMember{
		FamilyID:             family.ID,
		UserID:               userID,
		Role:                 role,
		AllocationPercentage: allocation,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

// GetMembers returns all members of the tenant's family with their users
// preloaded.
func (s *familyMemberService) GetMembers(tenantID string) ([]models.FamilyMember, error) {
	family, err := s.firstFamily(tenantID)
	if err != nil {
		return nil, err
	}

	var members []models.FamilyMember
	if err := s.db.Where("family_id = ?", family.ID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return members, nil
}

// UpdateMember updates a member's role or allocation.
func (s *familyMemberService) UpdateMember(tenantID, memberID string, role *models.MemberRole, allocation *int) (*models.FamilyMember, error) {
	family, err := s.firstFamily(tenantID)
	if err != nil {
		return nil, err
	}

	var member models.FamilyMember
	if err := s.db.Where("id = ? AND family_id = ?", memberID, family.ID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if role != nil {
		updates["role"] = *role
	}
	if allocation != nil {
		if *allocation < 0 || *allocation > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "allocation_percentage must be between 0 and 100")
		}
		updates["allocation_percentage"] = *allocation
	}

	if len(updates) > 0 {
		if err := s.db.Model(&member).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &member, nil
}

// DeleteMember removes a member from the tenant's family.
func (s *familyMemberService) DeleteMember(tenantID, memberID string) error {
	family, err := s.firstFamily(tenantID)
	if err != nil {
		return err
	}

	result := s.db.Where("id = ? AND family_id = ?", memberID, family.ID).Delete(&models.FamilyMember{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}
