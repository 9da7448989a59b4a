package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"gorm.io/gorm"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
)

const (
	invitationCodeLength  = 8
	invitationCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	invitationLifetime    = 7 * 24 * time.Hour
)

// invitationService manages family invitations. Acceptance is handled by
// the auth service since it happens during registration.
type invitationService struct {
	db *gorm.DB
}

// NewInvitationService creates a new InvitationServicer.
func NewInvitationService(db *gorm.DB) InvitationServicer {
	return &invitationService{db: db}
}

// generateCode produces a random alphanumeric invitation code. The charset
// skips easily confused characters (0/O, 1/l/I) since codes are shared by
// hand.
func generateCode() (string, error) {
	code := make([]byte, invitationCodeLength)
	max := big.NewInt(int64(len(invitationCodeCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = invitationCodeCharset[n.Int64()]
	}
	return string(code), nil
}

// CreateInvitation creates an invitation to the tenant's family, valid for
// seven days.
func (s *invitationService) CreateInvitation(tenantID, email string, role models.MemberRole) (*models.Invitation, error) {
	if email == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email is required")
	}
	if role == "" {
		role = models.MemberRoleParent
	}

	var family models.Family
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at ASC").
		First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFamilyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	invitation := &models.Invitation{
		TenantID:  tenantID,
		FamilyID:  family.ID,
		Email:     email,
		Code:      code,
		Role:      role,
		ExpiresAt: time.Now().Add(invitationLifetime),
	}
	if err := s.db.Create(invitation).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return invitation, nil
}

// GetInvitations returns all of the tenant's invitations, newest first.
func (s *invitationService) GetInvitations(tenantID string) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := s.db.Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return invitations, nil
}

// DeleteInvitation removes an invitation under the tenant filter.
func (s *invitationService) DeleteInvitation(tenantID, invitationID string) error {
	result := s.db.Where("id = ? AND tenant_id = ?", invitationID, tenantID).Delete(&models.Invitation{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrInvitationNotFound
	}
	return nil
}
