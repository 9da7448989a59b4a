package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "gastos/internal/errors"
	"gastos/internal/models"
)

// authService handles registration, login, and profile updates.
type authService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(db *gorm.DB) AuthServicer {
	return &authService{db: db}
}

var slugCleanRegex = regexp.MustCompile(`[^a-z0-9-]+`)

// slugify turns a display name into a URL-safe tenant slug.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugCleanRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Register creates a tenant, its admin user, and a default family. The
// three inserts run in one transaction: a failure at any step rolls back
// the ones before it, so a crash never leaves a tenant without its admin.
func (s *authService) Register(email, password, tenantSlug string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	name := strings.TrimSpace(tenantSlug)
	if name == "" {
		name = "Mi Familia"
	}
	slug := slugify(tenantSlug)
	if slug == "" {
		slug = fmt.Sprintf("tenant-%d", time.Now().UnixMilli())
	}

	var user *models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		tenant := &models.Tenant{Name: name, Slug: slug}
		if err := tx.Create(tenant).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		user = &models.User{
			TenantID:     tenant.ID,
			Email:        strings.ToLower(email),
			PasswordHash: string(hashed),
			Role:         models.UserRoleAdmin,
		}
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		family := &models.Family{
			TenantID: tenant.ID,
			Name:     "Mi Familia",
			Slug:     "fam-" + tenant.ID,
		}
		if err := tx.Create(family).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		member := &models.FamilyMember{
			FamilyID:             family.ID,
			UserID:               user.ID,
			Role:                 models.MemberRoleAdmin,
			AllocationPercentage: 50,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// RegisterWithInvitation creates a user inside the inviting tenant and adds
// it to the invitation's family. The invitation is consumed in the same
// transaction, so a code can be accepted at most once even under
// concurrent attempts.
func (s *authService) RegisterWithInvitation(email, password, code string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var user *models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var invitation models.Invitation
		if err := tx.Where("code = ?", code).First(&invitation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid invitation code")
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if invitation.IsAccepted() {
			return apperrors.ErrInvitationUsed
		}
		if invitation.IsExpired() {
			return apperrors.ErrInvitationExpired
		}

		var count int64
		if err := tx.Model(&models.User{}).
			Where("tenant_id = ? AND email = ?", invitation.TenantID, strings.ToLower(email)).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return apperrors.ErrDuplicateEmail
		}

		role := models.UserRoleMember
		if invitation.Role == models.MemberRoleAdmin {
			role = models.UserRoleAdmin
		}

		user = &models.User{
			TenantID:     invitation.TenantID,
			Email:        strings.ToLower(email),
			PasswordHash: string(hashed),
			Role:         role,
		}
		if err := tx.Create(user).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		member := &models.FamilyMember{
			FamilyID:             invitation.FamilyID,
			UserID:               user.ID,
			Role:                 invitation.Role,
			AllocationPercentage: 50,
		}
		if err := tx.Create(member).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Consume the invitation with a guarded update. The read check
		// above is not enough under concurrent acceptances: two
		// transactions can both see accepted_at IS NULL before either
		// commits. The WHERE clause makes the second writer match zero
		// rows, and the whole transaction rolls back.
		now := time.Now()
		res := tx.Model(&models.Invitation{}).
			Where("id = ? AND accepted_at IS NULL", invitation.ID).
			Update("accepted_at", &now)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrInvitationUsed
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// Login authenticates a user by email and password. With a tenant slug the
// lookup is scoped to that tenant; without one the first user matching the
// email wins, which is ambiguous when the same address exists under several
// tenants. Clients that care should always send tenantSlug.
func (s *authService) Login(email, password, tenantSlug string) (*models.User, *models.Tenant, error) {
	query := s.db.Where("email = ?", strings.ToLower(email))
	if tenantSlug != "" {
		var tenant models.Tenant
		if err := s.db.Where("slug = ?", tenantSlug).First(&tenant).Error; err == nil {
			query = query.Where("tenant_id = ?", tenant.ID)
		}
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	var tenant models.Tenant
	if err := s.db.First(&tenant, "id = ?", user.TenantID).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &user, &tenant, nil
}

// UpdateLanguage sets the user's preferred display language.
func (s *authService) UpdateLanguage(userID, language string) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("preferred_language", language).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (s *authService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}
