package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gastos/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTenant creates a tenant with a unique slug and a default family.
func CreateTestTenant(t *testing.T, db *gorm.DB) *models.Tenant {
	t.Helper()

	n := nextID()
	tenant := &models.Tenant{
		Name: fmt.Sprintf("Familia %d", n),
		Slug: fmt.Sprintf("familia-%d", n),
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("failed to create test tenant: %v", err)
	}

	family := &models.Family{
		TenantID: tenant.ID,
		Name:     tenant.Name,
		Slug:     "fam-" + tenant.ID,
	}
	if err := db.Create(family).Error; err != nil {
		t.Fatalf("failed to create test family: %v", err)
	}

	return tenant
}

// CreateTestUser creates a user in the tenant with a hashed password and
// unique email. The password is always "password123".
func CreateTestUser(t *testing.T, db *gorm.DB, tenantID string) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, tenantID, email)
}

// CreateTestUserWithEmail creates a user in the tenant with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, tenantID, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		TenantID:     tenantID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.UserRoleMember,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// FirstFamily returns the tenant's family created by CreateTestTenant.
func FirstFamily(t *testing.T, db *gorm.DB, tenantID string) *models.Family {
	t.Helper()

	var family models.Family
	if err := db.Where("tenant_id = ?", tenantID).Order("created_at ASC").First(&family).Error; err != nil {
		t.Fatalf("failed to find family for tenant %s: %v", tenantID, err)
	}
	return &family
}

// CreateTestCategory creates a category in the tenant.
func CreateTestCategory(t *testing.T, db *gorm.DB, tenantID string) *models.Category {
	t.Helper()

	category := &models.Category{
		TenantID: tenantID,
		Name:     fmt.Sprintf("Category %d", nextID()),
		Color:    models.DefaultCategoryColor,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestMerchant creates a merchant in the tenant.
func CreateTestMerchant(t *testing.T, db *gorm.DB, tenantID string) *models.Merchant {
	t.Helper()

	merchant := &models.Merchant{
		TenantID: tenantID,
		Name:     fmt.Sprintf("Merchant %d", nextID()),
	}
	if err := db.Create(merchant).Error; err != nil {
		t.Fatalf("failed to create test merchant: %v", err)
	}
	return merchant
}

// CreateTestExpense creates an expense of the given amount in the tenant.
func CreateTestExpense(t *testing.T, db *gorm.DB, tenantID string, amount float64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		TenantID:    tenantID,
		Amount:      amount,
		Description: fmt.Sprintf("Expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestInvitation creates a live invitation to the tenant's family.
func CreateTestInvitation(t *testing.T, db *gorm.DB, tenantID string) *models.Invitation {
	t.Helper()

	family := FirstFamily(t, db, tenantID)
	invitation := &models.Invitation{
		TenantID:  tenantID,
		FamilyID:  family.ID,
		Email:     fmt.Sprintf("invitee%d@test.com", nextID()),
		Code:      fmt.Sprintf("CODE%04d", nextID()),
		Role:      models.MemberRoleParent,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := db.Create(invitation).Error; err != nil {
		t.Fatalf("failed to create test invitation: %v", err)
	}
	return invitation
}
