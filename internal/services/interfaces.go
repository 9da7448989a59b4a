package services

import (
	"time"

	"gastos/internal/models"
	"gastos/internal/pagination"
)

// AuthServicer defines the contract for registration, login, and profile
// updates.
type AuthServicer interface {
	// Register creates a tenant, its admin user, and a default family in a
	// single transaction.
	Register(email, password, tenantSlug string) (*models.User, error)
	// RegisterWithInvitation creates a user inside the inviting tenant and
	// adds it to the invitation's family, consuming the invitation.
	RegisterWithInvitation(email, password, code string) (*models.User, error)
	Login(email, password, tenantSlug string) (*models.User, *models.Tenant, error)
	UpdateLanguage(userID, language string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

// CategoryServicer defines the contract for tenant-scoped category CRUD.
type CategoryServicer interface {
	CreateCategory(tenantID, name, color string, icon *string) (*models.Category, error)
	GetCategories(tenantID string) ([]models.Category, error)
	GetCategoryByID(tenantID, categoryID string) (*models.Category, error)
	UpdateCategory(tenantID, categoryID, name, color string, icon *string) (*models.Category, error)
	DeleteCategory(tenantID, categoryID string) error
}

// ExpenseServicer defines the contract for tenant-scoped expense CRUD.
type ExpenseServicer interface {
	CreateExpense(tenantID string, amount float64, description string, categoryID, merchantID *string, paymentMethod, notes string) (*models.Expense, error)
	GetExpenses(tenantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(tenantID, expenseID string) (*models.Expense, error)
	UpdateExpense(tenantID, expenseID string, amount *float64, description *string, categoryID, merchantID *string, paymentMethod, notes *string) (*models.Expense, error)
	DeleteExpense(tenantID, expenseID string) error
}

// MerchantServicer defines the contract for tenant-scoped merchants.
type MerchantServicer interface {
	CreateMerchant(tenantID, name string) (*models.Merchant, error)
	GetMerchants(tenantID string) ([]models.Merchant, error)
}

// FamilyMemberServicer defines the contract for managing members of the
// tenant's family.
type FamilyMemberServicer interface {
	CreateMember(tenantID, userID string, role models.MemberRole, allocation int) (*models.FamilyMember, error)
	GetMembers(tenantID string) ([]models.FamilyMember, error)
	UpdateMember(tenantID, memberID string, role *models.MemberRole, allocation *int) (*models.FamilyMember, error)
	DeleteMember(tenantID, memberID string) error
}

// InvitationServicer defines the contract for invitation management.
// Acceptance happens through AuthServicer.RegisterWithInvitation.
type InvitationServicer interface {
	CreateInvitation(tenantID, email string, role models.MemberRole) (*models.Invitation, error)
	GetInvitations(tenantID string) ([]models.Invitation, error)
	DeleteInvitation(tenantID, invitationID string) error
}

// RecurringExpenseServicer defines the contract for tenant-scoped
// recurring-expense CRUD.
type RecurringExpenseServicer interface {
	CreateRecurringExpense(tenantID string, amount float64, description string, categoryID *string, frequency models.Frequency, nextOccurrence time.Time, endDate *time.Time) (*models.RecurringExpense, error)
	GetRecurringExpenses(tenantID string) ([]models.RecurringExpense, error)
	UpdateRecurringExpense(tenantID, recurringID string, amount *float64, description *string, categoryID *string, frequency *models.Frequency, nextOccurrence, endDate *time.Time, active *bool) (*models.RecurringExpense, error)
	DeleteRecurringExpense(tenantID, recurringID string) error
}
