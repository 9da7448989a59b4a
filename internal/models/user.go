package models

// UserRole represents the role of a user within its tenant.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

// User represents the user model in the database. Emails are unique per
// tenant; the same address may register under different tenants.
type User struct {
	Base
	TenantID          string   `gorm:"type:uuid;not null;uniqueIndex:idx_users_tenant_email" json:"tenant_id"`
	Email             string   `gorm:"not null;uniqueIndex:idx_users_tenant_email" json:"email"`
	PasswordHash      string   `gorm:"not null" json:"-"`
	Role              UserRole `gorm:"not null;default:member" json:"role"`
	PreferredLanguage string   `gorm:"not null;default:es" json:"preferred_language"`

	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}
