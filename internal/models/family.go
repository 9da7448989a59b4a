package models

// Family groups users under a tenant. Registration creates one family per
// tenant and lookups take the tenant's oldest family.
type Family struct {
	Base
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name     string `gorm:"not null" json:"name"`
	Slug     string `gorm:"not null" json:"slug"`

	Members []FamilyMember `gorm:"foreignKey:FamilyID" json:"members,omitempty"`
}

// MemberRole represents the role of a member within a family.
type MemberRole string

const (
	MemberRoleParent MemberRole = "parent"
	MemberRoleChild  MemberRole = "child"
	MemberRoleAdmin  MemberRole = "admin"
)

// FamilyMember links a user to a family with a role and an expense
// allocation percentage. A user appears at most once per family.
type FamilyMember struct {
	Base
	FamilyID             string     `gorm:"type:uuid;not null;uniqueIndex:idx_family_members_family_user" json:"family_id"`
	UserID               string     `gorm:"type:uuid;not null;uniqueIndex:idx_family_members_family_user" json:"user_id"`
	Role                 MemberRole `gorm:"not null;default:parent" json:"role"`
	AllocationPercentage int        `gorm:"not null;default:50" json:"allocation_percentage"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
