package models

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#e17c60"

// Category is a tenant-scoped expense category. There is no family scoping;
// categories are shared by everyone in the tenant.
type Category struct {
	Base
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name     string `gorm:"not null" json:"name"`
	Color    string `gorm:"not null;default:#e17c60" json:"color"`
	Icon     *string `json:"icon"`
}
