package models

// Merchant is a tenant-scoped vendor that expenses may reference.
type Merchant struct {
	Base
	TenantID string `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name     string `gorm:"not null" json:"name"`
}
