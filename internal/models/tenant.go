package models

// Tenant is the isolation boundary: one family account. Every business
// entity carries a tenant id, directly or through its family or user, and
// all queries filter on it.
type Tenant struct {
	Base
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	Users    []User   `gorm:"foreignKey:TenantID" json:"users,omitempty"`
	Families []Family `gorm:"foreignKey:TenantID" json:"families,omitempty"`
}
