package models

// Expense is a single tenant-scoped spending record. Category and merchant
// references are optional; an empty value is stored as NULL, never as an
// empty string.
type Expense struct {
	Base
	TenantID      string  `gorm:"type:uuid;not null;index:idx_expenses_tenant_created" json:"tenant_id"`
	Amount        float64 `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description   string  `json:"description"`
	CategoryID    *string `gorm:"type:uuid" json:"category_id"`
	MerchantID    *string `gorm:"type:uuid" json:"merchant_id"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Merchant *Merchant `gorm:"foreignKey:MerchantID" json:"merchant,omitempty"`
}
