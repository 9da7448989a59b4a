package models

import "time"

// Frequency represents how often a recurring expense repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurringExpense is a tenant-scoped template for expenses that repeat on
// a fixed schedule. No scheduler materializes these; clients read
// NextOccurrence and act on it.
type RecurringExpense struct {
	Base
	TenantID       string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Amount         float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	Description    string     `json:"description"`
	CategoryID     *string    `gorm:"type:uuid" json:"category_id"`
	Frequency      Frequency  `gorm:"not null" json:"frequency"`
	NextOccurrence time.Time  `gorm:"not null" json:"next_occurrence"`
	EndDate        *time.Time `json:"end_date"`
	Active         bool       `gorm:"not null;default:true" json:"active"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
