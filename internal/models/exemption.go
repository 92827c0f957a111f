package models

import "time"

// TransactionExemption excludes an account from monitoring.
type TransactionExemption struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	AccountNumber   string     `gorm:"size:50;uniqueIndex;not null" json:"account_number"`
	AccountName     string     `gorm:"size:255" json:"account_name"`
	ExemptionReason string     `gorm:"type:text" json:"exemption_reason"`
	ExemptedBy      string     `gorm:"size:100" json:"exempted_by"`
	IsActive        bool       `gorm:"index" json:"is_active"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// InEffect reports whether the exemption applies at now.
func (e *TransactionExemption) InEffect(now time.Time) bool {
	if e == nil || !e.IsActive {
		return false
	}
	return e.ExpiryDate == nil || e.ExpiryDate.After(now)
}
