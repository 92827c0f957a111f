package models

import "time"

// Watchlist marks an account for heightened monitoring.
type Watchlist struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	AccountNumber       string    `gorm:"size:50;uniqueIndex;not null" json:"account_number"`
	AccountName         string    `gorm:"size:255" json:"account_name"`
	ReasonForMonitoring string    `gorm:"type:text;not null" json:"reason_for_monitoring"`
	Category            string    `gorm:"size:100" json:"category"`
	AddedBy             string    `gorm:"size:100" json:"added_by"`
	IsActive            bool      `gorm:"index" json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
