package models

import "time"

// Transaction channels
const (
	ChannelCash     = "CASH"
	ChannelTransfer = "TRANSFER"
	ChannelClearing = "CLEARING"
	ChannelDefault  = "DEFAULT"
)

// TransactionLimit is a configured ceiling for a (channel, type) pair.
type TransactionLimit struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Channel    string    `gorm:"size:50;not null;index:idx_limit_channel_type" json:"channel"`
	Type       string    `gorm:"size:50;not null;index:idx_limit_channel_type" json:"type"`
	Limit      float64   `gorm:"not null" json:"limit"`
	FlagReason *string   `gorm:"type:text" json:"flag_reason"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidChannel reports whether c is one of the known channels.
func ValidChannel(c string) bool {
	switch c {
	case ChannelCash, ChannelTransfer, ChannelClearing, ChannelDefault:
		return true
	}
	return false
}
