package models

import "time"

// SuspiciousTransactionRequest is the ingest webhook body.
type SuspiciousTransactionRequest struct {
	CaseNumber         string          `json:"case_number" validate:"required,max=24"`
	ComplianceCategory string          `json:"compliance_category" validate:"required,max=100"`
	ComplianceIssue    string          `json:"compliance_issue,omitempty"`
	CurrentTransaction TransactionData `json:"current_transaction" validate:"required"`
	Perm               string          `json:"perm"`
}

// WatchlistRequest adds or updates a watchlist entry.
type WatchlistRequest struct {
	AccountNumber       string `json:"account_number" validate:"required,max=50"`
	AccountName         string `json:"account_name" validate:"max=255"`
	ReasonForMonitoring string `json:"reason_for_monitoring" validate:"required"`
	Category            string `json:"category" validate:"max=100"`
}

// ExemptionRequest adds or updates an exemption.
type ExemptionRequest struct {
	AccountNumber   string     `json:"account_number" validate:"required,max=50"`
	AccountName     string     `json:"account_name" validate:"max=255"`
	ExemptionReason string     `json:"exemption_reason" validate:"required"`
	ExpiryDate      *time.Time `json:"expiry_date"`
}

// LimitRequest creates or updates a limit for a (channel, type) pair.
type LimitRequest struct {
	Channel    string  `json:"channel" validate:"required,oneof=CASH TRANSFER CLEARING DEFAULT"`
	Type       string  `json:"type" validate:"required,max=50"`
	Limit      float64 `json:"limit" validate:"gte=0"`
	FlagReason *string `json:"flag_reason"`
	IsActive   *bool   `json:"is_active"`
}

// CaseStatusRequest changes the review state of a case.
type CaseStatusRequest struct {
	Status CaseStatus `json:"status" validate:"required"`
}

// MonitoringToggleRequest flips runtime switches; nil fields are left unchanged.
type MonitoringToggleRequest struct {
	MonitoringEnabled   *bool `json:"monitoring_enabled"`
	AIAnalysisEnabled   *bool `json:"ai_analysis_enabled"`
	ExternalSyncEnabled *bool `json:"external_sync_enabled"`
}
