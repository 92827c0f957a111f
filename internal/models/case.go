package models

import "time"

// CaseStatus is the review state of a suspicious case.
type CaseStatus string

const (
	CaseStatusSuspicious   CaseStatus = "suspicious"
	CaseStatusNotCompliant CaseStatus = "not compliant"
	CaseStatusCompliant    CaseStatus = "compliant"
	CaseStatusPending      CaseStatus = "pending"
	CaseStatusReviewed     CaseStatus = "reviewed"
)

// Valid reports whether s is one of the known statuses.
func (s CaseStatus) Valid() bool {
	switch s {
	case CaseStatusSuspicious, CaseStatusNotCompliant, CaseStatusCompliant,
		CaseStatusPending, CaseStatusReviewed:
		return true
	}
	return false
}

// SuspiciousCase is a compliance case raised for one transaction.
type SuspiciousCase struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	CaseNumber         string     `gorm:"size:24;uniqueIndex;not null" json:"case_number"`
	AccountNumber      string     `gorm:"size:50;index;not null" json:"account_number"`
	AccountName        string     `gorm:"size:255;not null" json:"account_name"`
	AccountOpenDate    *time.Time `json:"account_open_date"`
	TransactionDate    *time.Time `gorm:"index" json:"transaction_date"`
	BranchCode         string     `gorm:"size:50" json:"branch_code"`
	Address            string     `gorm:"type:text" json:"address"`
	Phone              string     `gorm:"size:50" json:"phone"`
	Identifier         string     `gorm:"size:100" json:"identifier"`
	TransactionID      string     `gorm:"size:100;index" json:"transaction_id"`
	Currency           string     `gorm:"size:10" json:"currency"`
	TransactionType    string     `gorm:"size:20" json:"transaction_type"`
	Amount             float64    `gorm:"not null" json:"amount"`
	Reference          string     `gorm:"type:text" json:"reference"`
	TpinNumber         string     `gorm:"size:50" json:"tpin_number"`
	Status             CaseStatus `gorm:"size:20;default:'suspicious';index" json:"status"`
	FlaggingReason     string     `gorm:"type:text" json:"flagging_reason"`
	ComplianceCategory string     `gorm:"size:100" json:"compliance_category"`
	ComplianceData     string     `gorm:"type:text" json:"compliance_data"`
	RiskScore          float64    `json:"risk_score"`
	RiskLevel          RiskLevel  `gorm:"size:16" json:"risk_level"`
	RiskFactors        StringList `json:"risk_factors"`
	Photo              string     `gorm:"type:text" json:"photo"`
	CifID              string     `gorm:"size:50" json:"cif_id"`
	Corporateid        string     `gorm:"size:50" json:"corporateid"`
	EntryDate          *time.Time `json:"entry_date"`
	ValueDate          *time.Time `json:"value_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
