package models

import "time"

// CustomerProfile is the latest known state of an account, upserted on
// every monitored transaction.
type CustomerProfile struct {
	ID                uint       `gorm:"primarykey" json:"id"`
	AcctNo            string     `gorm:"size:50;uniqueIndex;not null" json:"acct_no"`
	AcctName          string     `gorm:"size:255;not null" json:"acct_name"`
	RiskScore         float64    `gorm:"default:0" json:"risk_score"`
	RiskLevel         RiskLevel  `gorm:"size:16;default:'low'" json:"risk_level"`
	LastTransactionID string     `gorm:"size:100" json:"last_transaction_id"`
	AcctOpnDate       *time.Time `json:"acct_opn_date"`
	Branch            string     `gorm:"size:50" json:"branch"`
	AddressLine       string     `gorm:"type:text" json:"address_line"`
	Country           string     `gorm:"size:100" json:"country"`
	MobileNo          string     `gorm:"size:50" json:"mobile_no"`
	NrcNo             string     `gorm:"size:100" json:"nrc_no"`
	TpinNumber        string     `gorm:"size:50" json:"tpin_number"`
	Cercn             string     `gorm:"size:50" json:"cercn"`
	SchmCode          string     `gorm:"size:50" json:"schm_code"`
	SchmDesc          string     `gorm:"size:255" json:"schm_desc"`
	TranDate          *time.Time `json:"tran_date"`
	TranCrncyCode     string     `gorm:"size:10" json:"tran_crncy_code"`
	DrCrIndicator     string     `gorm:"size:10" json:"dr_cr_indicator"`
	TranAmt           float64    `json:"tran_amt"`
	TranParticular    string     `gorm:"type:text" json:"tran_particular"`
	TranRmks          string     `gorm:"type:text" json:"tran_rmks"`

	LimitSet `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
