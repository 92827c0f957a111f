package models

import (
	"time"
)

// Debit/credit indicators as sent by the core banking feed.
const (
	IndicatorDebit  = "D"
	IndicatorCredit = "C"
)

// LimitSet is the per-account limit block attached to every incoming
// transaction and mirrored onto the customer profile.
type LimitSet struct {
	ACashExcpAmtLim       float64 `json:"a_cash_excp_amt_lim" gorm:"default:0"`
	AClgExcpAmtLim        float64 `json:"a_clg_excp_amt_lim" gorm:"default:0"`
	AXferExcpAmtLim       float64 `json:"a_xfer_excp_amt_lim" gorm:"default:0"`
	ACashCrExcpAmtLim     float64 `json:"a_cash_cr_excp_amt_lim" gorm:"default:0"`
	AClgCrExcpAmtLim      float64 `json:"a_clg_cr_excp_amt_lim" gorm:"default:0"`
	AXferCrExcpAmtLim     float64 `json:"a_xfer_cr_excp_amt_lim" gorm:"default:0"`
	SCashAbnrmlAmtLim     float64 `json:"s_cash_abnrml_amt_lim" gorm:"default:0"`
	SClgAbnrmlAmtLim      float64 `json:"s_clg_abnrml_amt_lim" gorm:"default:0"`
	SXferAbnrmlAmtLim     float64 `json:"s_xfer_abnrml_amt_lim" gorm:"default:0"`
	SCashDrLim            float64 `json:"s_cash_dr_lim" gorm:"default:0"`
	SXferDrLim            float64 `json:"s_xfer_dr_lim" gorm:"default:0"`
	SClgDrLim             float64 `json:"s_clg_dr_lim" gorm:"default:0"`
	SCashCrLim            float64 `json:"s_cash_cr_lim" gorm:"default:0"`
	SXferCrLim            float64 `json:"s_xfer_cr_lim" gorm:"default:0"`
	SClgCrLim             float64 `json:"s_clg_cr_lim" gorm:"default:0"`
	SCashDrAbnrmlLim      float64 `json:"s_cash_dr_abnrml_lim" gorm:"default:0"`
	SClgDrAbnrmlLim       float64 `json:"s_clg_dr_abnrml_lim" gorm:"default:0"`
	SXferDrAbnrmlLim      float64 `json:"s_xfer_dr_abnrml_lim" gorm:"default:0"`
	SNewAcctAbnrmlTranAmt float64 `json:"s_new_acct_abnrml_tran_amt" gorm:"default:0"`
}

// LimitField names one LimitSet column together with its accessor.
type LimitField struct {
	Name string
	Get  func(l *LimitSet) float64
}

// LimitFields lists every limit column in feed order.
var LimitFields = []LimitField{
	{"a_cash_excp_amt_lim", func(l *LimitSet) float64 { return l.ACashExcpAmtLim }},
	{"a_clg_excp_amt_lim", func(l *LimitSet) float64 { return l.AClgExcpAmtLim }},
	{"a_xfer_excp_amt_lim", func(l *LimitSet) float64 { return l.AXferExcpAmtLim }},
	{"a_cash_cr_excp_amt_lim", func(l *LimitSet) float64 { return l.ACashCrExcpAmtLim }},
	{"a_clg_cr_excp_amt_lim", func(l *LimitSet) float64 { return l.AClgCrExcpAmtLim }},
	{"a_xfer_cr_excp_amt_lim", func(l *LimitSet) float64 { return l.AXferCrExcpAmtLim }},
	{"s_cash_abnrml_amt_lim", func(l *LimitSet) float64 { return l.SCashAbnrmlAmtLim }},
	{"s_clg_abnrml_amt_lim", func(l *LimitSet) float64 { return l.SClgAbnrmlAmtLim }},
	{"s_xfer_abnrml_amt_lim", func(l *LimitSet) float64 { return l.SXferAbnrmlAmtLim }},
	{"s_cash_dr_lim", func(l *LimitSet) float64 { return l.SCashDrLim }},
	{"s_xfer_dr_lim", func(l *LimitSet) float64 { return l.SXferDrLim }},
	{"s_clg_dr_lim", func(l *LimitSet) float64 { return l.SClgDrLim }},
	{"s_cash_cr_lim", func(l *LimitSet) float64 { return l.SCashCrLim }},
	{"s_xfer_cr_lim", func(l *LimitSet) float64 { return l.SXferCrLim }},
	{"s_clg_cr_lim", func(l *LimitSet) float64 { return l.SClgCrLim }},
	{"s_cash_dr_abnrml_lim", func(l *LimitSet) float64 { return l.SCashDrAbnrmlLim }},
	{"s_clg_dr_abnrml_lim", func(l *LimitSet) float64 { return l.SClgDrAbnrmlLim }},
	{"s_xfer_dr_abnrml_lim", func(l *LimitSet) float64 { return l.SXferDrAbnrmlLim }},
	{"s_new_acct_abnrml_tran_amt", func(l *LimitSet) float64 { return l.SNewAcctAbnrmlTranAmt }},
}

// TransactionData is one transaction as received from the upstream feed.
type TransactionData struct {
	AcctNo         string  `json:"acct_no" validate:"required,max=50"`
	AcctName       string  `json:"acct_name" validate:"required,max=255"`
	TranID         string  `json:"tran_id" validate:"required,max=100"`
	AcctOpnDate    string  `json:"acct_opn_date,omitempty"`
	Branch         string  `json:"branch,omitempty"`
	AddressLine    string  `json:"address_line,omitempty"`
	Country        string  `json:"country,omitempty"`
	MobileNo       string  `json:"mobile_no,omitempty"`
	NrcNo          string  `json:"nrc_no,omitempty"`
	TpinNumber     string  `json:"tpin_number,omitempty"`
	Cercn          string  `json:"cercn,omitempty"`
	SchmCode       string  `json:"schm_code,omitempty"`
	SchmDesc       string  `json:"schm_desc,omitempty"`
	TranDate       string  `json:"tran_date" validate:"required"`
	TranCrncyCode  string  `json:"tran_crncy_code" validate:"required,max=10"`
	DrCrIndicator  string  `json:"dr_cr_indicator" validate:"required,max=10"`
	TranAmt        float64 `json:"tran_amt" validate:"gte=0"`
	TranParticular string  `json:"tran_particular,omitempty"`
	TranRmks       string  `json:"tran_rmks,omitempty"`

	LimitSet

	Photo       string `json:"photo,omitempty"`
	CifID       string `json:"cif_id,omitempty"`
	Corporateid string `json:"corporateid,omitempty"`
	EntryDate   string `json:"entry_date,omitempty"`
	ValueDate   string `json:"value_date,omitempty"`
}

// RawTransaction is the append-only record of every monitored transaction.
type RawTransaction struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	CaseNumber     string     `gorm:"size:24;index" json:"case_number"`
	AcctNo         string     `gorm:"size:50;index;not null" json:"acct_no"`
	AcctName       string     `gorm:"size:255" json:"acct_name"`
	RiskScore      float64    `gorm:"default:0" json:"risk_score"`
	RiskLevel      RiskLevel  `gorm:"size:16;default:'low'" json:"risk_level"`
	TranID         string     `gorm:"size:100;index" json:"tran_id"`
	AcctOpnDate    *time.Time `json:"acct_opn_date"`
	Branch         string     `gorm:"size:50" json:"branch"`
	AddressLine    string     `gorm:"type:text" json:"address_line"`
	Country        string     `gorm:"size:100" json:"country"`
	MobileNo       string     `gorm:"size:50" json:"mobile_no"`
	NrcNo          string     `gorm:"size:100" json:"nrc_no"`
	TpinNumber     string     `gorm:"size:50" json:"tpin_number"`
	Cercn          string     `gorm:"size:50" json:"cercn"`
	SchmCode       string     `gorm:"size:50" json:"schm_code"`
	SchmDesc       string     `gorm:"size:255" json:"schm_desc"`
	TranDate       *time.Time `json:"tran_date"`
	TranCrncyCode  string     `gorm:"size:10" json:"tran_crncy_code"`
	DrCrIndicator  string     `gorm:"size:10" json:"dr_cr_indicator"`
	TranAmt        float64    `json:"tran_amt"`
	TranParticular string     `gorm:"type:text" json:"tran_particular"`
	TranRmks       string     `gorm:"type:text" json:"tran_rmks"`

	LimitSet `gorm:"embedded"`

	Photo       string     `gorm:"type:text" json:"photo"`
	CifID       string     `gorm:"size:50" json:"cif_id"`
	Corporateid string     `gorm:"size:50" json:"corporateid"`
	EntryDate   *time.Time `json:"entry_date"`
	ValueDate   *time.Time `json:"value_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
