package monitoring

import (
	"strings"

	"amlwatch/internal/models"
	"amlwatch/internal/utils"
)

// profileField copies one optional feed field onto the profile and reports
// whether the feed carried a value for it. Fields without a value are left
// out of the upsert so stored data survives partial feeds.
type profileField struct {
	column string
	apply  func(p *models.CustomerProfile, tx *models.TransactionData) bool
}

func textField(column string, src func(tx *models.TransactionData) string, dst func(p *models.CustomerProfile) *string) profileField {
	return profileField{
		column: column,
		apply: func(p *models.CustomerProfile, tx *models.TransactionData) bool {
			v := strings.TrimSpace(src(tx))
			*dst(p) = v
			return v != ""
		},
	}
}

var optionalProfileFields = []profileField{
	{
		column: "acct_opn_date",
		apply: func(p *models.CustomerProfile, tx *models.TransactionData) bool {
			p.AcctOpnDate = utils.ParseFeedDatePtr(tx.AcctOpnDate)
			return p.AcctOpnDate != nil
		},
	},
	textField("branch", func(tx *models.TransactionData) string { return tx.Branch }, func(p *models.CustomerProfile) *string { return &p.Branch }),
	textField("address_line", func(tx *models.TransactionData) string { return tx.AddressLine }, func(p *models.CustomerProfile) *string { return &p.AddressLine }),
	textField("country", func(tx *models.TransactionData) string { return tx.Country }, func(p *models.CustomerProfile) *string { return &p.Country }),
	textField("mobile_no", func(tx *models.TransactionData) string { return tx.MobileNo }, func(p *models.CustomerProfile) *string { return &p.MobileNo }),
	textField("nrc_no", func(tx *models.TransactionData) string { return tx.NrcNo }, func(p *models.CustomerProfile) *string { return &p.NrcNo }),
	textField("tpin_number", func(tx *models.TransactionData) string { return tx.TpinNumber }, func(p *models.CustomerProfile) *string { return &p.TpinNumber }),
	textField("cercn", func(tx *models.TransactionData) string { return tx.Cercn }, func(p *models.CustomerProfile) *string { return &p.Cercn }),
	textField("schm_code", func(tx *models.TransactionData) string { return tx.SchmCode }, func(p *models.CustomerProfile) *string { return &p.SchmCode }),
	textField("schm_desc", func(tx *models.TransactionData) string { return tx.SchmDesc }, func(p *models.CustomerProfile) *string { return &p.SchmDesc }),
	{
		column: "tran_date",
		apply: func(p *models.CustomerProfile, tx *models.TransactionData) bool {
			p.TranDate = utils.ParseFeedDatePtr(tx.TranDate)
			return p.TranDate != nil
		},
	},
	textField("tran_particular", func(tx *models.TransactionData) string { return tx.TranParticular }, func(p *models.CustomerProfile) *string { return &p.TranParticular }),
	textField("tran_rmks", func(tx *models.TransactionData) string { return tx.TranRmks }, func(p *models.CustomerProfile) *string { return &p.TranRmks }),
}

// Columns overwritten on every upsert.
var alwaysProfileColumns = []string{
	"acct_name",
	"risk_score",
	"risk_level",
	"last_transaction_id",
	"tran_crncy_code",
	"dr_cr_indicator",
	"tran_amt",
}

// buildProfile maps tx and its risk onto a profile and lists the columns
// the upsert may overwrite.
func buildProfile(tx *models.TransactionData, risk models.RiskProfile) (*models.CustomerProfile, []string) {
	p := &models.CustomerProfile{
		AcctNo:            tx.AcctNo,
		AcctName:          tx.AcctName,
		RiskScore:         risk.RiskScore,
		RiskLevel:         risk.RiskLevel,
		LastTransactionID: tx.TranID,
		TranCrncyCode:     tx.TranCrncyCode,
		DrCrIndicator:     tx.DrCrIndicator,
		TranAmt:           tx.TranAmt,
		LimitSet:          tx.LimitSet,
	}

	columns := make([]string, 0, len(alwaysProfileColumns)+len(optionalProfileFields)+len(models.LimitFields)+1)
	columns = append(columns, alwaysProfileColumns...)
	for _, f := range optionalProfileFields {
		if f.apply(p, tx) {
			columns = append(columns, f.column)
		}
	}
	for _, f := range models.LimitFields {
		columns = append(columns, f.Name)
	}
	columns = append(columns, "updated_at")
	return p, columns
}

func buildRawTransaction(tx *models.TransactionData, risk models.RiskProfile, caseNumber string) *models.RawTransaction {
	return &models.RawTransaction{
		CaseNumber:     caseNumber,
		AcctNo:         tx.AcctNo,
		AcctName:       tx.AcctName,
		RiskScore:      risk.RiskScore,
		RiskLevel:      risk.RiskLevel,
		TranID:         tx.TranID,
		AcctOpnDate:    utils.ParseFeedDatePtr(tx.AcctOpnDate),
		Branch:         tx.Branch,
		AddressLine:    tx.AddressLine,
		Country:        tx.Country,
		MobileNo:       tx.MobileNo,
		NrcNo:          tx.NrcNo,
		TpinNumber:     tx.TpinNumber,
		Cercn:          tx.Cercn,
		SchmCode:       tx.SchmCode,
		SchmDesc:       tx.SchmDesc,
		TranDate:       utils.ParseFeedDatePtr(tx.TranDate),
		TranCrncyCode:  tx.TranCrncyCode,
		DrCrIndicator:  tx.DrCrIndicator,
		TranAmt:        tx.TranAmt,
		TranParticular: tx.TranParticular,
		TranRmks:       tx.TranRmks,
		LimitSet:       tx.LimitSet,
		Photo:          tx.Photo,
		CifID:          tx.CifID,
		Corporateid:    tx.Corporateid,
		EntryDate:      utils.ParseFeedDatePtr(tx.EntryDate),
		ValueDate:      utils.ParseFeedDatePtr(tx.ValueDate),
	}
}

func buildCase(req *models.SuspiciousTransactionRequest, risk models.RiskProfile, reason string) *models.SuspiciousCase {
	tx := &req.CurrentTransaction
	return &models.SuspiciousCase{
		CaseNumber:         req.CaseNumber,
		AccountNumber:      tx.AcctNo,
		AccountName:        tx.AcctName,
		AccountOpenDate:    utils.ParseFeedDatePtr(tx.AcctOpnDate),
		TransactionDate:    utils.ParseFeedDatePtr(tx.TranDate),
		BranchCode:         tx.Branch,
		Address:            tx.AddressLine,
		Phone:              tx.MobileNo,
		Identifier:         tx.NrcNo,
		TransactionID:      tx.TranID,
		Currency:           tx.TranCrncyCode,
		TransactionType:    tx.DrCrIndicator,
		Amount:             tx.TranAmt,
		Reference:          tx.TranParticular,
		TpinNumber:         tx.TpinNumber,
		Status:             models.CaseStatusSuspicious,
		FlaggingReason:     reason,
		ComplianceCategory: req.ComplianceCategory,
		ComplianceData:     req.ComplianceIssue,
		RiskScore:          risk.RiskScore,
		RiskLevel:          risk.RiskLevel,
		RiskFactors:        risk.RiskFactors,
		Photo:              tx.Photo,
		CifID:              tx.CifID,
		Corporateid:        tx.Corporateid,
		EntryDate:          utils.ParseFeedDatePtr(tx.EntryDate),
		ValueDate:          utils.ParseFeedDatePtr(tx.ValueDate),
	}
}
