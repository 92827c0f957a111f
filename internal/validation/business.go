package validation

import (
	"amlwatch/internal/models"
	"amlwatch/internal/utils"
)

// Transaction validates one feed transaction
func (v *Validator) Transaction(prefix string, tx *models.TransactionData) {
	v.Finite(prefix+"tran_amt", tx.TranAmt)
	v.Range(prefix+"tran_amt", tx.TranAmt, 0, MaxAmount)
	for _, f := range models.LimitFields {
		val := f.Get(&tx.LimitSet)
		v.Finite(prefix+f.Name, val)
		v.Check(val >= 0, prefix+f.Name, "must be greater than or equal to 0")
	}

	if tx.TranDate != "" {
		_, ok := utils.ParseFeedDate(tx.TranDate)
		v.Check(ok, prefix+"tran_date", "must be a valid date")
	}
}

// SuspiciousTransaction validates an ingest webhook request. The shared
// secret in Perm is checked separately.
func (v *Validator) SuspiciousTransaction(req *models.SuspiciousTransactionRequest) {
	v.Struct(req)
	v.Transaction("current_transaction.", &req.CurrentTransaction)
}

// Watchlist validates a watchlist request
func (v *Validator) Watchlist(req *models.WatchlistRequest) {
	v.Struct(req)
	v.MaxLength("reason_for_monitoring", req.ReasonForMonitoring, MaxReasonLength)
}

// Exemption validates an exemption request
func (v *Validator) Exemption(req *models.ExemptionRequest) {
	v.Struct(req)
	v.MaxLength("exemption_reason", req.ExemptionReason, MaxReasonLength)
}

// Limit validates a limit request
func (v *Validator) Limit(req *models.LimitRequest) {
	v.Struct(req)
	v.Finite("limit", req.Limit)
}

// CaseStatus validates a status change
func (v *Validator) CaseStatus(req *models.CaseStatusRequest) {
	v.Check(req.Status.Valid(), "status", "must be one of suspicious, not compliant, compliant, pending, reviewed")
}
