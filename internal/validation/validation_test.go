package validation

import (
	"errors"
	"math"
	"testing"

	apperrors "amlwatch/internal/errors"
	"amlwatch/internal/models"

	"github.com/stretchr/testify/assert"
)

func validRequest() *models.SuspiciousTransactionRequest {
	return &models.SuspiciousTransactionRequest{
		CaseNumber:         "CASE-2024-0001",
		ComplianceCategory: "AML",
		Perm:               "token",
		CurrentTransaction: models.TransactionData{
			AcctNo:        "0012345",
			AcctName:      "Jane Doe",
			TranID:        "T1",
			TranDate:      "2024-03-01",
			TranCrncyCode: "ZMW",
			DrCrIndicator: "D",
			TranAmt:       1500,
		},
	}
}

func TestSuspiciousTransaction_Valid(t *testing.T) {
	v := New()
	v.SuspiciousTransaction(validRequest())

	assert.True(t, v.Valid(), v.Errors)
	assert.NoError(t, v.Err())
}

func TestSuspiciousTransaction_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(r *models.SuspiciousTransactionRequest)
		field string
	}{
		{"long case number", func(r *models.SuspiciousTransactionRequest) { r.CaseNumber = "CASE-0123456789-0123456789" }, "case_number"},
		{"missing account", func(r *models.SuspiciousTransactionRequest) { r.CurrentTransaction.AcctNo = "" }, "current_transaction.acct_no"},
		{"missing indicator", func(r *models.SuspiciousTransactionRequest) { r.CurrentTransaction.DrCrIndicator = "" }, "current_transaction.dr_cr_indicator"},
		{"negative amount", func(r *models.SuspiciousTransactionRequest) { r.CurrentTransaction.TranAmt = -1 }, "current_transaction.tran_amt"},
		{"nan amount", func(r *models.SuspiciousTransactionRequest) { r.CurrentTransaction.TranAmt = math.NaN() }, "current_transaction.tran_amt"},
		{"negative limit", func(r *models.SuspiciousTransactionRequest) { r.CurrentTransaction.SCashDrLim = -5 }, "current_transaction.s_cash_dr_lim"},
		{"bad date", func(r *models.SuspiciousTransactionRequest) { r.CurrentTransaction.TranDate = "tomorrow" }, "current_transaction.tran_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mut(req)

			v := New()
			v.SuspiciousTransaction(req)

			assert.False(t, v.Valid())
			assert.Contains(t, v.Errors, tt.field)
			assert.True(t, errors.Is(v.Err(), apperrors.ErrValidation))
		})
	}
}

func TestLimit_ChannelMustBeKnown(t *testing.T) {
	v := New()
	v.Limit(&models.LimitRequest{Channel: "WIRE", Type: "D", Limit: 10})

	assert.Contains(t, v.Errors, "channel")
}

func TestCaseStatus(t *testing.T) {
	v := New()
	v.CaseStatus(&models.CaseStatusRequest{Status: "closed"})
	assert.False(t, v.Valid())

	v = New()
	v.CaseStatus(&models.CaseStatusRequest{Status: models.CaseStatusCompliant})
	assert.True(t, v.Valid())
}
