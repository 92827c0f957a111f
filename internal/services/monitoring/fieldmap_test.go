package monitoring

import (
	"testing"

	"amlwatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfile_AbsentFieldsAreNotOverwritten(t *testing.T) {
	tx := &newRequest(500).CurrentTransaction
	tx.Branch = "001"
	tx.MobileNo = "   "
	tx.AcctOpnDate = "not a date"
	tx.SCashDrLim = 1000

	p, columns := buildProfile(tx, models.RiskProfile{RiskScore: 12.5, RiskLevel: models.RiskLevelLow})

	assert.Equal(t, "0012345", p.AcctNo)
	assert.Equal(t, 12.5, p.RiskScore)
	assert.Equal(t, "TX-1", p.LastTransactionID)
	assert.Equal(t, 1000.0, p.SCashDrLim)
	require.NotNil(t, p.TranDate)

	assert.Contains(t, columns, "acct_name")
	assert.Contains(t, columns, "risk_score")
	assert.Contains(t, columns, "branch")
	assert.Contains(t, columns, "tran_date")
	assert.Contains(t, columns, "tran_particular")
	assert.Contains(t, columns, "s_cash_dr_lim")
	assert.Contains(t, columns, "updated_at")
	assert.NotContains(t, columns, "mobile_no")
	assert.NotContains(t, columns, "acct_opn_date")
	assert.NotContains(t, columns, "address_line")
	assert.NotContains(t, columns, "acct_no")
	assert.NotContains(t, columns, "created_at")
}

func TestBuildCase_SnapshotsTransaction(t *testing.T) {
	req := newRequest(5000)
	req.CurrentTransaction.NrcNo = "123456/10/1"
	req.CurrentTransaction.AcctOpnDate = "15/01/2024"
	risk := models.RiskProfile{RiskScore: 60, RiskLevel: models.RiskLevelHigh, RiskFactors: models.StringList{models.FactorHighAmount}}

	c := buildCase(req, risk, "reason")

	assert.Equal(t, "CASE-0001", c.CaseNumber)
	assert.Equal(t, "123456/10/1", c.Identifier)
	assert.Equal(t, "deposit", c.Reference)
	assert.Equal(t, "D", c.TransactionType)
	require.NotNil(t, c.AccountOpenDate)
	assert.Equal(t, 2024, c.AccountOpenDate.Year())
	assert.Equal(t, models.StringList{models.FactorHighAmount}, c.RiskFactors)
}

func TestCombineReasons(t *testing.T) {
	assert.Nil(t, combineReasons(nil, nil))
	assert.Equal(t, "L", *combineReasons(strPtr("L"), nil))
	assert.Equal(t, "Watchlist: W", *combineReasons(nil, strPtr("W")))
	assert.Equal(t, "L; Watchlist: W", *combineReasons(strPtr("L"), strPtr("W")))
}
