package risk

import (
	"math"
	"testing"
	"time"

	"amlwatch/internal/models"

	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestScorer() *Scorer {
	return NewScorer(WithClock(func() time.Time { return fixedNow }))
}

func TestScorer_Evaluate(t *testing.T) {
	tests := []struct {
		name    string
		tx      models.TransactionData
		score   float64
		level   models.RiskLevel
		factors models.StringList
	}{
		{
			name:    "small ordinary transaction",
			tx:      models.TransactionData{TranAmt: 500},
			score:   0,
			level:   models.RiskLevelLow,
			factors: models.StringList{},
		},
		{
			name:    "high amount",
			tx:      models.TransactionData{TranAmt: 50500},
			score:   15.15,
			level:   models.RiskLevelLow,
			factors: models.StringList{models.FactorHighAmount},
		},
		{
			name:    "new account thirty days old",
			tx:      models.TransactionData{TranAmt: 100, AcctOpnDate: "2024-05-02"},
			score:   6.67,
			level:   models.RiskLevelLow,
			factors: models.StringList{models.FactorNewAccount},
		},
		{
			name:    "account exactly ninety days old",
			tx:      models.TransactionData{TranAmt: 100, AcctOpnDate: "2024-03-03"},
			score:   0,
			level:   models.RiskLevelLow,
			factors: models.StringList{},
		},
		{
			name:    "day first open date",
			tx:      models.TransactionData{TranAmt: 100, AcctOpnDate: "01/06/2024"},
			score:   10,
			level:   models.RiskLevelLow,
			factors: models.StringList{models.FactorNewAccount},
		},
		{
			name:    "open date in the future counts as today",
			tx:      models.TransactionData{TranAmt: 100, AcctOpnDate: "2024-07-01"},
			score:   10,
			level:   models.RiskLevelLow,
			factors: models.StringList{models.FactorNewAccount},
		},
		{
			name:    "unparseable open date is ignored",
			tx:      models.TransactionData{TranAmt: 100, AcctOpnDate: "last year"},
			score:   0,
			level:   models.RiskLevelLow,
			factors: models.StringList{},
		},
		{
			name:    "round thousands",
			tx:      models.TransactionData{TranAmt: 2000},
			score:   20,
			level:   models.RiskLevelLow,
			factors: models.StringList{models.FactorUnusualPattern},
		},
		{
			name:    "exactly one thousand is not flagged",
			tx:      models.TransactionData{TranAmt: 1000},
			score:   0,
			level:   models.RiskLevelLow,
			factors: models.StringList{},
		},
		{
			name:    "fractional amount near a thousand",
			tx:      models.TransactionData{TranAmt: 3000.01},
			score:   0,
			level:   models.RiskLevelLow,
			factors: models.StringList{},
		},
		{
			name:    "just under ten thousand is not round",
			tx:      models.TransactionData{TranAmt: 9999.99},
			score:   0,
			level:   models.RiskLevelLow,
			factors: models.StringList{},
		},
		{
			name:    "high amount on a ten day old account with urgent cash remarks",
			tx:      models.TransactionData{TranAmt: 15000, AcctOpnDate: "2024-05-22", TranRmks: "urgent cash"},
			score:   33.39,
			level:   models.RiskLevelMedium,
			factors: models.StringList{models.FactorHighAmount, models.FactorNewAccount, models.FactorUnusualPattern},
		},
		{
			name:    "keyword in remarks",
			tx:      models.TransactionData{TranAmt: 150, TranRmks: "URGENT payment"},
			score:   20,
			level:   models.RiskLevelLow,
			factors: models.StringList{models.FactorUnusualPattern},
		},
		{
			name:    "high amount plus structuring is critical",
			tx:      models.TransactionData{TranAmt: 250000},
			score:   95,
			level:   models.RiskLevelCritical,
			factors: models.StringList{models.FactorHighAmount, models.FactorUnusualPattern},
		},
		{
			name:    "score is capped",
			tx:      models.TransactionData{TranAmt: 400000, AcctOpnDate: "2024-06-01"},
			score:   100,
			level:   models.RiskLevelCritical,
			factors: models.StringList{models.FactorHighAmount, models.FactorNewAccount, models.FactorUnusualPattern},
		},
	}

	scorer := newTestScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := tt.tx
			got := scorer.Evaluate(&tx, "CASE-1")

			assert.InDelta(t, tt.score, got.RiskScore, 0.0001)
			assert.Equal(t, tt.level, got.RiskLevel)
			assert.Equal(t, tt.factors, got.RiskFactors)
			assert.Equal(t, "CASE-1", got.CaseNumber)
			assert.Equal(t, fixedNow, got.EvaluatedAt)
			assert.Empty(t, got.Error)
		})
	}
}

func TestScorer_LimitBreaches(t *testing.T) {
	scorer := newTestScorer()

	t.Run("each scored limit adds five points", func(t *testing.T) {
		tx := models.TransactionData{TranAmt: 500}
		tx.ACashExcpAmtLim = 100
		tx.SXferAbnrmlAmtLim = 100

		got := scorer.Evaluate(&tx, "C")
		assert.InDelta(t, 10.0, got.RiskScore, 0.0001)
		assert.Empty(t, got.RiskFactors)
	})

	t.Run("breach contribution is capped at thirty", func(t *testing.T) {
		tx := models.TransactionData{TranAmt: 500}
		tx.ACashExcpAmtLim = 100
		tx.AClgExcpAmtLim = 100
		tx.AXferExcpAmtLim = 100
		tx.SCashAbnrmlAmtLim = 100
		tx.SClgAbnrmlAmtLim = 100
		tx.SXferAbnrmlAmtLim = 100

		got := scorer.Evaluate(&tx, "C")
		assert.InDelta(t, 30.0, got.RiskScore, 0.0001)
		assert.Equal(t, models.RiskLevelMedium, got.RiskLevel)
	})

	t.Run("zero limits and unscored limits are ignored", func(t *testing.T) {
		tx := models.TransactionData{TranAmt: 500}
		tx.SCashDrLim = 1
		tx.ACashCrExcpAmtLim = 1

		got := scorer.Evaluate(&tx, "C")
		assert.Zero(t, got.RiskScore)
	})

	t.Run("amount equal to limit is not a breach", func(t *testing.T) {
		tx := models.TransactionData{TranAmt: 500}
		tx.ACashExcpAmtLim = 500

		got := scorer.Evaluate(&tx, "C")
		assert.Zero(t, got.RiskScore)
	})
}

func TestScorer_Degrades(t *testing.T) {
	scorer := newTestScorer()

	for _, amount := range []float64{math.NaN(), math.Inf(1)} {
		tx := models.TransactionData{TranAmt: amount}
		got := scorer.Evaluate(&tx, "CASE-9")

		assert.Zero(t, got.RiskScore)
		assert.Equal(t, models.RiskLevelLow, got.RiskLevel)
		assert.NotEmpty(t, got.Error)
		assert.Equal(t, "CASE-9", got.CaseNumber)
	}

	got := scorer.Evaluate(nil, "CASE-9")
	assert.NotEmpty(t, got.Error)
}

func TestScorer_PanicIsRecovered(t *testing.T) {
	scorer := NewScorer(WithClock(func() time.Time { panic("clock exploded") }))

	var got models.RiskProfile
	assert.NotPanics(t, func() {
		got = scorer.Evaluate(&models.TransactionData{TranAmt: 10}, "C")
	})
	assert.Zero(t, got.RiskScore)
	assert.Equal(t, models.RiskLevelLow, got.RiskLevel)
	assert.Contains(t, got.Error, "clock exploded")
}

func TestScorer_Properties(t *testing.T) {
	scorer := newTestScorer()
	amounts := []float64{0, 1, 999.99, 1000, 1001, 5000, 10000, 10000.01, 99999, 1e6, 1e9}
	remarks := []string{"", "salary", "cash deposit", "Confidential"}
	dates := []string{"", "2024-05-31", "2020-01-01", "bad"}

	for _, a := range amounts {
		for _, r := range remarks {
			for _, d := range dates {
				tx := models.TransactionData{TranAmt: a, TranRmks: r, AcctOpnDate: d}
				got := scorer.Evaluate(&tx, "P")

				assert.GreaterOrEqual(t, got.RiskScore, 0.0)
				assert.LessOrEqual(t, got.RiskScore, 100.0)
				assert.Equal(t, got.RiskScore, math.Round(got.RiskScore*100)/100)
				assert.Equal(t, models.LevelForScore(got.RiskScore), got.RiskLevel)

				again := scorer.Evaluate(&tx, "P")
				assert.Equal(t, got, again, "scoring must be deterministic")
			}
		}
	}
}
