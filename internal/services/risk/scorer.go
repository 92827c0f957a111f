// Package risk scores a single transaction for money-laundering risk.
//
// Scoring is a pure function of the transaction and the clock: it touches
// no storage and never fails. Internal failures degrade to a zero score
// with the cause recorded on the profile.
package risk

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"amlwatch/internal/models"
	"amlwatch/internal/utils"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("transaction amount is not a finite number")

// scoredLimits are the limit columns that contribute to the breach factor.
var scoredLimits = []func(l *models.LimitSet) float64{
	func(l *models.LimitSet) float64 { return l.ACashExcpAmtLim },
	func(l *models.LimitSet) float64 { return l.AClgExcpAmtLim },
	func(l *models.LimitSet) float64 { return l.AXferExcpAmtLim },
	func(l *models.LimitSet) float64 { return l.SCashAbnrmlAmtLim },
	func(l *models.LimitSet) float64 { return l.SClgAbnrmlAmtLim },
	func(l *models.LimitSet) float64 { return l.SXferAbnrmlAmtLim },
}

type Scorer struct {
	now func() time.Time
	log zerolog.Logger
}

type Option func(*Scorer)

// WithClock overrides the time source used for account age.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Scorer) { s.log = l }
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		now: func() time.Time { return time.Now().UTC() },
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate scores tx and stamps the result with caseNumber.
func (s *Scorer) Evaluate(tx *models.TransactionData, caseNumber string) (profile models.RiskProfile) {
	var now time.Time
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("case_number", caseNumber).Msg("risk evaluation failed")
			profile = degraded(fmt.Errorf("risk evaluation panicked: %v", r), caseNumber, now)
		}
	}()
	now = s.now()

	if tx == nil {
		return degraded(errors.New("no transaction supplied"), caseNumber, now)
	}
	amount := tx.TranAmt
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		s.log.Error().Err(ErrInvalidAmount).Str("case_number", caseNumber).Msg("risk evaluation failed")
		return degraded(ErrInvalidAmount, caseNumber, now)
	}

	var acc float64
	factors := models.StringList{}

	if amount > HighAmountThreshold {
		acc += HighAmountWeight * (amount / HighAmountScale)
		factors = append(factors, models.FactorHighAmount)
	}

	if opened, ok := utils.ParseFeedDate(tx.AcctOpnDate); ok {
		days := accountAgeDays(opened, now)
		if days < NewAccountDays {
			acc += NewAccountWeight * (1 - float64(days)/NewAccountDays)
			factors = append(factors, models.FactorNewAccount)
		}
	}

	acc += limitBreachScore(amount, &tx.LimitSet)

	if isUnusualPattern(amount, tx.TranRmks) {
		acc += UnusualPatternWeight
		factors = append(factors, models.FactorUnusualPattern)
	}

	score := math.Min(math.Max(acc*100, 0), MaxScore)
	score = math.Round(score*100) / 100

	return models.RiskProfile{
		RiskScore:   score,
		RiskLevel:   models.LevelForScore(score),
		RiskFactors: factors,
		CaseNumber:  caseNumber,
		EvaluatedAt: now,
	}
}

func degraded(err error, caseNumber string, now time.Time) models.RiskProfile {
	return models.RiskProfile{
		RiskScore:   0,
		RiskLevel:   models.RiskLevelLow,
		RiskFactors: models.StringList{},
		CaseNumber:  caseNumber,
		EvaluatedAt: now,
		Error:       err.Error(),
	}
}

// accountAgeDays counts whole days since opened. Open dates in the future
// count as opened today.
func accountAgeDays(opened, now time.Time) int {
	days := int(math.Floor(now.Sub(opened).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

func limitBreachScore(amount float64, limits *models.LimitSet) float64 {
	var breach float64
	for _, get := range scoredLimits {
		if limit := get(limits); limit > 0 && amount > limit {
			breach += LimitBreachWeight
		}
	}
	return math.Min(breach, LimitBreachCap)
}

// isUnusualPattern flags round thousands (possible structuring) and
// suspicious remark keywords.
func isUnusualPattern(amount float64, remarks string) bool {
	if amount > RoundAmountFloor {
		d := decimal.NewFromFloat(amount)
		if d.Mod(decimal.NewFromInt(RoundAmountDenominator)).IsZero() {
			return true
		}
	}

	lower := strings.ToLower(remarks)
	for _, kw := range SuspiciousKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
