package models

import "time"

// RiskLevel is the coarse bucket derived from a risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Score boundaries for the risk levels (inclusive lower bounds).
const (
	CriticalRiskScore = 75.0
	HighRiskScore     = 50.0
	MediumRiskScore   = 25.0
)

// LevelForScore maps a score in [0,100] onto its risk level.
func LevelForScore(score float64) RiskLevel {
	switch {
	case score >= CriticalRiskScore:
		return RiskLevelCritical
	case score >= HighRiskScore:
		return RiskLevelHigh
	case score >= MediumRiskScore:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// Rank orders levels so that low < medium < high < critical.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return 0
	}
}

// Risk factor tags
const (
	FactorHighAmount     = "high_amount_transaction"
	FactorNewAccount     = "new_account"
	FactorUnusualPattern = "unusual_pattern"
)

// RiskProfile is the outcome of scoring a single transaction.
type RiskProfile struct {
	RiskScore   float64    `json:"risk_score"`
	RiskLevel   RiskLevel  `json:"risk_level"`
	RiskFactors StringList `json:"risk_factors"`
	CaseNumber  string     `json:"case_number"`
	EvaluatedAt time.Time  `json:"evaluated_at"`
	Error       string     `json:"error,omitempty"`
}
