package risk

// Weights and thresholds of the scoring factors.
const (
	HighAmountThreshold = 10000.0
	HighAmountWeight    = 0.3
	HighAmountScale     = 100000.0

	NewAccountDays   = 90
	NewAccountWeight = 0.1

	LimitBreachWeight = 0.05
	LimitBreachCap    = 0.3

	UnusualPatternWeight   = 0.2
	RoundAmountFloor       = 1000.0
	RoundAmountDenominator = 1000

	MaxScore = 100.0
)

// SuspiciousKeywords in the remarks mark a transaction as unusual.
var SuspiciousKeywords = []string{"cash", "urgent", "immediate", "confidential"}
