package monitoring

// Result statuses
const (
	StatusProcessed          = "processed"
	StatusExempted           = "exempted"
	StatusMonitoringDisabled = "monitoring_disabled"
	StatusFailed             = "failed"
)

// Pipeline steps reported in step errors and metrics
const (
	StepExemption      = "exemption_check"
	StepWatchlist      = "watchlist_check"
	StepProfile        = "profile_upsert"
	StepRawTransaction = "raw_transaction"
	StepThreshold      = "threshold_check"
	StepCase           = "case_creation"
)

// Background job kinds
const (
	JobAIAnalysis   = "ai_analysis"
	JobExternalSync = "external_sync"
)

// HighRiskCaseScore is the score above which a case is raised even
// without a limit breach or watchlist hit.
const HighRiskCaseScore = 50.0
