package monitoring

import "amlwatch/internal/models"

// StepError records a failed pipeline step that processing recovered from.
type StepError struct {
	Step  string `json:"step"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// ProcessResult is the outcome of running one transaction through the pipeline.
type ProcessResult struct {
	Success           bool                `json:"success"`
	Status            string              `json:"status"`
	Message           string              `json:"message,omitempty"`
	CaseNumber        string              `json:"case_number,omitempty"`
	RiskProfile       *models.RiskProfile `json:"risk_profile,omitempty"`
	IsSuspicious      bool                `json:"is_suspicious"`
	FlaggingReason    *string             `json:"flagging_reason"`
	CustomerProfileID *uint               `json:"customer_profile_id"`
	CaseCreated       bool                `json:"case_created"`
	CaseDuplicate     bool                `json:"case_duplicate,omitempty"`
	StepErrors        []StepError         `json:"step_errors,omitempty"`
	Error             string              `json:"error,omitempty"`
}

func (r *ProcessResult) addStepError(step string, code string, err error) {
	r.StepErrors = append(r.StepErrors, StepError{Step: step, Code: code, Error: err.Error()})
}
