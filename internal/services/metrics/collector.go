// Package metrics instruments the monitoring pipeline.
package metrics

import "time"

// MetricsCollector receives pipeline measurements.
type MetricsCollector interface {
	RecordProcessed(status string, d time.Duration)
	RecordRiskLevel(level string)
	RecordCaseCreated()
	RecordStepError(step string)
	RecordDispatch(job, result string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordProcessed(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordRiskLevel(string)                {}
func (n *NoopMetricsCollector) RecordCaseCreated()                    {}
func (n *NoopMetricsCollector) RecordStepError(string)                {}
func (n *NoopMetricsCollector) RecordDispatch(string, string)         {}
