package config

import (
	"strings"
	"sync/atomic"
	"time"
)

// DefaultAPIPrefix mounts the API when API_PREFIX is unset.
const DefaultAPIPrefix = "/api/v1"

// Flags are the runtime feature switches of the monitoring pipeline.
// A Flags value is immutable once published; change it with Settings.Apply.
type Flags struct {
	MonitoringEnabled   bool
	AIAnalysisEnabled   bool
	ExternalSyncEnabled bool
}

// Settings holds process-wide configuration. Static fields are read once at
// startup; Flags are swapped atomically so readers always see a consistent set.
type Settings struct {
	AppName          string
	OrganizationName string
	Port             string
	APIPrefix        string

	WebhookToken     string
	WebhookTokenHash string
	JWTSecret        string

	ExternalAPIURL     string
	ExternalAPITimeout time.Duration

	AIQueueBackend string
	AIQueueName    string
	KafkaBrokers   []string

	DispatchWorkers   int
	DispatchQueueSize int

	CORSOrigins string

	flags atomic.Pointer[Flags]
}

// Load builds Settings from the environment.
func Load() *Settings {
	s := &Settings{
		AppName:            GetEnv("APP_NAME", "AML Transaction Monitoring System"),
		OrganizationName:   GetEnv("ORGANIZATION_NAME", "NATSAVE Bank"),
		Port:               GetEnv("PORT", "50000"),
		APIPrefix:          GetEnv("API_PREFIX", DefaultAPIPrefix),
		WebhookToken:       GetEnv("WEBHOOK_TOKEN", ""),
		WebhookTokenHash:   GetEnv("WEBHOOK_TOKEN_HASH", ""),
		JWTSecret:          GetEnv("JWT_SECRET", "change-me"),
		ExternalAPIURL:     GetEnv("EXTERNAL_API_URL", "http://localhost:8000/process_json"),
		ExternalAPITimeout: GetDurationEnv("EXTERNAL_API_TIMEOUT", 30*time.Second),
		AIQueueBackend:     GetEnv("AI_QUEUE_BACKEND", "redis"),
		AIQueueName:        GetEnv("AI_QUEUE_NAME", "aml:ai_analysis"),
		KafkaBrokers:       GetListEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		DispatchWorkers:    GetIntEnv("DISPATCH_WORKERS", 4),
		DispatchQueueSize:  GetIntEnv("DISPATCH_QUEUE_SIZE", 256),
		CORSOrigins:        GetEnv("CORS_ORIGINS", "*"),
	}
	s.Apply(FlagsFromEnv())
	return s
}

// FlagsFromEnv reads the feature switches from the environment.
func FlagsFromEnv() Flags {
	return Flags{
		MonitoringEnabled:   GetBoolEnv("MONITORING_ENABLED", true),
		AIAnalysisEnabled:   GetBoolEnv("ENABLE_AI_ANALYSIS", false),
		ExternalSyncEnabled: GetBoolEnv("ENABLE_EXTERNAL_SYNC", false),
	}
}

// NewSettings returns Settings with the given flags and zero static values.
func NewSettings(f Flags) *Settings {
	s := &Settings{}
	s.Apply(f)
	return s
}

// Prefix returns the path the API group is mounted under, without a
// trailing slash.
func (s *Settings) Prefix() string {
	p := strings.TrimRight(strings.TrimSpace(s.APIPrefix), "/")
	if p == "" {
		return DefaultAPIPrefix
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// WebhookPath is the full path of the ingest endpoint.
func (s *Settings) WebhookPath() string {
	return s.Prefix() + "/webhook/suspicious"
}

// Flags returns the currently published flag snapshot.
func (s *Settings) Flags() Flags {
	if f := s.flags.Load(); f != nil {
		return *f
	}
	return Flags{}
}

// Apply publishes a new flag snapshot and returns the previous one.
func (s *Settings) Apply(f Flags) Flags {
	prev := s.flags.Swap(&f)
	if prev == nil {
		return Flags{}
	}
	return *prev
}
