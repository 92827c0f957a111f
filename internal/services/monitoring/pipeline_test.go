package monitoring

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"amlwatch/internal/config"
	apperrors "amlwatch/internal/errors"
	"amlwatch/internal/models"
	"amlwatch/internal/repositories"
	"amlwatch/internal/services/notifier"
	"amlwatch/internal/services/risk"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type MockExemptions struct{ mock.Mock }

func (m *MockExemptions) IsExempt(ctx context.Context, acctNo string) (bool, error) {
	args := m.Called(acctNo)
	return args.Bool(0), args.Error(1)
}

type MockWatchlist struct{ mock.Mock }

func (m *MockWatchlist) ReasonIfWatchlisted(ctx context.Context, acctNo string) (*string, error) {
	args := m.Called(acctNo)
	r, _ := args.Get(0).(*string)
	return r, args.Error(1)
}

type MockThreshold struct{ mock.Mock }

func (m *MockThreshold) Check(ctx context.Context, tx *models.TransactionData) (bool, *string, error) {
	args := m.Called(tx.TranID)
	r, _ := args.Get(1).(*string)
	return args.Bool(0), r, args.Error(2)
}

type MockProfiles struct{ mock.Mock }

func (m *MockProfiles) Upsert(ctx context.Context, p *models.CustomerProfile, columns []string) (uint, error) {
	args := m.Called(p, columns)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockProfiles) FindByAccount(ctx context.Context, acctNo string) (*models.CustomerProfile, error) {
	args := m.Called(acctNo)
	p, _ := args.Get(0).(*models.CustomerProfile)
	return p, args.Error(1)
}

type MockRaw struct{ mock.Mock }

func (m *MockRaw) Create(ctx context.Context, tx *models.RawTransaction) error {
	return m.Called(tx).Error(0)
}

func (m *MockRaw) ListByAccount(ctx context.Context, acctNo string, limit int) ([]models.RawTransaction, error) {
	args := m.Called(acctNo, limit)
	return args.Get(0).([]models.RawTransaction), args.Error(1)
}

type MockCases struct{ mock.Mock }

func (m *MockCases) Create(ctx context.Context, c *models.SuspiciousCase) error {
	return m.Called(c).Error(0)
}

func (m *MockCases) FindByNumber(ctx context.Context, caseNumber string) (*models.SuspiciousCase, error) {
	args := m.Called(caseNumber)
	c, _ := args.Get(0).(*models.SuspiciousCase)
	return c, args.Error(1)
}

func (m *MockCases) List(ctx context.Context, filter repositories.CaseFilter) ([]models.SuspiciousCase, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.SuspiciousCase), args.Get(1).(int64), args.Error(2)
}

func (m *MockCases) UpdateStatus(ctx context.Context, caseNumber string, status models.CaseStatus) (*models.SuspiciousCase, error) {
	args := m.Called(caseNumber, status)
	c, _ := args.Get(0).(*models.SuspiciousCase)
	return c, args.Error(1)
}

type MockQueue struct{ mock.Mock }

func (m *MockQueue) Publish(ctx context.Context, msg notifier.AIAnalysisMessage) error {
	return m.Called(msg).Error(0)
}

func (m *MockQueue) Close() error { return nil }

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, tx *models.TransactionData) error {
	return m.Called(tx).Error(0)
}

// inlineRunner runs submitted jobs immediately.
type inlineRunner struct {
	mu   sync.Mutex
	jobs []string
}

func (r *inlineRunner) Submit(kind string, run func(ctx context.Context) error) bool {
	r.mu.Lock()
	r.jobs = append(r.jobs, kind)
	r.mu.Unlock()
	_ = run(context.Background())
	return true
}

type fixture struct {
	settings   *config.Settings
	exemptions *MockExemptions
	watchlist  *MockWatchlist
	threshold  *MockThreshold
	profiles   *MockProfiles
	raw        *MockRaw
	cases      *MockCases
	queue      *MockQueue
	notifier   *MockNotifier
	runner     *inlineRunner
	pipeline   *Pipeline
}

func newFixture(flags config.Flags) *fixture {
	f := &fixture{
		settings:   config.NewSettings(flags),
		exemptions: new(MockExemptions),
		watchlist:  new(MockWatchlist),
		threshold:  new(MockThreshold),
		profiles:   new(MockProfiles),
		raw:        new(MockRaw),
		cases:      new(MockCases),
		queue:      new(MockQueue),
		notifier:   new(MockNotifier),
		runner:     &inlineRunner{},
	}
	f.pipeline = NewPipeline(PipelineConfig{
		Settings:        f.settings,
		Exemptions:      f.exemptions,
		Watchlist:       f.watchlist,
		Scorer:          risk.NewScorer(risk.WithClock(func() time.Time { return fixedNow })),
		Threshold:       f.threshold,
		Profiles:        f.profiles,
		RawTransactions: f.raw,
		Cases:           f.cases,
		Background:      f.runner,
		AIQueue:         f.queue,
		Notifier:        f.notifier,
		Log:             zerolog.Nop(),
		Now:             func() time.Time { return fixedNow },
	})
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	mock.AssertExpectationsForObjects(t, f.exemptions, f.watchlist, f.threshold, f.profiles, f.raw, f.cases, f.queue, f.notifier)
}

// expectClean sets up an account that is neither exempt nor watched, whose
// profile and raw writes succeed and which breaches no limit.
func (f *fixture) expectClean(acctNo, tranID string) {
	f.exemptions.On("IsExempt", acctNo).Return(false, nil).Once()
	f.watchlist.On("ReasonIfWatchlisted", acctNo).Return(nil, nil).Once()
	f.profiles.On("Upsert", mock.Anything, mock.Anything).Return(uint(7), nil).Once()
	f.raw.On("Create", mock.Anything).Return(nil).Once()
	f.threshold.On("Check", tranID).Return(false, nil, nil).Once()
}

func newRequest(amount float64) *models.SuspiciousTransactionRequest {
	return &models.SuspiciousTransactionRequest{
		CaseNumber:         "CASE-0001",
		ComplianceCategory: "AML",
		ComplianceIssue:    "large cash movement",
		CurrentTransaction: models.TransactionData{
			AcctNo:         "0012345",
			AcctName:       "Jane Banda",
			TranID:         "TX-1",
			TranDate:       "2024-06-01",
			TranCrncyCode:  "ZMW",
			DrCrIndicator:  "D",
			TranAmt:        amount,
			TranParticular: "deposit",
		},
		Perm: "token",
	}
}

func strPtr(s string) *string { return &s }

func TestProcess_MonitoringDisabled(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: false})

	result := f.pipeline.Process(context.Background(), newRequest(500))

	assert.True(t, result.Success)
	assert.Equal(t, StatusMonitoringDisabled, result.Status)
	assert.Nil(t, result.RiskProfile)
	f.assertExpectations(t)
}

func TestProcess_ExemptAccountSkipsEverything(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true, ExternalSyncEnabled: true})
	f.exemptions.On("IsExempt", "0012345").Return(true, nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(250000))

	assert.True(t, result.Success)
	assert.Equal(t, StatusExempted, result.Status)
	assert.Contains(t, result.Message, "0012345")
	assert.False(t, result.CaseCreated)
	assert.Empty(t, f.runner.jobs)
	f.assertExpectations(t)
}

func TestProcess_LowRiskNoCase(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.expectClean("0012345", "TX-1")

	result := f.pipeline.Process(context.Background(), newRequest(500))

	require.True(t, result.Success)
	assert.Equal(t, StatusProcessed, result.Status)
	assert.Equal(t, "CASE-0001", result.CaseNumber)
	require.NotNil(t, result.RiskProfile)
	assert.Equal(t, 0.0, result.RiskProfile.RiskScore)
	assert.Equal(t, models.RiskLevelLow, result.RiskProfile.RiskLevel)
	assert.False(t, result.IsSuspicious)
	assert.Nil(t, result.FlaggingReason)
	require.NotNil(t, result.CustomerProfileID)
	assert.Equal(t, uint(7), *result.CustomerProfileID)
	assert.False(t, result.CaseCreated)
	assert.Empty(t, result.StepErrors)
	f.assertExpectations(t)
}

func TestProcess_ScoreOfExactlyFiftyRaisesNoCase(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.expectClean("0012345", "TX-1")

	// 0.3 for the amount plus 0.2 for a round thousand.
	result := f.pipeline.Process(context.Background(), newRequest(100000))

	assert.Equal(t, 50.0, result.RiskProfile.RiskScore)
	assert.False(t, result.CaseCreated)
	f.assertExpectations(t)
}

func TestProcess_MediumRiskWithAllFactorsRaisesNoCase(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.expectClean("0012345", "TX-1")

	req := newRequest(15000)
	req.CurrentTransaction.AcctOpnDate = "2024-05-22"
	req.CurrentTransaction.TranRmks = "urgent cash"
	result := f.pipeline.Process(context.Background(), req)

	require.True(t, result.Success)
	require.NotNil(t, result.RiskProfile)
	assert.InDelta(t, 33.39, result.RiskProfile.RiskScore, 0.0001)
	assert.Equal(t, models.RiskLevelMedium, result.RiskProfile.RiskLevel)
	assert.Equal(t, models.StringList{models.FactorHighAmount, models.FactorNewAccount, models.FactorUnusualPattern}, result.RiskProfile.RiskFactors)
	assert.False(t, result.IsSuspicious)
	assert.False(t, result.CaseCreated)
	f.assertExpectations(t)
}

func TestProcess_HighRiskScoreRaisesCase(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.expectClean("0012345", "TX-1")

	var created *models.SuspiciousCase
	f.cases.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.SuspiciousCase)
	}).Return(nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(200000))

	assert.Equal(t, 80.0, result.RiskProfile.RiskScore)
	assert.False(t, result.IsSuspicious)
	assert.True(t, result.CaseCreated)
	require.NotNil(t, created)
	assert.Equal(t, "High risk score: 80.0", created.FlaggingReason)
	assert.Equal(t, models.CaseStatusSuspicious, created.Status)
	assert.Equal(t, "AML", created.ComplianceCategory)
	assert.Equal(t, "large cash movement", created.ComplianceData)
	assert.Equal(t, "TX-1", created.TransactionID)
	assert.Equal(t, models.RiskLevelCritical, created.RiskLevel)
	f.assertExpectations(t)
}

func TestProcess_LimitBreachCreatesCaseAndQueuesAI(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true, AIAnalysisEnabled: true})
	f.exemptions.On("IsExempt", "0012345").Return(false, nil).Once()
	f.watchlist.On("ReasonIfWatchlisted", "0012345").Return(nil, nil).Once()
	f.profiles.On("Upsert", mock.Anything, mock.Anything).Return(uint(3), nil).Once()
	f.raw.On("Create", mock.Anything).Return(nil).Once()
	f.threshold.On("Check", "TX-1").Return(true, strPtr("D transaction exceeds DEFAULT limit of 5000.0"), nil).Once()
	f.cases.On("Create", mock.MatchedBy(func(c *models.SuspiciousCase) bool {
		return c.FlaggingReason == "D transaction exceeds DEFAULT limit of 5000.0"
	})).Return(nil).Once()
	f.queue.On("Publish", mock.MatchedBy(func(msg notifier.AIAnalysisMessage) bool {
		return msg.CaseNumber == "CASE-0001" && msg.TranID == "TX-1" && msg.QueuedAt.Equal(fixedNow)
	})).Return(nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(7500))

	assert.True(t, result.IsSuspicious)
	assert.True(t, result.CaseCreated)
	require.NotNil(t, result.FlaggingReason)
	assert.Equal(t, "D transaction exceeds DEFAULT limit of 5000.0", *result.FlaggingReason)
	assert.Equal(t, []string{JobAIAnalysis}, f.runner.jobs)
	f.assertExpectations(t)
}

func TestProcess_WatchlistOnly(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.exemptions.On("IsExempt", "0012345").Return(false, nil).Once()
	f.watchlist.On("ReasonIfWatchlisted", "0012345").Return(strPtr("PEP"), nil).Once()
	f.profiles.On("Upsert", mock.Anything, mock.Anything).Return(uint(3), nil).Once()
	f.raw.On("Create", mock.Anything).Return(nil).Once()
	f.threshold.On("Check", "TX-1").Return(false, nil, nil).Once()
	f.cases.On("Create", mock.Anything).Return(nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(500))

	assert.True(t, result.IsSuspicious)
	require.NotNil(t, result.FlaggingReason)
	assert.Equal(t, "Watchlist: PEP", *result.FlaggingReason)
	assert.True(t, result.CaseCreated)
	f.assertExpectations(t)
}

func TestProcess_LimitAndWatchlistReasonsCombine(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.exemptions.On("IsExempt", "0012345").Return(false, nil).Once()
	f.watchlist.On("ReasonIfWatchlisted", "0012345").Return(strPtr("PEP"), nil).Once()
	f.profiles.On("Upsert", mock.Anything, mock.Anything).Return(uint(3), nil).Once()
	f.raw.On("Create", mock.Anything).Return(nil).Once()
	f.threshold.On("Check", "TX-1").Return(true, strPtr("Cash ceiling"), nil).Once()
	f.cases.On("Create", mock.Anything).Return(nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(500))

	require.NotNil(t, result.FlaggingReason)
	assert.Equal(t, "Cash ceiling; Watchlist: PEP", *result.FlaggingReason)
	f.assertExpectations(t)
}

func TestProcess_LookupFailuresDegrade(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.exemptions.On("IsExempt", "0012345").Return(false, errors.New("db down")).Once()
	f.watchlist.On("ReasonIfWatchlisted", "0012345").Return(nil, errors.New("db down")).Once()
	f.profiles.On("Upsert", mock.Anything, mock.Anything).Return(uint(0), errors.New("db down")).Once()
	f.raw.On("Create", mock.Anything).Return(errors.New("db down")).Once()
	f.threshold.On("Check", "TX-1").Return(false, nil, errors.New("db down")).Once()

	result := f.pipeline.Process(context.Background(), newRequest(500))

	assert.True(t, result.Success)
	assert.Equal(t, StatusProcessed, result.Status)
	assert.False(t, result.IsSuspicious)
	assert.Nil(t, result.CustomerProfileID)
	require.Len(t, result.StepErrors, 5)
	steps := make([]string, 0, len(result.StepErrors))
	for _, se := range result.StepErrors {
		steps = append(steps, se.Step)
	}
	assert.Equal(t, []string{StepExemption, StepWatchlist, StepProfile, StepRawTransaction, StepThreshold}, steps)
	f.assertExpectations(t)
}

func TestProcess_RetriedWebhookIsNotAnError(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true, AIAnalysisEnabled: true})
	f.expectClean("0012345", "TX-1")
	f.cases.On("Create", mock.Anything).Return(repositories.ErrDuplicateCase.Wrap(errors.New("unique"))).Once()
	f.cases.On("FindByNumber", "CASE-0001").Return(&models.SuspiciousCase{CaseNumber: "CASE-0001", TransactionID: "TX-1"}, nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(200000))

	assert.True(t, result.Success)
	assert.False(t, result.CaseCreated)
	assert.True(t, result.CaseDuplicate)
	assert.Empty(t, result.StepErrors)
	assert.Empty(t, f.runner.jobs)
	f.assertExpectations(t)
}

func TestProcess_CaseNumberReusedByOtherTransaction(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.expectClean("0012345", "TX-1")
	f.cases.On("Create", mock.Anything).Return(repositories.ErrDuplicateCase.Wrap(errors.New("unique"))).Once()
	f.cases.On("FindByNumber", "CASE-0001").Return(&models.SuspiciousCase{CaseNumber: "CASE-0001", TransactionID: "TX-OTHER"}, nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(200000))

	assert.True(t, result.Success)
	assert.False(t, result.CaseCreated)
	assert.False(t, result.CaseDuplicate)
	require.Len(t, result.StepErrors, 1)
	assert.Equal(t, StepCase, result.StepErrors[0].Step)
	assert.Equal(t, apperrors.ErrDuplicateCase.Code, result.StepErrors[0].Code)
	f.assertExpectations(t)
}

func TestProcess_ExternalSyncFailureDoesNotAffectResult(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true, ExternalSyncEnabled: true})
	f.expectClean("0012345", "TX-1")
	f.notifier.On("Notify", mock.MatchedBy(func(tx *models.TransactionData) bool {
		return tx.TranID == "TX-1"
	})).Return(errors.New("connection refused")).Once()

	result := f.pipeline.Process(context.Background(), newRequest(500))

	assert.True(t, result.Success)
	assert.Empty(t, result.StepErrors)
	assert.Equal(t, []string{JobExternalSync}, f.runner.jobs)
	f.assertExpectations(t)
}

func TestProcess_PanicBecomesFailure(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.exemptions.On("IsExempt", "0012345").Run(func(mock.Arguments) {
		panic("nil map")
	}).Return(false, nil).Once()

	result := f.pipeline.Process(context.Background(), newRequest(500))

	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Error, "nil map")
}

func TestProcess_NilRequest(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})

	result := f.pipeline.Process(context.Background(), nil)

	assert.False(t, result.Success)
	assert.Equal(t, ErrNilRequest.Error(), result.Error)
}

func TestProcess_ToggleTakesEffectWithoutRestart(t *testing.T) {
	f := newFixture(config.Flags{MonitoringEnabled: true})
	f.expectClean("0012345", "TX-1")

	first := f.pipeline.Process(context.Background(), newRequest(500))
	f.settings.Apply(config.Flags{MonitoringEnabled: false})
	second := f.pipeline.Process(context.Background(), newRequest(500))

	assert.Equal(t, StatusProcessed, first.Status)
	assert.Equal(t, StatusMonitoringDisabled, second.Status)
	f.assertExpectations(t)
}

func TestNewPipeline_PanicsOnMissingDependencies(t *testing.T) {
	assert.Panics(t, func() { NewPipeline(PipelineConfig{}) })
	assert.Panics(t, func() {
		NewPipeline(PipelineConfig{Settings: config.NewSettings(config.Flags{})})
	})
}
