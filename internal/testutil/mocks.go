package testutil

import (
	"sync"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() error { return nil }

// Entries returns a copy of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockPromptService implements services.PromptServiceInterface with
// injectable return values and recorded calls.
type MockPromptService struct {
	mu sync.Mutex

	TickActivity models.UserActivity
	TickErr      error
	TickCalls    int

	EvalCycleID string
	EvalErr     error
	EvalCalls   int

	PendingData providers.PendingPrompt
	HasPending  bool

	ResolveErr   error
	ResolveCalls []ResolveCall

	ResetErr   error
	ResetCalls int

	SnapshotData models.EngineSnapshot

	ActiveDaysVal int
	TimesShownVal int
	StateVal      string

	CloseCalls int
}

type ResolveCall struct {
	ID      string
	Outcome models.Outcome
}

func (m *MockPromptService) RecordTick(now time.Time) (models.UserActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TickCalls++
	return m.TickActivity, m.TickErr
}

func (m *MockPromptService) TriggerEvaluation(now time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EvalCalls++
	return m.EvalCycleID, m.EvalErr
}

func (m *MockPromptService) PendingPrompt() (providers.PendingPrompt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PendingData, m.HasPending
}

func (m *MockPromptService) ResolvePrompt(id string, outcome models.Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResolveCalls = append(m.ResolveCalls, ResolveCall{ID: id, Outcome: outcome})
	return m.ResolveErr
}

func (m *MockPromptService) ResetActivity() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetCalls++
	return m.ResetErr
}

func (m *MockPromptService) Snapshot() models.EngineSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SnapshotData
}

func (m *MockPromptService) ActiveDays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ActiveDaysVal
}

func (m *MockPromptService) TimesShown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.TimesShownVal
}

func (m *MockPromptService) CoordinatorState() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StateVal
}

func (m *MockPromptService) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu sync.Mutex

	Requests      map[string]int
	CacheHits     int
	CacheMisses   int
	Evaluations   int
	Suppressions  map[string]int
	Presentations map[string]int
	Persistences  int
	Probes        int
	ProbeFailures int
	DefaultValues []bool
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Requests:      make(map[string]int),
		Suppressions:  make(map[string]int),
		Presentations: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncEvaluationsTotal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Evaluations++
}

func (m *MockMetrics) IncSuppressionsTotal(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Suppressions == nil {
		m.Suppressions = make(map[string]int)
	}
	m.Suppressions[reason]++
}

func (m *MockMetrics) IncPresentationsTotal(variant string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Presentations == nil {
		m.Presentations = make(map[string]int)
	}
	m.Presentations[variant+":"+outcome]++
}

func (m *MockMetrics) ObservePersistenceDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}

func (m *MockMetrics) ObserveStatusProbeDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Probes++
}

func (m *MockMetrics) IncStatusProbeFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbeFailures++
}

func (m *MockMetrics) SetDefaultBrowser(isDefault bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DefaultValues = append(m.DefaultValues, isDefault)
}

// SuppressionCount returns the recorded count for a reason label.
func (m *MockMetrics) SuppressionCount(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Suppressions[reason]
}

// PresentationCount returns the recorded count for a variant/outcome pair.
func (m *MockMetrics) PresentationCount(variant, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Presentations[variant+":"+outcome]
}
