package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	pairingRuns      map[string]int
	durations        []float64
	groupsCreated    int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		pairingRuns: make(map[string]int),
		durations:   make([]float64, 0),
	}
}

func (m *Mock) IncPairingRuns(pairingType, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairingRuns[pairingType+"/"+outcome]++
}

func (m *Mock) ObservePairingDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, seconds)
}

func (m *Mock) AddGroupsCreated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groupsCreated += n
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PairingRuns returns how often IncPairingRuns was called with the labels.
func (m *Mock) PairingRuns(pairingType, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pairingRuns[pairingType+"/"+outcome]
}

// Durations returns the observed pairing durations.
func (m *Mock) Durations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.durations...)
}

// GroupsCreated returns the sum passed to AddGroupsCreated.
func (m *Mock) GroupsCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.groupsCreated
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
