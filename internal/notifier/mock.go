package notifier

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendGroupingNotificationFunc func(announcement GroupingAnnouncement, dryRun bool) error

	// Call records
	SendGroupingNotificationCalls []struct {
		Announcement GroupingAnnouncement
		DryRun       bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendGroupingNotification(_ context.Context, announcement GroupingAnnouncement, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGroupingNotificationCalls = append(m.SendGroupingNotificationCalls, struct {
		Announcement GroupingAnnouncement
		DryRun       bool
	}{announcement, dryRun})
	if m.SendGroupingNotificationFunc != nil {
		return m.SendGroupingNotificationFunc(announcement, dryRun)
	}
	return nil
}

func (m *Mock) FormatGroupingResponse(announcement GroupingAnnouncement) (any, error) {
	return announcement, nil
}

// Calls returns the number of SendGroupingNotification calls.
func (m *Mock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendGroupingNotificationCalls)
}
