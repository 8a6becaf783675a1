package club

import (
	"context"
	"sync"

	"github.com/mauv0809/club-pairing/internal/pairing"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertMemberFunc           func(member Member) error
	GetMembersFunc             func() ([]Member, error)
	GetMembersByIDsFunc        func(userIDs []int64) ([]Member, error)
	CreateGameDayFunc          func(day GameDay) (*GameDay, error)
	GetGameDayFunc             func(gameID int64) (*GameDay, error)
	ListGameDaysFunc           func() ([]GameDay, error)
	RecordInterestFunc         func(gameID, userID int64, interested bool) error
	LoadInterestedPlayersFunc  func(gameID int64) ([]pairing.Player, error)
	ReplaceGroupingFunc        func(gameID int64, runID string, groups []pairing.Group) error
	GetGroupingFunc            func(gameID int64) ([]GroupRecord, error)
	AddPlayersToGroupFunc      func(gameID int64, groupNumber int, userIDs []int64) ([]int64, error)
	RemovePlayersFromGroupFunc func(gameID int64, groupNumber int, userIDs []int64) ([]int64, error)

	// Call records
	UpsertMemberCalls    []Member
	CreateGameDayCalls   []GameDay
	RecordInterestCalls  []InterestCall
	ReplaceGroupingCalls []ReplaceGroupingCall
	GroupEditCalls       []GroupEditCall
}

// InterestCall records one RecordInterest invocation.
type InterestCall struct {
	GameID     int64
	UserID     int64
	Interested bool
}

// ReplaceGroupingCall records one ReplaceGrouping invocation.
type ReplaceGroupingCall struct {
	GameID int64
	RunID  string
	Groups []pairing.Group
}

// GroupEditCall records one AddPlayersToGroup or RemovePlayersFromGroup invocation.
type GroupEditCall struct {
	Op          string
	GameID      int64
	GroupNumber int
	UserIDs     []int64
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMemberCalls = nil
	m.CreateGameDayCalls = nil
	m.RecordInterestCalls = nil
	m.ReplaceGroupingCalls = nil
	m.GroupEditCalls = nil
}

func (m *MockStore) UpsertMember(_ context.Context, member Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMemberCalls = append(m.UpsertMemberCalls, member)
	if m.UpsertMemberFunc != nil {
		return m.UpsertMemberFunc(member)
	}
	return nil
}

func (m *MockStore) GetMembers(_ context.Context) ([]Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMembersFunc != nil {
		return m.GetMembersFunc()
	}
	return []Member{}, nil
}

func (m *MockStore) GetMembersByIDs(_ context.Context, userIDs []int64) ([]Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMembersByIDsFunc != nil {
		return m.GetMembersByIDsFunc(userIDs)
	}
	return []Member{}, nil
}

func (m *MockStore) CreateGameDay(_ context.Context, day GameDay) (*GameDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateGameDayCalls = append(m.CreateGameDayCalls, day)
	if m.CreateGameDayFunc != nil {
		return m.CreateGameDayFunc(day)
	}
	return &day, nil
}

func (m *MockStore) GetGameDay(_ context.Context, gameID int64) (*GameDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGameDayFunc != nil {
		return m.GetGameDayFunc(gameID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListGameDays(_ context.Context) ([]GameDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListGameDaysFunc != nil {
		return m.ListGameDaysFunc()
	}
	return []GameDay{}, nil
}

func (m *MockStore) RecordInterest(_ context.Context, gameID, userID int64, interested bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordInterestCalls = append(m.RecordInterestCalls, InterestCall{gameID, userID, interested})
	if m.RecordInterestFunc != nil {
		return m.RecordInterestFunc(gameID, userID, interested)
	}
	return nil
}

func (m *MockStore) LoadInterestedPlayers(_ context.Context, gameID int64) ([]pairing.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadInterestedPlayersFunc != nil {
		return m.LoadInterestedPlayersFunc(gameID)
	}
	return nil, nil
}

func (m *MockStore) ReplaceGrouping(_ context.Context, gameID int64, runID string, groups []pairing.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceGroupingCalls = append(m.ReplaceGroupingCalls, ReplaceGroupingCall{gameID, runID, groups})
	if m.ReplaceGroupingFunc != nil {
		return m.ReplaceGroupingFunc(gameID, runID, groups)
	}
	return nil
}

func (m *MockStore) GetGrouping(_ context.Context, gameID int64) ([]GroupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGroupingFunc != nil {
		return m.GetGroupingFunc(gameID)
	}
	return []GroupRecord{}, nil
}

func (m *MockStore) AddPlayersToGroup(_ context.Context, gameID int64, groupNumber int, userIDs []int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupEditCalls = append(m.GroupEditCalls, GroupEditCall{"add", gameID, groupNumber, userIDs})
	if m.AddPlayersToGroupFunc != nil {
		return m.AddPlayersToGroupFunc(gameID, groupNumber, userIDs)
	}
	return userIDs, nil
}

func (m *MockStore) RemovePlayersFromGroup(_ context.Context, gameID int64, groupNumber int, userIDs []int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupEditCalls = append(m.GroupEditCalls, GroupEditCall{"remove", gameID, groupNumber, userIDs})
	if m.RemovePlayersFromGroupFunc != nil {
		return m.RemovePlayersFromGroupFunc(gameID, groupNumber, userIDs)
	}
	return []int64{}, nil
}
