package grouping

import "sync"

// gameLocks serializes grouping runs per game id. Entries are removed once
// no run holds or waits on them.
type gameLocks struct {
	mu    sync.Mutex
	locks map[int64]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[int64]*gameLock)}
}

// lock blocks until the caller owns gameID and returns the release func.
func (l *gameLocks) lock(gameID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[gameID]
	if !ok {
		entry = &gameLock{}
		l.locks[gameID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, gameID)
		}
		l.mu.Unlock()
	}
}
