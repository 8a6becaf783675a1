package grouping

import (
	"context"

	"github.com/mauv0809/club-pairing/internal/pairing"
)

// Store defines the persistence operations required by the grouping service.
type Store interface {
	// LoadInterestedPlayers returns only players whose interest for gameID is affirmative.
	LoadInterestedPlayers(ctx context.Context, gameID int64) ([]pairing.Player, error)
	// ReplaceGrouping atomically deletes all groups for gameID and inserts groups.
	ReplaceGrouping(ctx context.Context, gameID int64, runID string, groups []pairing.Group) error
}

// Publisher fans out the outcome of a successful run.
type Publisher interface {
	PublishGroupingReplaced(ctx context.Context, event Event) error
}

// Metrics defines the counters the service reports.
type Metrics interface {
	IncPairingRuns(pairingType, outcome string)
	ObservePairingDuration(seconds float64)
	AddGroupsCreated(n int)
}
