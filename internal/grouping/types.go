package grouping

import (
	"errors"

	"github.com/mauv0809/club-pairing/internal/pairing"
)

var (
	ErrInvalidGameID = errors.New("gameId must be a positive integer")
	ErrStorage       = errors.New("storage error")
)

// Request asks for a new grouping of a game day.
type Request struct {
	GameID      int64
	PairingType string
}

// Result is the finalized grouping that was persisted.
type Result struct {
	RunID       string          `json:"run_id"`
	GameID      int64           `json:"game_id"`
	PairingType pairing.Type    `json:"pairing_type"`
	Groups      []pairing.Group `json:"groups"`
}

// Event is published after a grouping has been committed.
type Event struct {
	RunID       string          `msgpack:"run_id"`
	GameID      int64           `msgpack:"game_id"`
	PairingType string          `msgpack:"pairing_type"`
	Groups      []pairing.Group `msgpack:"groups"`
}

// Outcome labels for the pairing runs metric.
const (
	OutcomeSuccess     = "success"
	OutcomeRejected    = "rejected"
	OutcomeUngroupable = "ungroupable"
	OutcomeStorage     = "storage_error"
	OutcomeInvariant   = "invariant_violation"
)
