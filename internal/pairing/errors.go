package pairing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInsufficientPlayers       = errors.New("not enough players to form a group")
	ErrInvalidPairingType        = errors.New("invalid pairing type")
	ErrUnknownSkillLevel         = errors.New("unknown skill level")
	ErrDuplicatePlayer           = errors.New("player listed more than once")
	ErrUngroupableConstraints    = errors.New("could not form valid groups with current constraints")
	ErrPairingInvariantViolation = errors.New("pairing invariant violated")
)

// GroupSize records one offending group found by Validate.
type GroupSize struct {
	Index int
	Size  int
}

// InvalidGroupSizesError lists every group whose size is outside [MinGroupSize, MaxGroupSize].
type InvalidGroupSizesError struct {
	Groups []GroupSize
}

func (e *InvalidGroupSizesError) Error() string {
	parts := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		parts[i] = fmt.Sprintf("group %d has %d players", g.Index+1, g.Size)
	}
	return fmt.Sprintf("invalid group sizes (want %d-%d): %s", MinGroupSize, MaxGroupSize, strings.Join(parts, ", "))
}
