package club

import (
	"context"

	"github.com/mauv0809/club-pairing/internal/pairing"
)

// ClubStore defines the interface for interacting with the club's data.
type ClubStore interface {
	UpsertMember(ctx context.Context, member Member) error
	GetMembers(ctx context.Context) ([]Member, error)
	GetMembersByIDs(ctx context.Context, userIDs []int64) ([]Member, error)

	CreateGameDay(ctx context.Context, day GameDay) (*GameDay, error)
	GetGameDay(ctx context.Context, gameID int64) (*GameDay, error)
	ListGameDays(ctx context.Context) ([]GameDay, error)

	RecordInterest(ctx context.Context, gameID, userID int64, interested bool) error
	LoadInterestedPlayers(ctx context.Context, gameID int64) ([]pairing.Player, error)

	ReplaceGrouping(ctx context.Context, gameID int64, runID string, groups []pairing.Group) error
	GetGrouping(ctx context.Context, gameID int64) ([]GroupRecord, error)
	AddPlayersToGroup(ctx context.Context, gameID int64, groupNumber int, userIDs []int64) ([]int64, error)
	RemovePlayersFromGroup(ctx context.Context, gameID int64, groupNumber int, userIDs []int64) ([]int64, error)
}
