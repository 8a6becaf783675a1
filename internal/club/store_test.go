package club_test

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/club-pairing/internal/club"
	"github.com/mauv0809/club-pairing/internal/database"
	"github.com/mauv0809/club-pairing/internal/pairing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory SQLite database with a fixed clock.
func setupTestDB(t *testing.T) club.ClubStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return club.New(db, club.WithClock(func() time.Time { return testNow }))
}

// seedGame creates members 1..n with the given skills, a game day whose
// deadline is tomorrow and a yes answer from every member.
func seedGame(t *testing.T, store club.ClubStore, skills ...pairing.SkillLevel) int64 {
	t.Helper()
	ctx := context.Background()

	day, err := store.CreateGameDay(ctx, club.GameDay{
		Name:             "tuesday",
		Title:            "Tuesday club night",
		DayToPlay:        "2026-03-03",
		InterestDeadline: testNow.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	for i, skill := range skills {
		id := int64(i + 1)
		require.NoError(t, store.UpsertMember(ctx, club.Member{ID: id, FirstName: "Player", SkillLevel: skill}))
		require.NoError(t, store.RecordInterest(ctx, day.ID, id, true))
	}
	return day.ID
}

func TestUpsertMember(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertMember(ctx, club.Member{ID: 1, FirstName: "Ana", SkillLevel: "beginner"}))
	require.NoError(t, store.UpsertMember(ctx, club.Member{ID: 1, FirstName: "Ana", SkillLevel: pairing.Advanced, Role: club.RoleAdmin}))

	members, err := store.GetMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, pairing.Advanced, members[0].SkillLevel)
	assert.Equal(t, club.RoleAdmin, members[0].Role)

	err = store.UpsertMember(ctx, club.Member{ID: 2, SkillLevel: "pro"})
	assert.ErrorIs(t, err, pairing.ErrUnknownSkillLevel)
}

func TestGetMembersByIDs(t *testing.T) {
	store := setupTestDB(t)
	seedGame(t, store, pairing.Beginner, pairing.Intermediate, pairing.Advanced)

	members, err := store.GetMembersByIDs(context.Background(), []int64{3, 1, 99})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, int64(1), members[0].ID)
	assert.Equal(t, int64(3), members[1].ID)

	members, err = store.GetMembersByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestGameDays(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	deadline := testNow.Add(48 * time.Hour)

	day, err := store.CreateGameDay(ctx, club.GameDay{Name: "friday", Title: "Friday", DayToPlay: "2026-03-06", InterestDeadline: deadline})
	require.NoError(t, err)
	assert.Positive(t, day.ID)

	_, err = store.CreateGameDay(ctx, club.GameDay{Name: "friday", Title: "Again", DayToPlay: "2026-03-13", InterestDeadline: deadline})
	assert.ErrorIs(t, err, club.ErrDuplicate)

	got, err := store.GetGameDay(ctx, day.ID)
	require.NoError(t, err)
	assert.Equal(t, "Friday", got.Title)
	assert.True(t, deadline.Equal(got.InterestDeadline))

	_, err = store.GetGameDay(ctx, 404)
	assert.ErrorIs(t, err, club.ErrNotFound)

	days, err := store.ListGameDays(ctx)
	require.NoError(t, err)
	assert.Len(t, days, 1)
}

func TestRecordInterest(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	gameID := seedGame(t, store, pairing.Beginner, pairing.Intermediate, pairing.Advanced, pairing.Advanced, pairing.Beginner)

	require.NoError(t, store.RecordInterest(ctx, gameID, 2, false))

	players, err := store.LoadInterestedPlayers(ctx, gameID)
	require.NoError(t, err)
	assert.Len(t, players, 4)
	for _, p := range players {
		assert.NotEqual(t, int64(2), p.UserID, "a changed answer should replace the earlier one")
	}

	t.Run("unknown member", func(t *testing.T) {
		assert.ErrorIs(t, store.RecordInterest(ctx, gameID, 77, true), club.ErrNotFound)
	})
	t.Run("unknown game", func(t *testing.T) {
		assert.ErrorIs(t, store.RecordInterest(ctx, 77, 1, true), club.ErrNotFound)
	})
}

func TestRecordInterest_AfterDeadline(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	day, err := store.CreateGameDay(ctx, club.GameDay{Name: "past", Title: "Past", DayToPlay: "2026-03-01", InterestDeadline: testNow.Add(-time.Hour)})
	require.NoError(t, err)
	require.NoError(t, store.UpsertMember(ctx, club.Member{ID: 1, SkillLevel: pairing.Beginner}))

	assert.ErrorIs(t, store.RecordInterest(ctx, day.ID, 1, true), club.ErrInterestClosed)
}

func TestReplaceGrouping(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	gameID := seedGame(t, store, pairing.Beginner, pairing.Beginner, pairing.Beginner, pairing.Beginner,
		pairing.Advanced, pairing.Advanced, pairing.Advanced, pairing.Advanced)

	first := []pairing.Group{
		{Number: 1, Members: []pairing.Player{{UserID: 1}, {UserID: 2}, {UserID: 3}, {UserID: 4}}},
		{Number: 2, Members: []pairing.Player{{UserID: 5}, {UserID: 6}, {UserID: 7}, {UserID: 8}}},
	}
	require.NoError(t, store.ReplaceGrouping(ctx, gameID, "run-1", first))

	second := []pairing.Group{
		{Number: 1, Members: []pairing.Player{{UserID: 8}, {UserID: 7}, {UserID: 6}, {UserID: 5}, {UserID: 4}}},
	}
	require.NoError(t, store.ReplaceGrouping(ctx, gameID, "run-2", second))

	groups, err := store.GetGrouping(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, groups, 1, "replacement must drop groups of the previous run")
	assert.Equal(t, "run-2", groups[0].RunID)
	assert.Equal(t, []int64{8, 7, 6, 5, 4}, groups[0].PlayerIDs)
}

func TestReplaceGrouping_RollsBackOnFailure(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	gameID := seedGame(t, store, pairing.Beginner, pairing.Beginner, pairing.Beginner, pairing.Beginner)

	previous := []pairing.Group{{Number: 1, Members: []pairing.Player{{UserID: 1}, {UserID: 2}, {UserID: 3}, {UserID: 4}}}}
	require.NoError(t, store.ReplaceGrouping(ctx, gameID, "run-1", previous))

	// Duplicate group numbers violate the unique index halfway through.
	broken := []pairing.Group{
		{Number: 1, Members: []pairing.Player{{UserID: 1}, {UserID: 2}}},
		{Number: 1, Members: []pairing.Player{{UserID: 3}, {UserID: 4}}},
	}
	require.Error(t, store.ReplaceGrouping(ctx, gameID, "run-2", broken))

	groups, err := store.GetGrouping(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "run-1", groups[0].RunID)
	assert.Equal(t, []int64{1, 2, 3, 4}, groups[0].PlayerIDs)
}

func setupGroups(t *testing.T) (club.ClubStore, int64) {
	t.Helper()
	store := setupTestDB(t)
	skills := make([]pairing.SkillLevel, 10)
	for i := range skills {
		skills[i] = pairing.Intermediate
	}
	gameID := seedGame(t, store, skills...)
	groups := []pairing.Group{
		{Number: 1, Members: []pairing.Player{{UserID: 1}, {UserID: 2}, {UserID: 3}, {UserID: 4}}},
		{Number: 2, Members: []pairing.Player{{UserID: 5}, {UserID: 6}, {UserID: 7}, {UserID: 8}}},
	}
	require.NoError(t, store.ReplaceGrouping(context.Background(), gameID, "run-1", groups))
	return store, gameID
}

func TestAddPlayersToGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("moves player out of other group", func(t *testing.T) {
		store, gameID := setupGroups(t)
		got, err := store.AddPlayersToGroup(ctx, gameID, 1, []int64{5})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, got)

		groups, err := store.GetGrouping(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, []int64{6, 7, 8}, groups[1].PlayerIDs)
	})

	t.Run("adds ungrouped interested player", func(t *testing.T) {
		store, gameID := setupGroups(t)
		got, err := store.AddPlayersToGroup(ctx, gameID, 2, []int64{9})
		require.NoError(t, err)
		assert.Equal(t, []int64{5, 6, 7, 8, 9}, got)
	})

	t.Run("not interested", func(t *testing.T) {
		store, gameID := setupGroups(t)
		require.NoError(t, store.UpsertMember(ctx, club.Member{ID: 42, SkillLevel: pairing.Beginner}))
		_, err := store.AddPlayersToGroup(ctx, gameID, 1, []int64{42})
		assert.ErrorIs(t, err, club.ErrNotInterested)
	})

	t.Run("unknown group", func(t *testing.T) {
		store, gameID := setupGroups(t)
		_, err := store.AddPlayersToGroup(ctx, gameID, 9, []int64{9})
		assert.ErrorIs(t, err, club.ErrNotFound)
	})

	t.Run("already present", func(t *testing.T) {
		store, gameID := setupGroups(t)
		_, err := store.AddPlayersToGroup(ctx, gameID, 1, []int64{1, 2})
		assert.ErrorIs(t, err, club.ErrAlreadyInGroup)
	})

	t.Run("group full leaves groups unchanged", func(t *testing.T) {
		store, gameID := setupGroups(t)
		_, err := store.AddPlayersToGroup(ctx, gameID, 1, []int64{5, 9})
		assert.ErrorIs(t, err, club.ErrGroupFull)

		groups, err := store.GetGrouping(ctx, gameID)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, groups[0].PlayerIDs)
		assert.Equal(t, []int64{5, 6, 7, 8}, groups[1].PlayerIDs)
	})
}

func TestRemovePlayersFromGroup(t *testing.T) {
	ctx := context.Background()
	store, gameID := setupGroups(t)

	got, err := store.RemovePlayersFromGroup(ctx, gameID, 2, []int64{6, 8})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7}, got)

	_, err = store.RemovePlayersFromGroup(ctx, gameID, 2, []int64{1})
	assert.ErrorIs(t, err, club.ErrNotFound)

	_, err = store.RemovePlayersFromGroup(ctx, gameID, 3, []int64{1})
	assert.ErrorIs(t, err, club.ErrNotFound)
}
