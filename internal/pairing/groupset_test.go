package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(from, n int, skill SkillLevel) []Player {
	out := make([]Player, n)
	for i := range out {
		out[i] = Player{UserID: int64(from + i), Skill: skill}
	}
	return out
}

func TestGroupSet_TryAddRespectsCapacity(t *testing.T) {
	gs := NewGroupSet(1)
	for _, p := range players(1, 5, Beginner) {
		require.True(t, gs.TryAdd(0, p))
	}
	assert.False(t, gs.TryAdd(0, Player{UserID: 99, Skill: Beginner}))
	assert.Equal(t, []int{5}, gs.Sizes())
}

func TestGroupSet_AddAnyWithRoom(t *testing.T) {
	gs := NewGroupSet(0)
	gs.Append(players(1, 4, Beginner)...)
	gs.Append(players(10, 4, Advanced)...)

	advancedLed := func(g []Player) bool { return g[0].Skill == Advanced }
	require.True(t, gs.AddAnyWithRoom(Player{UserID: 20, Skill: Advanced}, advancedLed))
	assert.Equal(t, []int{4, 5}, gs.Sizes(), "preferred group should be used first")

	require.True(t, gs.AddAnyWithRoom(Player{UserID: 21, Skill: Advanced}, advancedLed))
	assert.Equal(t, []int{5, 5}, gs.Sizes(), "falls back to any group with room")

	assert.False(t, gs.AddAnyWithRoom(Player{UserID: 22, Skill: Advanced}, nil))
}

func TestGroupSet_MergeUndersized(t *testing.T) {
	gs := NewGroupSet(0)
	gs.Append(players(1, 4, Beginner)...)
	gs.Append(players(10, 4, Intermediate)...)
	gs.Append(players(20, 2, Advanced)...)

	gs.MergeUndersized()
	gs.RemoveEmptyGroups()

	assert.Equal(t, []int{5, 5}, gs.Sizes())
	require.NoError(t, gs.Validate())
	require.NoError(t, gs.CheckCoverage(append(append(players(1, 4, Beginner), players(10, 4, Intermediate)...), players(20, 2, Advanced)...)))
}

func TestGroupSet_MergeUndersizedPutsBackWhenNoRoom(t *testing.T) {
	gs := NewGroupSet(0)
	gs.Append(players(1, 5, Beginner)...)
	gs.Append(players(10, 1, Advanced)...)

	gs.MergeUndersized()
	assert.Equal(t, []int{5, 1}, gs.Sizes())

	gs.MergeUndersized()
	assert.Equal(t, []int{5, 1}, gs.Sizes(), "repeated merges converge")
}

func TestGroupSet_SpillOverfull(t *testing.T) {
	gs := NewGroupSet(0)
	gs.Append(players(1, 7, Beginner)...)
	gs.Append(players(10, 4, Advanced)...)

	gs.SpillOverfull()
	assert.Equal(t, []int{5, 5, 1}, gs.Sizes())
	assert.Equal(t, int64(7), gs.Group(1)[4].UserID, "last member of the overfull group is popped first")
}

func TestGroupSet_ValidateListsEveryBadGroup(t *testing.T) {
	gs := NewGroupSet(0)
	gs.Append(players(1, 3, Beginner)...)
	gs.Append(players(10, 4, Beginner)...)
	gs.Append(players(20, 6, Beginner)...)

	err := gs.Validate()
	var sizeErr *InvalidGroupSizesError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, []GroupSize{{Index: 0, Size: 3}, {Index: 2, Size: 6}}, sizeErr.Groups)
}

func TestGroupSet_FinalizeNumbersSequentially(t *testing.T) {
	gs := NewGroupSet(3)
	gs.Append(players(1, 4, Beginner)...)
	gs.Append(players(10, 5, Intermediate)...)

	groups := gs.Finalize()
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Number)
	assert.Equal(t, 2, groups[1].Number)
	assert.Equal(t, []int64{10, 11, 12, 13, 14}, groups[1].PlayerIDs())
}

func TestGroupSet_CheckCoverage(t *testing.T) {
	expected := players(1, 8, Beginner)

	gs := NewGroupSet(0)
	gs.Append(expected[:4]...)
	gs.Append(expected[4:7]...)
	assert.ErrorIs(t, gs.CheckCoverage(expected), ErrPairingInvariantViolation)

	gs = NewGroupSet(0)
	gs.Append(expected[:4]...)
	gs.Append(append([]Player{expected[0]}, expected[4:]...)...)
	assert.ErrorIs(t, gs.CheckCoverage(expected), ErrPairingInvariantViolation)
}
