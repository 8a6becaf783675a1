package pairing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roster builds players with sequential ids: a Advanced, i Intermediate, b Beginner.
func roster(a, i, b int) []Player {
	var players []Player
	id := int64(1)
	add := func(n int, skill SkillLevel) {
		for range n {
			players = append(players, Player{UserID: id, Skill: skill})
			id++
		}
	}
	add(a, Advanced)
	add(i, Intermediate)
	add(b, Beginner)
	return players
}

func seeded() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestNewPool_BucketsBySkill(t *testing.T) {
	pool, err := NewPool(roster(2, 3, 4), seeded())
	require.NoError(t, err)

	assert.Equal(t, 2, pool.Remaining(Advanced))
	assert.Equal(t, 3, pool.Remaining(Intermediate))
	assert.Equal(t, 4, pool.Remaining(Beginner))
	assert.Equal(t, 9, pool.Total())
	assert.Len(t, pool.Players(), 9)
}

func TestNewPool_InsufficientPlayers(t *testing.T) {
	_, err := NewPool(roster(1, 1, 1), seeded())
	assert.ErrorIs(t, err, ErrInsufficientPlayers)

	_, err = NewPool(nil, nil)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestNewPool_RejectsBadRoster(t *testing.T) {
	players := roster(0, 4, 0)
	players[3].UserID = players[0].UserID
	_, err := NewPool(players, seeded())
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	players = roster(0, 4, 0)
	players[2].Skill = "Expert"
	_, err = NewPool(players, seeded())
	assert.ErrorIs(t, err, ErrUnknownSkillLevel)
}

func TestNewPool_SameSeedSameOrder(t *testing.T) {
	drain := func() []Player {
		pool, err := NewPool(roster(0, 0, 12), rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		return pool.Drain(Beginner)
	}
	assert.Equal(t, drain(), drain())
}

func TestPool_TakeAndDrain(t *testing.T) {
	pool, err := NewPool(roster(1, 2, 1), seeded())
	require.NoError(t, err)

	p, ok := pool.Take(Advanced)
	require.True(t, ok)
	assert.Equal(t, Advanced, p.Skill)

	_, ok = pool.Take(Advanced)
	assert.False(t, ok, "bucket should be empty")
	assert.Equal(t, 3, pool.Total())

	rest := pool.Drain(Beginner, Intermediate)
	require.Len(t, rest, 3)
	assert.Equal(t, Beginner, rest[0].Skill)
	assert.Equal(t, Intermediate, rest[1].Skill)
	assert.Equal(t, 0, pool.Total())
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"like": TypeLike, "Different": TypeDifferent, " STRATEGIC ": TypeStrategic} {
		got, err := ParseType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseType("random")
	assert.ErrorIs(t, err, ErrInvalidPairingType)
}

func TestParseSkillLevel(t *testing.T) {
	level, err := ParseSkillLevel("intermediate")
	require.NoError(t, err)
	assert.Equal(t, Intermediate, level)

	_, err = ParseSkillLevel("pro")
	assert.ErrorIs(t, err, ErrUnknownSkillLevel)
}
