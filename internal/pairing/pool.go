package pairing

import (
	"fmt"
	"math/rand"
	"time"
)

// Pool holds the players still waiting to be placed, bucketed by skill.
// It is owned by a single grouping run and is not safe for concurrent use.
type Pool struct {
	players []Player
	buckets map[SkillLevel][]Player
}

// NewPool buckets players by skill level and shuffles each bucket
// independently. A nil rng falls back to a time-seeded source.
func NewPool(players []Player, rng *rand.Rand) (*Pool, error) {
	if len(players) < MinGroupSize {
		return nil, fmt.Errorf("%w: %d interested, need at least %d", ErrInsufficientPlayers, len(players), MinGroupSize)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	seen := make(map[int64]struct{}, len(players))
	buckets := make(map[SkillLevel][]Player, len(skillOrder))
	for _, p := range players {
		if _, ok := seen[p.UserID]; ok {
			return nil, fmt.Errorf("%w: user %d", ErrDuplicatePlayer, p.UserID)
		}
		seen[p.UserID] = struct{}{}
		switch p.Skill {
		case Beginner, Intermediate, Advanced:
		default:
			return nil, fmt.Errorf("%w: user %d has %q", ErrUnknownSkillLevel, p.UserID, p.Skill)
		}
		buckets[p.Skill] = append(buckets[p.Skill], p)
	}

	for _, level := range skillOrder {
		bucket := buckets[level]
		rng.Shuffle(len(bucket), func(i, j int) { bucket[i], bucket[j] = bucket[j], bucket[i] })
	}

	snapshot := make([]Player, len(players))
	copy(snapshot, players)
	return &Pool{players: snapshot, buckets: buckets}, nil
}

// Take removes and returns the front player of the skill bucket.
func (p *Pool) Take(skill SkillLevel) (Player, bool) {
	bucket := p.buckets[skill]
	if len(bucket) == 0 {
		return Player{}, false
	}
	player := bucket[0]
	p.buckets[skill] = bucket[1:]
	return player, true
}

// Remaining reports how many players of skill are still in the pool.
func (p *Pool) Remaining(skill SkillLevel) int {
	return len(p.buckets[skill])
}

// Total reports how many players are still in the pool.
func (p *Pool) Total() int {
	total := 0
	for _, bucket := range p.buckets {
		total += len(bucket)
	}
	return total
}

// Drain empties the given buckets and returns their players concatenated in
// argument order.
func (p *Pool) Drain(skills ...SkillLevel) []Player {
	var out []Player
	for _, skill := range skills {
		out = append(out, p.buckets[skill]...)
		p.buckets[skill] = nil
	}
	return out
}

// Players returns the input roster the pool was built from.
func (p *Pool) Players() []Player {
	return p.players
}
