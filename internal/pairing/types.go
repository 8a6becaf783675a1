package pairing

import (
	"fmt"
	"strings"
)

// SkillLevel is the self-reported playing level of a club member.
type SkillLevel string

const (
	Beginner     SkillLevel = "Beginner"
	Intermediate SkillLevel = "Intermediate"
	Advanced     SkillLevel = "Advanced"
)

// skillOrder is the canonical bucket order used wherever the strategies
// iterate over all skill levels.
var skillOrder = []SkillLevel{Advanced, Intermediate, Beginner}

// ParseSkillLevel accepts a skill level in any letter case.
func ParseSkillLevel(s string) (SkillLevel, error) {
	for _, level := range skillOrder {
		if strings.EqualFold(strings.TrimSpace(s), string(level)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSkillLevel, s)
}

// Player is the snapshot of an interested member taken at grouping time.
type Player struct {
	UserID int64      `json:"user_id" msgpack:"user_id"`
	Skill  SkillLevel `json:"skill_level" msgpack:"skill_level"`
}

// Group is a finalized group. Number is 1-based and gap-free.
type Group struct {
	Number  int      `json:"group_number" msgpack:"group_number"`
	Members []Player `json:"members" msgpack:"members"`
}

// PlayerIDs returns the member ids in group order.
func (g Group) PlayerIDs() []int64 {
	ids := make([]int64, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}

// Type selects the grouping strategy.
type Type string

const (
	TypeLike      Type = "like"
	TypeDifferent Type = "different"
	TypeStrategic Type = "strategic"
)

// ParseType lower-cases s and maps it to a known pairing type.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeLike, TypeDifferent, TypeStrategic:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (use like, different or strategic)", ErrInvalidPairingType, s)
	}
}

const (
	// MinGroupSize and MaxGroupSize bound every finalized group.
	MinGroupSize = 4
	MaxGroupSize = 5
)
