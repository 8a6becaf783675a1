package pairing

import (
	"fmt"

	"github.com/samber/lo"
)

// GroupSet is the mutable collection of in-progress groups for one run.
// Groups are unnumbered until Finalize.
type GroupSet struct {
	groups [][]Player
}

// NewGroupSet creates a set with n empty groups.
func NewGroupSet(n int) *GroupSet {
	return &GroupSet{groups: make([][]Player, n)}
}

// Len reports the number of groups, empty ones included.
func (gs *GroupSet) Len() int {
	return len(gs.groups)
}

// Group returns the members of group i.
func (gs *GroupSet) Group(i int) []Player {
	return gs.groups[i]
}

// Sizes returns the member count of every group in order.
func (gs *GroupSet) Sizes() []int {
	return lo.Map(gs.groups, func(g []Player, _ int) int { return len(g) })
}

// Append opens a new group holding members and returns its index.
func (gs *GroupSet) Append(members ...Player) int {
	group := make([]Player, len(members))
	copy(group, members)
	gs.groups = append(gs.groups, group)
	return len(gs.groups) - 1
}

// TryAdd adds p to group i if it has fewer than MaxGroupSize members.
func (gs *GroupSet) TryAdd(i int, p Player) bool {
	if len(gs.groups[i]) >= MaxGroupSize {
		return false
	}
	gs.groups[i] = append(gs.groups[i], p)
	return true
}

// addWhere places p into the first group with room that satisfies pred.
// A nil pred matches every group.
func (gs *GroupSet) addWhere(p Player, pred func([]Player) bool) bool {
	for i, g := range gs.groups {
		if len(g) >= MaxGroupSize {
			continue
		}
		if pred != nil && !pred(g) {
			continue
		}
		gs.groups[i] = append(g, p)
		return true
	}
	return false
}

// AddAnyWithRoom tries groups matching preferred first, then any group with
// room. It returns false only when every group is full; the caller must then
// open a new group.
func (gs *GroupSet) AddAnyWithRoom(p Player, preferred func([]Player) bool) bool {
	if preferred != nil && gs.addWhere(p, preferred) {
		return true
	}
	return gs.addWhere(p, nil)
}

// addOrOpen places p with AddAnyWithRoom and opens a singleton group when
// nothing has room.
func (gs *GroupSet) addOrOpen(p Player, preferred func([]Player) bool) {
	if !gs.AddAnyWithRoom(p, preferred) {
		gs.Append(p)
	}
}

// MergeUndersized empties every group with 1..MinGroupSize-1 members and
// redistributes them one by one into other groups with room. A member that
// finds no home goes back to its original group.
func (gs *GroupSet) MergeUndersized() {
	for i := range gs.groups {
		size := len(gs.groups[i])
		if size == 0 || size >= MinGroupSize {
			continue
		}
		members := gs.groups[i]
		gs.groups[i] = nil
		for _, m := range members {
			placed := false
			for j := range gs.groups {
				if j == i || len(gs.groups[j]) >= MaxGroupSize {
					continue
				}
				gs.groups[j] = append(gs.groups[j], m)
				placed = true
				break
			}
			if !placed {
				gs.groups[i] = append(gs.groups[i], m)
			}
		}
	}
}

// SpillOverfull trims every group to MaxGroupSize, popping from the end, and
// places the popped members anywhere with room or in new singleton groups.
func (gs *GroupSet) SpillOverfull() {
	var extras []Player
	for i := range gs.groups {
		for len(gs.groups[i]) > MaxGroupSize {
			last := len(gs.groups[i]) - 1
			extras = append(extras, gs.groups[i][last])
			gs.groups[i] = gs.groups[i][:last]
		}
	}
	for _, p := range extras {
		gs.addOrOpen(p, nil)
	}
}

// RemoveEmptyGroups drops groups without members, keeping the order of the rest.
func (gs *GroupSet) RemoveEmptyGroups() {
	gs.groups = lo.Filter(gs.groups, func(g []Player, _ int) bool { return len(g) > 0 })
}

// Validate reports every group whose size is outside the allowed bounds.
func (gs *GroupSet) Validate() error {
	var bad []GroupSize
	for i, g := range gs.groups {
		if len(g) < MinGroupSize || len(g) > MaxGroupSize {
			bad = append(bad, GroupSize{Index: i, Size: len(g)})
		}
	}
	if len(bad) > 0 {
		return &InvalidGroupSizesError{Groups: bad}
	}
	return nil
}

// Finalize drops empty groups and numbers the rest from 1 in order.
func (gs *GroupSet) Finalize() []Group {
	gs.RemoveEmptyGroups()
	out := make([]Group, len(gs.groups))
	for i, g := range gs.groups {
		members := make([]Player, len(g))
		copy(members, g)
		out[i] = Group{Number: i + 1, Members: members}
	}
	return out
}

// CheckCoverage verifies that the groups hold exactly the expected players:
// none lost, none duplicated.
func (gs *GroupSet) CheckCoverage(expected []Player) error {
	placed := make(map[int64]int, len(expected))
	total := 0
	for _, g := range gs.groups {
		for _, p := range g {
			placed[p.UserID]++
			total++
			if placed[p.UserID] > 1 {
				return fmt.Errorf("%w: user %d placed in more than one group", ErrPairingInvariantViolation, p.UserID)
			}
		}
	}
	for _, p := range expected {
		if placed[p.UserID] == 0 {
			return fmt.Errorf("%w: user %d was not placed", ErrPairingInvariantViolation, p.UserID)
		}
	}
	if total != len(expected) {
		return fmt.Errorf("%w: placed %d players, expected %d", ErrPairingInvariantViolation, total, len(expected))
	}
	return nil
}

func hasSkill(group []Player, skill SkillLevel) bool {
	return lo.ContainsBy(group, func(p Player) bool { return p.Skill == skill })
}

func lacksSkill(skill SkillLevel) func([]Player) bool {
	return func(g []Player) bool { return !hasSkill(g, skill) }
}
