package pairing

// Strategy partitions a pool into groups. Run consumes the pool entirely.
type Strategy interface {
	Run(pool *Pool) (*GroupSet, error)
}

// StrategyFor returns the strategy implementing t.
func StrategyFor(t Type) (Strategy, error) {
	switch t {
	case TypeLike:
		return Balanced{}, nil
	case TypeDifferent:
		return Diverse{}, nil
	case TypeStrategic:
		return Strategic{}, nil
	default:
		return nil, ErrInvalidPairingType
	}
}

// baseGroupCount is floor(total/4), never less than one.
func baseGroupCount(total int) int {
	return max(1, total/MinGroupSize)
}

// Balanced builds skill-homogeneous groups wherever the supply allows.
type Balanced struct{}

func (Balanced) Run(pool *Pool) (*GroupSet, error) {
	gs := NewGroupSet(0)

	for _, skill := range skillOrder {
		for pool.Remaining(skill) >= MinGroupSize {
			chunk := make([]Player, 0, MinGroupSize)
			for range MinGroupSize {
				p, _ := pool.Take(skill)
				chunk = append(chunk, p)
			}
			gs.Append(chunk...)
		}
	}

	rest := pool.Drain(skillOrder...)
	for len(rest) >= MinGroupSize {
		gs.Append(rest[:MinGroupSize]...)
		rest = rest[MinGroupSize:]
	}

	for _, p := range rest {
		leadIs := func(g []Player) bool { return len(g) > 0 && g[0].Skill == p.Skill }
		switch {
		case gs.addWhere(p, func(g []Player) bool { return len(g) == MinGroupSize && leadIs(g) }):
		case gs.addWhere(p, leadIs):
		case gs.addWhere(p, nil):
		default:
			gs.Append(p)
		}
	}

	if err := gs.CheckCoverage(pool.Players()); err != nil {
		return nil, err
	}
	return gs, nil
}

// Diverse spreads skill levels so each group holds as many distinct levels
// as the supply allows.
type Diverse struct{}

func (Diverse) Run(pool *Pool) (*GroupSet, error) {
	gs := NewGroupSet(baseGroupCount(pool.Total()))

	for progress := true; progress; {
		progress = false
		for i := 0; i < gs.Len(); i++ {
			if len(gs.Group(i)) >= MinGroupSize {
				continue
			}
			skill, ok := nextDiverseSkill(gs.Group(i), pool)
			if !ok {
				continue
			}
			p, _ := pool.Take(skill)
			gs.TryAdd(i, p)
			progress = true
		}
	}

	for _, p := range pool.Drain(skillOrder...) {
		gs.addOrOpen(p, lacksSkill(p.Skill))
	}

	gs.MergeUndersized()
	gs.RemoveEmptyGroups()
	return gs, nil
}

// nextDiverseSkill picks the first skill missing from group that still has
// supply, or else the skill with the largest remaining supply.
func nextDiverseSkill(group []Player, pool *Pool) (SkillLevel, bool) {
	for _, skill := range skillOrder {
		if !hasSkill(group, skill) && pool.Remaining(skill) > 0 {
			return skill, true
		}
	}
	var best SkillLevel
	bestCount := 0
	for _, skill := range skillOrder {
		if n := pool.Remaining(skill); n > bestCount {
			best, bestCount = skill, n
		}
	}
	return best, bestCount > 0
}

// Strategic anchors every group on an Intermediate and pairs the extremes
// around it.
type Strategic struct{}

func (Strategic) Run(pool *Pool) (*GroupSet, error) {
	gs := NewGroupSet(baseGroupCount(pool.Total()))

	for i := 0; i < gs.Len(); i++ {
		if p, ok := pool.Take(Intermediate); ok {
			gs.TryAdd(i, p)
		}
	}
	for _, skill := range []SkillLevel{Advanced, Beginner} {
		for i := 0; i < gs.Len(); i++ {
			if len(gs.Group(i)) >= MinGroupSize {
				continue
			}
			if p, ok := pool.Take(skill); ok {
				gs.TryAdd(i, p)
			}
		}
	}

	rest := pool.Drain(Advanced, Beginner, Intermediate)
	for g := 0; len(rest) > 0 && !allAtLeast(gs, MinGroupSize); g = (g + 1) % gs.Len() {
		if len(gs.Group(g)) < MinGroupSize {
			gs.TryAdd(g, rest[0])
			rest = rest[1:]
		}
	}

	for _, p := range rest {
		switch {
		case gs.addWhere(p, func(g []Player) bool { return hasSkill(g, Intermediate) }):
		case gs.addWhere(p, lacksSkill(p.Skill)):
		case gs.addWhere(p, nil):
		default:
			gs.Append(p)
		}
	}

	gs.MergeUndersized()
	gs.RemoveEmptyGroups()
	return gs, nil
}

func allAtLeast(gs *GroupSet, n int) bool {
	for i := 0; i < gs.Len(); i++ {
		if len(gs.Group(i)) < n {
			return false
		}
	}
	return true
}
