package system

import (
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const ProgressionSystemName = "progression"

const (
	xpPerKill         = 100
	xpSurvivalTick    = 10
	survivalTickMS    = 30_000
	xpPlacementWeight = 25
)

// ProgressionSystem turns match performance into XP: a bounty per kill,
// a trickle for staying alive, and a placement bonus once a participant
// is out (or wins). Kill counts are read off PlayerTag, which the
// battle-royale system maintains, so this system never needs to know how
// an elimination happened.
type ProgressionSystem struct {
	ecs.BaseSystem

	seenKills    map[ecs.Entity]int
	scored       map[ecs.Entity]bool
	lastTickMS   float64
	totalPlayers int
}

func NewProgressionSystem() *ProgressionSystem {
	return &ProgressionSystem{
		BaseSystem: ecs.NewBaseSystem(ProgressionSystemName, ecs.PriorityLow, ecs.Query{
			All: []component.ID{component.PlayerTagComponent.ID()},
		}),
		seenKills: map[ecs.Entity]int{},
		scored:    map[ecs.Entity]bool{},
	}
}

func (s *ProgressionSystem) OnEntityAdded(e ecs.Entity) {
	s.totalPlayers++
}

func (s *ProgressionSystem) Update(dt float64) error {
	w := s.World()
	now := w.NowMS()

	survivalTick := false
	if now-s.lastTickMS >= survivalTickMS {
		s.lastTickMS = now
		survivalTick = true
	}

	for _, e := range s.Entities() {
		pt, ok := ecs.Get(w, e, component.PlayerTagComponent)
		if !ok {
			continue
		}

		if kills := pt.Kills; kills > s.seenKills[e] {
			pt.XP += (kills - s.seenKills[e]) * xpPerKill
			s.seenKills[e] = kills
		}

		if pt.Alive && survivalTick {
			pt.XP += xpSurvivalTick
		}

		// Placement is set on elimination, and on the winner at match end.
		if pt.Placement > 0 && !s.scored[e] {
			s.scored[e] = true
			pt.XP += s.placementBonus(pt.Placement)
		}
	}
	return nil
}

// placementBonus scales with how many opponents the participant outlived.
func (s *ProgressionSystem) placementBonus(placement int) int {
	outlived := s.totalPlayers - placement
	if outlived < 0 {
		outlived = 0
	}
	return outlived * xpPlacementWeight
}
