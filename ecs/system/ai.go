package system

import (
	"math/rand"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const AISystemName = "ai"

// patrolRadius bounds how far a bot wanders from its home point.
const patrolRadius = 20.0

// AISystem drives bot behavior through a small state machine. Perception
// runs every update; state transitions only happen once per ReactionTime
// so bots do not react instantly. Bots never touch the weapon or movement
// systems directly: every state resolves to an InputIntent, the same
// struct the human player's input writes, so the downstream path is
// identical for both.
//
// Bots whose AI component carries a ScriptPath are handed to the script
// runtime instead of the built-in machine.
type AISystem struct {
	ecs.BaseSystem

	scripts *ScriptRuntime
}

func NewAISystem(scripts *ScriptRuntime) *AISystem {
	return &AISystem{
		BaseSystem: ecs.NewBaseSystem(AISystemName, ecs.PriorityNormal, ecs.Query{
			All: []component.ID{
				component.AIComponent.ID(),
				component.TransformComponent.ID(),
				component.HealthComponent.ID(),
				component.InputIntentComponent.ID(),
			},
		}),
		scripts: scripts,
	}
}

func (s *AISystem) Update(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		ai, ok := ecs.Get(w, e, component.AIComponent)
		if !ok {
			continue
		}
		hp, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok || hp.Dead {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		intent, ok := ecs.Get(w, e, component.InputIntentComponent)
		if !ok {
			continue
		}
		*intent = component.InputIntent{}

		s.perceive(e, ai, tr)

		if ai.ScriptPath != "" && s.scripts != nil {
			if err := s.scripts.Step(w, e, ai, tr, intent); err == nil {
				continue
			}
			// Script failure falls through to the built-in machine so a
			// bad reload never leaves bots frozen.
		}

		now := w.NowMS()
		if now-ai.LastDecisionMS >= ai.ReactionTime*1000 {
			ai.LastDecisionMS = now
			s.decide(e, ai, hp, tr, now)
		}
		s.act(e, ai, tr, intent)
	}
	return nil
}

// perceive finds the nearest living opponent within detection range and
// remembers where it was last seen.
func (s *AISystem) perceive(e ecs.Entity, ai *component.AI, tr *component.Transform) {
	w := s.World()

	ai.Target = 0
	for _, other := range w.Query(ecs.Query{All: []component.ID{
		component.PlayerTagComponent.ID(),
		component.TransformComponent.ID(),
		component.HealthComponent.ID(),
	}}) {
		if other == e || s.sameTeam(e, other) {
			continue
		}
		hp, ok := ecs.Get(w, other, component.HealthComponent)
		if !ok || hp.Dead || hp.Current <= 0 {
			continue
		}
		otr, ok := ecs.Get(w, other, component.TransformComponent)
		if !ok {
			continue
		}
		d := common.PlanarDistance(tr.Position, otr.Position)
		if d > ai.DetectionRadius {
			continue
		}
		if ai.Target == 0 || d < s.targetDistance(e, ai, tr) {
			ai.Target = component.EntityRef(other)
			ai.LastSeen = otr.Position
			ai.HasLastSeen = true
		}
	}
}

func (s *AISystem) sameTeam(a, b ecs.Entity) bool {
	w := s.World()
	ta, okA := ecs.Get(w, a, component.TeamComponent)
	tb, okB := ecs.Get(w, b, component.TeamComponent)
	return okA && okB && ta.ID != 0 && ta.ID == tb.ID
}

func (s *AISystem) targetDistance(e ecs.Entity, ai *component.AI, tr *component.Transform) float64 {
	otr, ok := ecs.Get(s.World(), ecs.Entity(ai.Target), component.TransformComponent)
	if !ok {
		return ai.DetectionRadius
	}
	return common.PlanarDistance(tr.Position, otr.Position)
}

// decide picks the next state. Retreat dominates everything; an enemy in
// detection range sends aggressive bots into combat and timid ones away.
func (s *AISystem) decide(e ecs.Entity, ai *component.AI, hp *component.Health, tr *component.Transform, nowMS float64) {
	if hp.Current <= ai.RetreatHealth {
		s.setState(ai, component.AIStateRetreat, nowMS)
		return
	}

	if ai.Target != 0 {
		if ai.Aggression > 0.5 {
			s.setState(ai, component.AIStateCombat, nowMS)
		} else {
			s.setState(ai, component.AIStateRetreat, nowMS)
		}
		return
	}

	switch ai.State {
	case component.AIStateCombat, component.AIStateRetreat:
		if ai.HasLastSeen {
			s.setState(ai, component.AIStateSearch, nowMS)
			return
		}
		s.setState(ai, component.AIStatePatrol, nowMS)

	case component.AIStateSearch:
		if !ai.HasLastSeen || nowMS-ai.StateSinceMS >= ai.SearchTimeout*1000 {
			ai.HasLastSeen = false
			s.setState(ai, component.AIStatePatrol, nowMS)
		}

	case component.AIStateLoot:
		if !s.World().EntityActive(ecs.Entity(ai.LootTarget)) ||
			nowMS-ai.StateSinceMS >= ai.LootTimeout*1000 {
			ai.LootTarget = 0
			s.setState(ai, component.AIStatePatrol, nowMS)
		}

	default:
		if loot := s.nearestLoot(ai, tr); loot != 0 && s.wantsLoot(e, hp) {
			ai.LootTarget = component.EntityRef(loot)
			s.setState(ai, component.AIStateLoot, nowMS)
		}
	}
}

func (s *AISystem) setState(ai *component.AI, state component.AIState, nowMS float64) {
	if ai.State == state {
		return
	}
	ai.State = state
	ai.StateSinceMS = nowMS
}

// wantsLoot reports whether the bot is hurt or short on ammo.
func (s *AISystem) wantsLoot(e ecs.Entity, hp *component.Health) bool {
	if hp.Current < hp.Max*0.6 {
		return true
	}
	if wp, ok := ecs.Get(s.World(), e, component.WeaponComponent); ok {
		return wp.Reserve <= wp.MagazineSize
	}
	return false
}

func (s *AISystem) nearestLoot(ai *component.AI, tr *component.Transform) ecs.Entity {
	w := s.World()
	var best ecs.Entity
	bestDist := ai.DetectionRadius
	for _, e := range w.Query(ecs.Query{All: []component.ID{
		component.LootComponent.ID(),
		component.TransformComponent.ID(),
	}}) {
		ltr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		if d := common.PlanarDistance(tr.Position, ltr.Position); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// act translates the current state into movement and fire intent.
func (s *AISystem) act(e ecs.Entity, ai *component.AI, tr *component.Transform, intent *component.InputIntent) {
	w := s.World()
	switch ai.State {
	case component.AIStateCombat:
		otr, ok := ecs.Get(w, ecs.Entity(ai.Target), component.TransformComponent)
		if !ok {
			return
		}
		dir := common.PlanarDirection(tr.Position, otr.Position)
		dist := common.PlanarDistance(tr.Position, otr.Position)
		intent.Aim = dir
		if dist <= ai.CombatRange {
			intent.Fire = true
		}
		// Close to the sweet spot, then hold ground rather than hugging.
		if dist > ai.CombatRange*0.8 {
			intent.Move = dir
		}

	case component.AIStateRetreat:
		away := common.Vec3{Z: -1}
		if ai.HasLastSeen {
			away = common.PlanarDirection(ai.LastSeen, tr.Position)
		} else if common.PlanarDistance(tr.Position, ai.Home) > 1 {
			away = common.PlanarDirection(tr.Position, ai.Home)
		}
		intent.Move = away
		intent.Sprint = true

	case component.AIStateSearch:
		if !ai.HasLastSeen {
			return
		}
		if common.PlanarDistance(tr.Position, ai.LastSeen) < 1.5 {
			ai.HasLastSeen = false
			return
		}
		intent.Move = common.PlanarDirection(tr.Position, ai.LastSeen)
		intent.Sprint = true

	case component.AIStateLoot:
		ltr, ok := ecs.Get(w, ecs.Entity(ai.LootTarget), component.TransformComponent)
		if !ok {
			ai.LootTarget = 0
			return
		}
		intent.Move = common.PlanarDirection(tr.Position, ltr.Position)

	default: // patrol
		if !ai.HasPatrol || common.PlanarDistance(tr.Position, ai.PatrolTarget) < 1 {
			ai.PatrolTarget = common.Vec3{
				X: ai.Home.X + (rand.Float64()*2-1)*patrolRadius,
				Z: ai.Home.Z + (rand.Float64()*2-1)*patrolRadius,
			}
			ai.HasPatrol = true
		}
		intent.Move = common.PlanarDirection(tr.Position, ai.PatrolTarget)
	}
}
