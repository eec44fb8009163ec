package system

import (
	"github.com/jakecoffman/cp"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const BattleRoyaleSystemName = "battleroyale"

// MatchPhase is the coarse match state.
type MatchPhase string

const (
	MatchWaiting  MatchPhase = "waiting"
	MatchActive   MatchPhase = "active"
	MatchFinished MatchPhase = "finished"
)

// BattleRoyaleSystem owns the shrinking zone and the match bookkeeping:
// phase advance on a timer, periodic damage for players caught outside the
// ring, placement on elimination, and the win check.
type BattleRoyaleSystem struct {
	ecs.BaseSystem

	phases       []config.ZonePhase
	center       cp.Vector
	tickInterval float64

	match        MatchPhase
	phaseIdx     int
	phaseStartMS float64
	startRadius  float64
	radius       float64
	lastTickMS   float64

	playersAlive int
	winner       ecs.Entity
}

func NewBattleRoyaleSystem(cfg config.Zone) *BattleRoyaleSystem {
	return &BattleRoyaleSystem{
		BaseSystem: ecs.NewBaseSystem(BattleRoyaleSystemName, ecs.PriorityLow, ecs.Query{
			All: []component.ID{
				component.PlayerTagComponent.ID(),
				component.TransformComponent.ID(),
				component.HealthComponent.ID(),
			},
		}),
		phases:       cfg.Phases,
		center:       cp.Vector{X: cfg.CenterX, Y: cfg.CenterZ},
		tickInterval: cfg.TickInterval,
		match:        MatchWaiting,
		phaseIdx:     -1,
		startRadius:  cfg.InitialRadius,
		radius:       cfg.InitialRadius,
	}
}

// OnEntityAdded counts participants as they bind; OnEntityRemoved keeps
// the alive count honest if a participant is destroyed outside the normal
// elimination path.
func (s *BattleRoyaleSystem) OnEntityAdded(e ecs.Entity) {
	if pt, ok := ecs.Get(s.World(), e, component.PlayerTagComponent); ok && pt.Alive {
		s.playersAlive++
	}
}

func (s *BattleRoyaleSystem) OnEntityRemoved(e ecs.Entity) {
	if pt, ok := ecs.Get(s.World(), e, component.PlayerTagComponent); ok && pt.Alive {
		pt.Alive = false
		s.playersAlive--
	}
}

func (s *BattleRoyaleSystem) Update(dt float64) error {
	w := s.World()
	now := w.NowMS()

	if s.match == MatchWaiting {
		s.begin(now)
	}
	if s.match != MatchActive {
		return nil
	}

	s.advanceZone(now)

	if s.tickInterval > 0 && now-s.lastTickMS >= s.tickInterval*1000 {
		s.lastTickMS = now
		s.damageOutside()
	}

	s.resolveEliminations(now)
	return nil
}

func (s *BattleRoyaleSystem) begin(nowMS float64) {
	s.match = MatchActive
	s.phaseIdx = 0
	s.phaseStartMS = nowMS
	s.lastTickMS = nowMS
	s.startRadius = s.radius
	s.announcePhase()
}

// advanceZone interpolates the ring radius through the current phase's
// shrink window, holds, then moves to the next phase.
func (s *BattleRoyaleSystem) advanceZone(nowMS float64) {
	if s.phaseIdx >= len(s.phases) {
		return
	}
	phase := s.phases[s.phaseIdx]
	elapsed := (nowMS - s.phaseStartMS) / 1000

	if elapsed < phase.ShrinkDuration {
		t := elapsed / phase.ShrinkDuration
		s.radius = common.Lerp(s.startRadius, phase.Radius, t)
		return
	}
	s.radius = phase.Radius

	if elapsed >= phase.ShrinkDuration+phase.HoldDuration && s.phaseIdx+1 < len(s.phases) {
		s.phaseIdx++
		s.phaseStartMS = nowMS
		s.startRadius = s.radius
		s.announcePhase()
	}
}

func (s *BattleRoyaleSystem) announcePhase() {
	s.World().Events().Push(ecs.Event{
		Type: ecs.EventZonePhase,
		Data: ecs.ZonePhaseEvent{Phase: s.phaseIdx, Radius: s.currentPhase().Radius},
	})
}

func (s *BattleRoyaleSystem) currentPhase() config.ZonePhase {
	if s.phaseIdx < 0 || s.phaseIdx >= len(s.phases) {
		return config.ZonePhase{}
	}
	return s.phases[s.phaseIdx]
}

// damageOutside applies one zone tick to every living player beyond the
// ring. Distance is measured on the ground plane.
func (s *BattleRoyaleSystem) damageOutside() {
	w := s.World()
	dmg := s.currentPhase().DamagePerTick
	if dmg <= 0 {
		return
	}
	for _, e := range s.Entities() {
		pt, ok := ecs.Get(w, e, component.PlayerTagComponent)
		if !ok || !pt.Alive {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		if tr.Position.Planar().Distance(s.center) <= s.radius {
			continue
		}
		if hp, ok := ecs.Get(w, e, component.HealthComponent); ok {
			hp.Damage(dmg, 0, w.NowMS())
		}
	}
}

// resolveEliminations assigns placements to players whose health hit zero
// and finishes the match when at most one remains.
func (s *BattleRoyaleSystem) resolveEliminations(nowMS float64) {
	w := s.World()
	for _, e := range s.Entities() {
		pt, ok := ecs.Get(w, e, component.PlayerTagComponent)
		if !ok || !pt.Alive {
			continue
		}
		hp, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok || hp.Current > 0 {
			continue
		}

		pt.Alive = false
		pt.Placement = s.playersAlive
		s.playersAlive--

		var killer ecs.Entity
		if hp.LastHitBy != 0 {
			killer = ecs.Entity(hp.LastHitBy)
			if kt, ok := ecs.Get(w, killer, component.PlayerTagComponent); ok {
				kt.Kills++
			}
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventKill,
			Data: ecs.KillEvent{Victim: e, Killer: killer, Placement: pt.Placement},
		})
	}

	if s.playersAlive <= 1 && s.match == MatchActive {
		s.finish()
	}
}

func (s *BattleRoyaleSystem) finish() {
	w := s.World()
	s.match = MatchFinished
	for _, e := range s.Entities() {
		if pt, ok := ecs.Get(w, e, component.PlayerTagComponent); ok && pt.Alive {
			pt.Placement = 1
			s.winner = e
			break
		}
	}
	w.Events().Push(ecs.Event{
		Type: ecs.EventMatchOver,
		Data: ecs.MatchOverEvent{Winner: s.winner},
	})
}

// Match reports the current match phase.
func (s *BattleRoyaleSystem) Match() MatchPhase { return s.match }

// Zone reports the ring center (ground plane) and current radius for the
// render/HUD layers.
func (s *BattleRoyaleSystem) Zone() (center cp.Vector, radius float64) {
	return s.center, s.radius
}

// PlayersAlive reports how many participants are still standing.
func (s *BattleRoyaleSystem) PlayersAlive() int { return s.playersAlive }

// Winner returns the winning entity once the match has finished.
func (s *BattleRoyaleSystem) Winner() ecs.Entity { return s.winner }
