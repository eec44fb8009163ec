package entity

import (
	"math/rand"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

// NewBot assembles an AI-driven participant. Aggression is rolled once at
// spawn inside the configured band so bots don't all behave identically.
func NewBot(w *ecs.World, cfg *config.Config, name string, pos common.Vec3) ecs.Entity {
	e := newParticipant(w, cfg, name, pos)

	aggression := cfg.AI.AggressionMin + rand.Float64()*(cfg.AI.AggressionMax-cfg.AI.AggressionMin)
	_ = ecs.Add(w, e, component.AIComponent, component.AI{
		State:           component.AIStatePatrol,
		Aggression:      aggression,
		DetectionRadius: cfg.AI.DetectionRadius,
		CombatRange:     cfg.AI.CombatRange,
		ReactionTime:    cfg.AI.ReactionTime,
		RetreatHealth:   cfg.AI.RetreatHealth,
		SearchTimeout:   cfg.AI.SearchTimeout,
		LootTimeout:     cfg.AI.LootTimeout,
		Home:            pos,
	})
	return e
}
