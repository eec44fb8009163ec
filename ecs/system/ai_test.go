package system

import (
	"testing"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

func newTestBot(w *ecs.World, pos common.Vec3, ai component.AI, health float64) ecs.Entity {
	e := w.CreateEntity("bot")
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: pos,
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, e, component.HealthComponent, component.Health{Current: health, Max: 100})
	_ = ecs.Add(w, e, component.InputIntentComponent, component.InputIntent{})
	_ = ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{Alive: true})
	_ = ecs.Add(w, e, component.AIComponent, ai)
	return e
}

func newOpponent(w *ecs.World, pos common.Vec3) ecs.Entity {
	e := w.CreateEntity("opponent")
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: pos,
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, e, component.HealthComponent, component.Health{Current: 100, Max: 100})
	_ = ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{Alive: true})
	return e
}

func baseAI() component.AI {
	return component.AI{
		State:           component.AIStatePatrol,
		Aggression:      0.8,
		DetectionRadius: 30,
		CombatRange:     10,
		ReactionTime:    0.1,
		RetreatHealth:   30,
		SearchTimeout:   0.5,
		LootTimeout:     0.5,
	}
}

func TestAggressiveBotEntersCombat(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nil))

	bot := newTestBot(w, common.Vec3{}, baseAI(), 100)
	newOpponent(w, common.Vec3{X: 5})

	w.Update(0)
	w.Update(0.2) // past the reaction gate

	ai, _ := ecs.Get(w, bot, component.AIComponent)
	if ai.State != component.AIStateCombat {
		t.Fatalf("state = %s, want combat", ai.State)
	}
	intent, _ := ecs.Get(w, bot, component.InputIntentComponent)
	if !intent.Fire {
		t.Fatalf("bot in combat range should fire")
	}
	if intent.Aim.X <= 0 {
		t.Fatalf("bot should aim toward the opponent, aim = %+v", intent.Aim)
	}
}

func TestTimidBotRetreats(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nil))

	ai := baseAI()
	ai.Aggression = 0.3
	bot := newTestBot(w, common.Vec3{}, ai, 100)
	newOpponent(w, common.Vec3{X: 5})

	w.Update(0)
	w.Update(0.2)

	got, _ := ecs.Get(w, bot, component.AIComponent)
	if got.State != component.AIStateRetreat {
		t.Fatalf("state = %s, want retreat for aggression <= 0.5", got.State)
	}
	intent, _ := ecs.Get(w, bot, component.InputIntentComponent)
	if intent.Fire {
		t.Fatalf("retreating bot should not fire")
	}
	if intent.Move.X >= 0 {
		t.Fatalf("retreating bot should move away from the threat, move = %+v", intent.Move)
	}
}

func TestLowHealthForcesRetreat(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nil))

	bot := newTestBot(w, common.Vec3{}, baseAI(), 20) // below RetreatHealth
	newOpponent(w, common.Vec3{X: 5})

	w.Update(0)
	w.Update(0.2)

	ai, _ := ecs.Get(w, bot, component.AIComponent)
	if ai.State != component.AIStateRetreat {
		t.Fatalf("state = %s, want retreat below retreat health", ai.State)
	}
}

func TestReactionTimeGatesDecisions(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nil))

	ai := baseAI()
	ai.ReactionTime = 1.0
	bot := newTestBot(w, common.Vec3{}, ai, 100)
	newOpponent(w, common.Vec3{X: 5})

	w.Update(0)
	w.Update(0.2) // inside the reaction window

	got, _ := ecs.Get(w, bot, component.AIComponent)
	if got.State != component.AIStatePatrol {
		t.Fatalf("state = %s, decision should wait for the reaction window", got.State)
	}

	w.Update(1.0)
	got, _ = ecs.Get(w, bot, component.AIComponent)
	if got.State != component.AIStateCombat {
		t.Fatalf("state = %s, want combat once the window elapses", got.State)
	}
}

func TestLostTargetSearchesThenPatrols(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nil))

	bot := newTestBot(w, common.Vec3{}, baseAI(), 100)
	enemy := newOpponent(w, common.Vec3{X: 5})

	w.Update(0)
	w.Update(0.2)

	ai, _ := ecs.Get(w, bot, component.AIComponent)
	if ai.State != component.AIStateCombat {
		t.Fatalf("setup: state = %s, want combat", ai.State)
	}

	w.DestroyEntity(enemy)
	w.Update(0.2)
	w.Update(0.2)

	ai, _ = ecs.Get(w, bot, component.AIComponent)
	if ai.State != component.AIStateSearch {
		t.Fatalf("state = %s, want search after losing the target", ai.State)
	}

	// SearchTimeout is 0.5s; well past it the bot gives up.
	w.Update(1.0)
	w.Update(0.2)
	ai, _ = ecs.Get(w, bot, component.AIComponent)
	if ai.State != component.AIStatePatrol {
		t.Fatalf("state = %s, want patrol after the search times out", ai.State)
	}
}

func TestTeammatesAreNotTargeted(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nil))

	bot := newTestBot(w, common.Vec3{}, baseAI(), 100)
	mate := newOpponent(w, common.Vec3{X: 5})
	_ = ecs.Add(w, bot, component.TeamComponent, component.Team{ID: 7})
	_ = ecs.Add(w, mate, component.TeamComponent, component.Team{ID: 7})

	w.Update(0)
	w.Update(0.2)

	ai, _ := ecs.Get(w, bot, component.AIComponent)
	if ai.Target != 0 {
		t.Fatalf("bot targeted a teammate: %v", ai.Target)
	}
	if ai.State != component.AIStatePatrol {
		t.Fatalf("state = %s, want patrol with no valid target", ai.State)
	}
}

func TestHurtBotSeeksHealthLoot(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewAISystem(nil))

	bot := newTestBot(w, common.Vec3{}, baseAI(), 40) // hurt but above retreat
	loot := w.CreateEntity("loot_health")
	_ = ecs.Add(w, loot, component.TransformComponent, component.Transform{
		Position: common.Vec3{X: 8},
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, loot, component.LootComponent, component.Loot{Kind: "health", Amount: 25})

	w.Update(0)
	w.Update(0.2)

	ai, _ := ecs.Get(w, bot, component.AIComponent)
	if ai.State != component.AIStateLoot {
		t.Fatalf("state = %s, want loot", ai.State)
	}
	intent, _ := ecs.Get(w, bot, component.InputIntentComponent)
	if intent.Move.X <= 0 {
		t.Fatalf("bot should move toward the pickup, move = %+v", intent.Move)
	}
}
