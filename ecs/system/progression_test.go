package system

import (
	"testing"

	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

func TestKillsAwardXP(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewProgressionSystem())

	e := w.CreateEntity("p")
	_ = ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{Alive: true})
	w.Update(0)

	pt, _ := ecs.Get(w, e, component.PlayerTagComponent)
	pt.Kills = 2
	w.Update(0.1)

	if pt.XP != 2*xpPerKill {
		t.Fatalf("xp = %d, want %d for two kills", pt.XP, 2*xpPerKill)
	}

	// Already-counted kills are not re-awarded.
	w.Update(0.1)
	if pt.XP != 2*xpPerKill {
		t.Fatalf("xp = %d, kills double counted", pt.XP)
	}
}

func TestSurvivalTrickle(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewProgressionSystem())

	e := w.CreateEntity("p")
	_ = ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{Alive: true})
	w.Update(0)

	w.Update(31)
	pt, _ := ecs.Get(w, e, component.PlayerTagComponent)
	if pt.XP != xpSurvivalTick {
		t.Fatalf("xp = %d, want one survival tick (%d)", pt.XP, xpSurvivalTick)
	}
}

func TestPlacementBonusScalesWithOutlivedOpponents(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewProgressionSystem())

	players := make([]ecs.Entity, 4)
	for i := range players {
		players[i] = w.CreateEntity("p")
		_ = ecs.Add(w, players[i], component.PlayerTagComponent, component.PlayerTag{Alive: true})
	}
	w.Update(0)

	// Third place in a four-player match outlived one opponent.
	pt, _ := ecs.Get(w, players[0], component.PlayerTagComponent)
	pt.Alive = false
	pt.Placement = 3
	w.Update(0.1)

	if pt.XP != 1*xpPlacementWeight {
		t.Fatalf("xp = %d, want %d placement bonus", pt.XP, xpPlacementWeight)
	}

	// The bonus is granted once.
	w.Update(0.1)
	if pt.XP != 1*xpPlacementWeight {
		t.Fatalf("xp = %d, placement bonus double counted", pt.XP)
	}
}
