package system

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const LootSystemName = "loot"

// pickupRange is how close a participant must stand to collect a pickup.
const pickupRange = 1.2

// LootSystem hands pickups to whichever living participant walks over
// them: ammo tops up the weapon reserve, health packs heal. The pickup
// entity is destroyed on collection.
type LootSystem struct {
	ecs.BaseSystem
}

func NewLootSystem() *LootSystem {
	return &LootSystem{
		BaseSystem: ecs.NewBaseSystem(LootSystemName, ecs.PriorityNormal, ecs.Query{
			All: []component.ID{
				component.LootComponent.ID(),
				component.TransformComponent.ID(),
			},
		}),
	}
}

func (s *LootSystem) Update(dt float64) error {
	w := s.World()
	participants := w.Query(ecs.Query{All: []component.ID{
		component.PlayerTagComponent.ID(),
		component.TransformComponent.ID(),
	}})

	for _, loot := range s.Entities() {
		lt, ok := ecs.Get(w, loot, component.LootComponent)
		if !ok {
			continue
		}
		ltr, ok := ecs.Get(w, loot, component.TransformComponent)
		if !ok {
			continue
		}

		for _, p := range participants {
			pt, ok := ecs.Get(w, p, component.PlayerTagComponent)
			if !ok || !pt.Alive {
				continue
			}
			ptr, ok := ecs.Get(w, p, component.TransformComponent)
			if !ok {
				continue
			}
			if common.PlanarDistance(ltr.Position, ptr.Position) > pickupRange {
				continue
			}
			if s.collect(p, lt) {
				w.DestroyEntity(loot)
				break
			}
		}
	}
	return nil
}

// collect applies the pickup. Returns false when the collector has no use
// for it (full health, no weapon) so it stays on the ground.
func (s *LootSystem) collect(p ecs.Entity, lt *component.Loot) bool {
	w := s.World()
	switch lt.Kind {
	case "ammo":
		wp, ok := ecs.Get(w, p, component.WeaponComponent)
		if !ok {
			return false
		}
		wp.Reserve += lt.Amount
		return true
	case "health":
		hp, ok := ecs.Get(w, p, component.HealthComponent)
		if !ok || hp.Dead || hp.Current >= hp.Max {
			return false
		}
		hp.Current = common.Clamp(hp.Current+float64(lt.Amount), 0, hp.Max)
		return true
	}
	return false
}
