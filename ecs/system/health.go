package system

import (
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const HealthSystemName = "health"

// regenDelayMS is how long after the last hit regeneration resumes.
const regenDelayMS = 5000

// HealthSystem clamps health, runs out-of-combat regen, and retires dead
// entities. Participants (PlayerTag) are left alive in the registry for
// the battle-royale system to record placement; everything else is
// destroyed outright.
type HealthSystem struct {
	ecs.BaseSystem
}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{
		BaseSystem: ecs.NewBaseSystem(HealthSystemName, ecs.PriorityNormal, ecs.Query{
			All: []component.ID{component.HealthComponent.ID()},
		}),
	}
}

func (s *HealthSystem) Update(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		hp, ok := ecs.Get(w, e, component.HealthComponent)
		if !ok {
			continue
		}

		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}

		if hp.Current <= 0 {
			if !hp.Dead {
				hp.Dead = true
				if !ecs.Has(w, e, component.PlayerTagComponent) {
					w.DestroyEntity(e)
				}
			}
			continue
		}

		if hp.Regen > 0 && hp.Current < hp.Max && w.NowMS()-hp.LastDamageMS >= regenDelayMS {
			hp.Current += hp.Regen * dt
			if hp.Current > hp.Max {
				hp.Current = hp.Max
			}
		}
	}
	return nil
}
