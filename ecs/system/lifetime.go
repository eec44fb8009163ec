package system

import (
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const LifetimeSystemName = "lifetime"

// LifetimeSystem counts down per-entity TTLs and destroys entities that
// expire. Destruction is deferred by the world, so expiring mid-frame is
// safe.
type LifetimeSystem struct {
	ecs.BaseSystem
}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{
		BaseSystem: ecs.NewBaseSystem(LifetimeSystemName, ecs.PriorityNormal, ecs.Query{
			All: []component.ID{component.LifetimeComponent.ID()},
		}),
	}
}

func (s *LifetimeSystem) Update(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		lt, ok := ecs.Get(w, e, component.LifetimeComponent)
		if !ok {
			continue
		}
		lt.Remaining -= dt
		if lt.Remaining <= 0 {
			w.DestroyEntity(e)
		}
	}
	return nil
}
