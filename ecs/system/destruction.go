package system

import (
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
	"github.com/glitchzeros/zonefall/ecs/entity"
)

const DestructionSystemName = "destruction"

// DestructionSystem shatters destructibles whose health has run out into
// debris entities with randomized outward velocity. The collision system
// forwards projectile damage here by name lookup.
type DestructionSystem struct {
	ecs.BaseSystem
	cfg   *config.Config
	scene Scene
}

func NewDestructionSystem(cfg *config.Config, scene Scene) *DestructionSystem {
	return &DestructionSystem{
		BaseSystem: ecs.NewBaseSystem(DestructionSystemName, ecs.PriorityNormal, ecs.Query{
			All: []component.ID{
				component.DestructibleComponent.ID(),
				component.TransformComponent.ID(),
			},
		}),
		cfg:   cfg,
		scene: scene,
	}
}

// ApplyDamage chips a destructible. Safe to call for non-destructible
// entities; it is a no-op then.
func (s *DestructionSystem) ApplyDamage(e ecs.Entity, amount float64) {
	d, ok := ecs.Get(s.World(), e, component.DestructibleComponent)
	if !ok {
		return
	}
	d.Health -= amount
}

func (s *DestructionSystem) Update(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		d, ok := ecs.Get(w, e, component.DestructibleComponent)
		if !ok || d.Health > 0 {
			continue
		}
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		for i := 0; i < d.DebrisCount; i++ {
			chunk := entity.NewDebris(w, s.cfg, tr.Position, d.DebrisScale)
			if s.scene != nil {
				s.scene.AddObject(chunk, "debris")
			}
		}
		if s.scene != nil {
			s.scene.RemoveObject(e)
		}
		w.DestroyEntity(e)
	}
	return nil
}
