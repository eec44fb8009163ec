package system

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const CollisionSystemName = "collision"

// CollisionSystem runs a pairwise sphere test over every collider each
// frame. Quadratic in the number of colliders; fine at demo scale, and the
// first thing to replace with a spatial partition if entity counts grow.
type CollisionSystem struct {
	ecs.BaseSystem
}

func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{
		BaseSystem: ecs.NewBaseSystem(CollisionSystemName, ecs.PriorityHigh, ecs.Query{
			All: []component.ID{
				component.TransformComponent.ID(),
				component.ColliderComponent.ID(),
			},
		}),
	}
}

func (s *CollisionSystem) Update(dt float64) error {
	w := s.World()
	entities := s.Entities()

	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			a, b := entities[i], entities[j]
			ta, okA := ecs.Get(w, a, component.TransformComponent)
			tb, okB := ecs.Get(w, b, component.TransformComponent)
			if !okA || !okB {
				continue
			}
			ca, okA := ecs.Get(w, a, component.ColliderComponent)
			cb, okB := ecs.Get(w, b, component.ColliderComponent)
			if !okA || !okB {
				continue
			}
			dist := ta.Position.Distance(tb.Position)
			if dist >= ca.Radius+cb.Radius {
				continue
			}
			s.resolve(a, b, ta, tb, ca, cb, dist)
		}
	}
	return nil
}

func (s *CollisionSystem) resolve(a, b ecs.Entity, ta, tb *component.Transform, ca, cb *component.Collider, dist float64) {
	w := s.World()
	pa, aIsProjectile := ecs.Get(w, a, component.ProjectileComponent)
	pb, bIsProjectile := ecs.Get(w, b, component.ProjectileComponent)

	switch {
	case aIsProjectile && !bIsProjectile:
		s.hit(a, b, pa)
	case bIsProjectile && !aIsProjectile:
		s.hit(b, a, pb)
	case aIsProjectile && bIsProjectile:
		// Rounds pass through each other.
	default:
		if !ca.IsTrigger && !cb.IsTrigger {
			separate(ta, tb, ca.Radius+cb.Radius, dist)
		}
	}
}

// hit applies a projectile impact: damage to health carriers, forwarded
// damage for destructibles, and the round is destroyed either way.
func (s *CollisionSystem) hit(round, target ecs.Entity, p *component.Projectile) {
	w := s.World()
	if ecs.Entity(p.Owner) == target {
		return
	}
	// Destruction is deferred, so a round that already connected this frame
	// still shows up in later pairs. One hit per round.
	if !w.EntityActive(round) {
		return
	}

	if hp, ok := ecs.Get(w, target, component.HealthComponent); ok {
		hp.Damage(p.Damage, p.Owner, w.NowMS())
	} else if ds, ok := w.SystemByName(DestructionSystemName).(*DestructionSystem); ok && ds != nil {
		ds.ApplyDamage(target, p.Damage)
	}

	w.DestroyEntity(round)
}

// separate pushes two solid bodies apart along the line between their
// centers, splitting the overlap evenly on the ground plane.
func separate(ta, tb *component.Transform, minDist, dist float64) {
	overlap := minDist - dist
	if overlap <= 0 {
		return
	}
	dir := common.PlanarDirection(ta.Position, tb.Position)
	if dir.Length() == 0 {
		dir = common.Vec3{X: 1}
	}
	half := dir.Scale(overlap / 2)
	ta.Position = ta.Position.Sub(half)
	tb.Position = tb.Position.Add(half)
}
