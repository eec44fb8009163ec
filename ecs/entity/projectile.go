package entity

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

const projectileLifetime = 2.0

// NewProjectile spawns a fired round. Projectiles are plain entities with
// a collider and a TTL; the collision system resolves hits and destroys
// them on impact.
func NewProjectile(w *ecs.World, owner ecs.Entity, from, dir common.Vec3, wp *component.Weapon) ecs.Entity {
	e := w.CreateEntity(wp.Name + "_round")
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: from,
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{
		Velocity: dir.Normalize().Scale(wp.ProjectileSpeed),
		Mass:     0.01,
		// No drop on rounds; the demo shoots flat.
		GravityScale: 0,
	})
	_ = ecs.Add(w, e, component.ColliderComponent, component.Collider{Radius: 0.15, IsTrigger: true})
	_ = ecs.Add(w, e, component.ProjectileComponent, component.Projectile{
		Damage: wp.Damage,
		Owner:  component.EntityRef(owner),
	})
	_ = ecs.Add(w, e, component.LifetimeComponent, component.Lifetime{Remaining: projectileLifetime})
	return e
}
