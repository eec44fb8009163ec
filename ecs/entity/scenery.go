package entity

import (
	"math"
	"math/rand"

	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

// NewCrate places a destructible crate.
func NewCrate(w *ecs.World, cfg *config.Config, pos common.Vec3) ecs.Entity {
	e := w.CreateEntity("crate")
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: pos,
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{IsStatic: true})
	_ = ecs.Add(w, e, component.ColliderComponent, component.Collider{Radius: 0.8})
	_ = ecs.Add(w, e, component.DestructibleComponent, component.Destructible{
		Health:      50,
		DebrisCount: cfg.Destruction.DebrisCount,
		DebrisScale: 0.3,
	})
	return e
}

// NewLoot drops a pickup on the ground.
func NewLoot(w *ecs.World, kind string, amount int, pos common.Vec3) ecs.Entity {
	e := w.CreateEntity("loot_" + kind)
	pos.Y = 0
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: pos,
		Scale:    common.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
	})
	_ = ecs.Add(w, e, component.ColliderComponent, component.Collider{Radius: 0.6, IsTrigger: true})
	_ = ecs.Add(w, e, component.LootComponent, component.Loot{Kind: kind, Amount: amount})
	return e
}

// NewDebris spawns one chunk flying outward from a destroyed object.
func NewDebris(w *ecs.World, cfg *config.Config, origin common.Vec3, scale float64) ecs.Entity {
	e := w.CreateEntity("debris")

	angle := rand.Float64() * 2 * math.Pi
	speed := cfg.Destruction.DebrisSpeed * (0.5 + rand.Float64())
	vel := common.Vec3{
		X: speed * math.Cos(angle),
		Y: speed * (0.5 + rand.Float64()*0.5),
		Z: speed * math.Sin(angle),
	}

	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: origin,
		Scale:    common.Vec3{X: scale, Y: scale, Z: scale},
	})
	_ = ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{
		Velocity:     vel,
		Mass:         1,
		GravityScale: 1,
	})
	_ = ecs.Add(w, e, component.LifetimeComponent, component.Lifetime{
		Remaining: cfg.Destruction.DebrisLifetime,
	})
	return e
}
