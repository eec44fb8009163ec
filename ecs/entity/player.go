package entity

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/config"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
)

// NewPlayer assembles the locally controlled participant.
func NewPlayer(w *ecs.World, cfg *config.Config, name string, pos common.Vec3) ecs.Entity {
	e := newParticipant(w, cfg, name, pos)
	_ = ecs.Add(w, e, component.HumanTagComponent, component.HumanTag{})
	_ = ecs.Add(w, e, component.CameraFollowComponent, component.CameraFollow{
		Offset: common.Vec3{Y: 12, Z: -10},
	})
	_ = ecs.Add(w, e, component.AudioEmitterComponent, component.AudioEmitter{})
	return e
}

func newParticipant(w *ecs.World, cfg *config.Config, name string, pos common.Vec3) ecs.Entity {
	e := w.CreateEntity(name)
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{
		Position: pos,
		Scale:    common.Vec3{X: 1, Y: 1, Z: 1},
	})
	_ = ecs.Add(w, e, component.RigidBodyComponent, component.RigidBody{
		Mass:         80,
		GravityScale: 1,
	})
	_ = ecs.Add(w, e, component.ColliderComponent, component.Collider{Radius: 0.5})
	_ = ecs.Add(w, e, component.HealthComponent, component.Health{Current: 100, Max: 100, Regen: 1})
	_ = ecs.Add(w, e, component.MovementComponent, component.Movement{
		Speed:            cfg.Movement.Speed,
		SprintMultiplier: cfg.Movement.SprintMultiplier,
	})
	_ = ecs.Add(w, e, component.InputIntentComponent, component.InputIntent{})
	_ = ecs.Add(w, e, component.PlayerTagComponent, component.PlayerTag{Alive: true})
	// Solo match: everyone is their own team.
	_ = ecs.Add(w, e, component.TeamComponent, component.Team{ID: int(e.Index())})

	wc := cfg.Weapons["rifle"]
	_ = ecs.Add(w, e, component.WeaponComponent, component.Weapon{
		Name:            "rifle",
		FireRate:        wc.FireRate,
		Damage:          wc.Damage,
		ProjectileSpeed: wc.ProjectileSpeed,
		MagazineSize:    wc.MagazineSize,
		Magazine:        wc.MagazineSize,
		Reserve:         wc.Reserve,
		ReloadTime:      wc.ReloadTime,
	})
	return e
}
