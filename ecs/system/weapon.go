package system

import (
	"github.com/glitchzeros/zonefall/common"
	"github.com/glitchzeros/zonefall/ecs"
	"github.com/glitchzeros/zonefall/ecs/component"
	"github.com/glitchzeros/zonefall/ecs/entity"
)

const WeaponSystemName = "weapon"

// muzzleHeight lifts rounds to eye level so they clear ground loot.
const muzzleHeight = 1.5

// WeaponSystem gates firing by fire rate, runs reloads, and spawns
// projectile entities for rounds that leave the barrel.
type WeaponSystem struct {
	ecs.BaseSystem
}

func NewWeaponSystem() *WeaponSystem {
	return &WeaponSystem{
		BaseSystem: ecs.NewBaseSystem(WeaponSystemName, ecs.PriorityNormal, ecs.Query{
			All: []component.ID{
				component.WeaponComponent.ID(),
				component.TransformComponent.ID(),
				component.InputIntentComponent.ID(),
			},
		}),
	}
}

func (s *WeaponSystem) Update(dt float64) error {
	w := s.World()
	for _, e := range s.Entities() {
		wp, ok := ecs.Get(w, e, component.WeaponComponent)
		if !ok {
			continue
		}
		intent, ok := ecs.Get(w, e, component.InputIntentComponent)
		if !ok {
			continue
		}

		if wp.Reloading {
			s.UpdateReload(wp, w.NowMS())
			continue
		}
		if intent.Reload && wp.Magazine < wp.MagazineSize {
			s.StartReload(wp, w.NowMS())
			continue
		}
		if intent.Fire {
			s.TryFire(e)
		}
	}
	return nil
}

// TryFire attempts a single shot. Returns false when the fire-rate gate is
// closed, a reload is running, or the magazine is empty (which auto-starts
// a reload).
func (s *WeaponSystem) TryFire(e ecs.Entity) bool {
	w := s.World()
	wp, ok := ecs.Get(w, e, component.WeaponComponent)
	if !ok {
		return false
	}
	now := w.NowMS()
	if !wp.CanFire(now) {
		return false
	}
	if wp.Magazine <= 0 {
		s.StartReload(wp, now)
		return false
	}

	tr, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return false
	}
	dir := common.Vec3{Z: 1}
	if intent, ok := ecs.Get(w, e, component.InputIntentComponent); ok && intent.Aim.Length() > 0 {
		dir = intent.Aim.Normalize()
	}

	wp.Magazine--
	wp.LastFireMS = now

	from := tr.Position.Add(dir.Scale(0.8))
	from.Y += muzzleHeight
	entity.NewProjectile(w, e, from, dir, wp)

	if em, ok := ecs.Get(w, e, component.AudioEmitterComponent); ok {
		em.Enqueue(wp.Name+"_fire", tr.Position)
	}

	if wp.Magazine == 0 {
		s.StartReload(wp, now)
	}
	return true
}

// StartReload begins a reload if there is reserve ammo to transfer.
func (s *WeaponSystem) StartReload(wp *component.Weapon, nowMS float64) {
	if wp.Reloading || wp.Reserve <= 0 || wp.Magazine >= wp.MagazineSize {
		return
	}
	wp.Reloading = true
	wp.ReloadStartMS = nowMS
}

// UpdateReload completes a running reload once its time gate has elapsed,
// transferring ammo from the reserve bounded by what the reserve holds.
// Returns true when the reload finished this call.
func (s *WeaponSystem) UpdateReload(wp *component.Weapon, nowMS float64) bool {
	if !wp.Reloading {
		return false
	}
	if nowMS-wp.ReloadStartMS < wp.ReloadTime*1000 {
		return false
	}
	need := wp.MagazineSize - wp.Magazine
	if need > wp.Reserve {
		need = wp.Reserve
	}
	wp.Magazine += need
	wp.Reserve -= need
	wp.Reloading = false
	return true
}
